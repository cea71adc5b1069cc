package tui

import (
	"log"

	"geomap/internal/geom"
	"geomap/internal/index"
)

type featureKind int

const (
	pointFeature featureKind = iota
	lineFeature
	polygonFeature
)

func (k featureKind) String() string {
	switch k {
	case pointFeature:
		return "point"
	case lineFeature:
		return "line"
	case polygonFeature:
		return "polygon"
	}
	return "unknown"
}

// feature refers to one element of Data.Points, Data.Lines or Data.Polygons.
type feature struct {
	kind featureKind
	i    int
}

// scene is a loaded dataset together with its spatial index. Index keys are positions in
// features.
type scene struct {
	data     geom.Data
	view     geom.Extent
	features []feature
	idx      *index.Index[int]

	// self-intersections per invalid polygon, keyed by feature
	invalid map[int][]geom.Point
}

func newScene(d geom.Data, opts *index.Options) (*scene, error) {
	idx, err := index.New[int](opts)
	if err != nil {
		return nil, err
	}
	s := &scene{
		data:    d,
		view:    viewExtent(d.Extent),
		idx:     idx,
		invalid: map[int][]geom.Point{},
	}
	for i, p := range d.Points {
		s.add(feature{pointFeature, i}, geom.PointExtent(p))
	}
	for i, ls := range d.Lines {
		s.add(feature{lineFeature, i}, geom.RingExtent(ls))
	}
	for i, poly := range d.Polygons {
		e := geom.NewExtent()
		for _, ring := range poly {
			e = e.Union(geom.RingExtent(ring))
		}
		key := s.add(feature{polygonFeature, i}, e)
		for _, ring := range poly {
			g := geom.NewGeometry(geom.PolygonType, ring...)
			if ps := g.FindIntersections(); len(ps) > 0 {
				s.invalid[key] = append(s.invalid[key], ps...)
			}
		}
	}
	log.Printf("scene: %d features indexed, %d invalid polygons, bounds %v", s.idx.Len(), len(s.invalid), s.idx.Bounds())
	return s, nil
}

func (s *scene) add(f feature, e geom.Extent) int {
	key := len(s.features)
	s.features = append(s.features, f)
	if err := s.idx.Insert(key, e); err != nil {
		// empty rings have no extent and are never drawn
		log.Printf("scene: skip %v %d: %v", f.kind, f.i, err)
	}
	return key
}

// visible returns the features whose extent intersects q, in key order.
func (s *scene) visible(q geom.Extent) []feature {
	keys := s.idx.Search(q)
	fs := make([]feature, len(keys))
	for i, key := range keys {
		fs[i] = s.features[key]
	}
	return fs
}

// vertices calls fn for each vertex of f.
func (s *scene) vertices(f feature, fn func(geom.Point)) {
	switch f.kind {
	case pointFeature:
		fn(s.data.Points[f.i])
	case lineFeature:
		for _, p := range s.data.Lines[f.i] {
			fn(p)
		}
	case polygonFeature:
		for _, ring := range s.data.Polygons[f.i] {
			for _, p := range ring {
				fn(p)
			}
		}
	}
}

// viewExtent widens degenerate axes of the data extent so it can be mapped onto the screen.
func viewExtent(e geom.Extent) geom.Extent {
	if e.IsUndefined() {
		return e
	}
	pad := max(e.W(), e.H()) / 2
	if pad == 0 {
		pad = 0.5
	}
	if e.W() == 0 {
		e.Min.X, e.Max.X = e.Min.X-pad, e.Max.X+pad
	}
	if e.H() == 0 {
		e.Min.Y, e.Max.Y = e.Min.Y-pad, e.Max.Y+pad
	}
	return e
}
