package geom

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
)

var ErrNoGeometry = errors.New("no geometries found")

// Data is a flat geometry container for rendering.
type Data struct {
	Points   []Point
	Lines    [][]Point
	Polygons [][][]Point // polygons with rings (first outer, following holes)
	Extent   Extent
}

// NewData returns an empty container with an undefined extent.
func NewData() Data {
	return Data{Extent: NewExtent()}
}

func (d *Data) IsEmpty() bool {
	return len(d.Points) == 0 && len(d.Lines) == 0 && len(d.Polygons) == 0
}

func (d *Data) AddPoint(p Point) {
	d.Points = append(d.Points, p)
	d.Extent = d.Extent.UnionPoint(p)
}

func (d *Data) AddLine(ls []Point) {
	d.Lines = append(d.Lines, ls)
	d.Extent = d.Extent.Union(RingExtent(ls))
}

func (d *Data) AddPolygon(poly [][]Point) {
	d.Polygons = append(d.Polygons, poly)
	for _, ring := range poly {
		d.Extent = d.Extent.Union(RingExtent(ring))
	}
}

// Vertices calls fn for every point, line vertex and polygon vertex.
func (d *Data) Vertices(fn func(Point)) {
	for _, p := range d.Points {
		fn(p)
	}
	for _, ls := range d.Lines {
		for _, p := range ls {
			fn(p)
		}
	}
	for _, poly := range d.Polygons {
		for _, ring := range poly {
			for _, p := range ring {
				fn(p)
			}
		}
	}
}

func fromOrb(ps []orb.Point) []Point {
	out := make([]Point, len(ps))
	for i, p := range ps {
		out[i] = Pt(p[0], p[1])
	}
	return out
}

func fromOrbPolygon(poly orb.Polygon) [][]Point {
	rings := make([][]Point, 0, len(poly))
	for _, ring := range poly {
		rings = append(rings, fromOrb(ring))
	}
	return rings
}

// addOrb flattens an orb geometry into d.
func (d *Data) addOrb(g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		d.AddPoint(Pt(g[0], g[1]))
	case orb.MultiPoint:
		for _, p := range g {
			d.AddPoint(Pt(p[0], p[1]))
		}
	case orb.LineString:
		d.AddLine(fromOrb(g))
	case orb.MultiLineString:
		for _, ls := range g {
			d.AddLine(fromOrb(ls))
		}
	case orb.Ring:
		d.AddPolygon([][]Point{fromOrb(g)})
	case orb.Polygon:
		d.AddPolygon(fromOrbPolygon(g))
	case orb.MultiPolygon:
		for _, poly := range g {
			d.AddPolygon(fromOrbPolygon(poly))
		}
	case orb.Collection:
		for _, sub := range g {
			d.addOrb(sub)
		}
	case orb.Bound:
		d.AddPolygon(fromOrbPolygon(g.ToPolygon()))
	}
}

// Extensions lists the file extensions Load understands.
var Extensions = []string{".geojson", ".json", ".wkt", ".csv", ".kml", ".osm"}

// Load reads a file in any supported format, chosen by extension.
func Load(path string) (Data, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".wkt":
		return LoadWKT(path)
	case ".csv":
		return LoadCSV(path)
	case ".kml":
		return LoadKML(path)
	case ".osm":
		return LoadOSM(path)
	default:
		return Data{}, errors.New("unsupported file: " + ext)
	}
}
