package tui

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"geomap/internal/geom"
)

// maxInspected bounds the number of features listed in the inspect popup.
const maxInspected = 3

// inspectAt returns the lon/lat to inspect: the hovered location, otherwise the viewport center.
func (m Model) inspectAt() (geom.Point, bool) {
	if m.hovering && m.hoverHasGeo {
		return geom.Pt(m.hoverLon, m.hoverLat), true
	}
	lo := m.layout()
	lon, lat, ok := m.cellToLonLat(lo.mapW/2, lo.mapH/2, lo.mapW, lo.mapH)
	return geom.Pt(lon, lat), ok
}

// inspect builds the popup text for the features whose extent contains the inspected location.
func (m Model) inspect() (string, bool) {
	at, ok := m.inspectAt()
	if !ok {
		return "", false
	}
	keys := m.scene.idx.SearchPoint(at)
	if len(keys) == 0 {
		p, ok := m.inspectNearest()
		if !ok {
			return "", false
		}
		at, keys = p, m.scene.idx.SearchPoint(p)
	}

	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<unsaved>"
	}
	d := m.scene.data
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("path: %s", m.selPath),
		fmt.Sprintf("extent: %v", d.Extent),
		fmt.Sprintf("counts: pts=%d ls=%d poly=%d", len(d.Points), len(d.Lines), len(d.Polygons)),
		fmt.Sprintf("at: lon=%.6f lat=%.6f", at.X, at.Y),
	}
	for i, key := range keys {
		if i == maxInspected {
			meta = append(meta, fmt.Sprintf("... %d more", len(keys)-i))
			break
		}
		meta = append(meta, m.describe(key)...)
	}
	meta = append(meta, "crs: unknown", "datum: unknown")
	return strings.Join(meta, "\n"), true
}

func (m Model) describe(key int) []string {
	f := m.scene.features[key]
	e, _ := m.scene.idx.Extent(key)
	out := []string{fmt.Sprintf("%v #%d %v", f.kind, f.i+1, e)}
	switch f.kind {
	case lineFeature:
		out = append(out, fmt.Sprintf("  vertices: %d", len(m.scene.data.Lines[f.i])))
	case polygonFeature:
		poly := m.scene.data.Polygons[f.i]
		outer := geom.NewGeometry(geom.PolygonType, poly[0]...)
		area := math.Abs(outer.Area())
		for _, hole := range poly[1:] {
			area -= math.Abs(geom.Area(hole))
		}
		out = append(out,
			fmt.Sprintf("  rings: %d area: %.6g", len(poly), area),
			fmt.Sprintf("  centroid: %v", outer.Centroid()))
		if ps := m.scene.invalid[key]; len(ps) > 0 {
			line := fmt.Sprintf("  self-intersections: %d", len(ps))
			for i, p := range ps {
				if i == maxInspected {
					line += " ..."
					break
				}
				line += " " + p.String()
			}
			out = append(out, line)
		}
	}
	return out
}

// inspectNearest finds the point vertex closest to the viewport center.
func (m Model) inspectNearest() (geom.Point, bool) {
	if len(m.scene.data.Points) == 0 {
		return geom.Point{}, false
	}
	lo := m.layout()
	w, h := lo.mapW, lo.mapH
	cx, cy := w/2, h/2
	bestD := math.MaxInt
	var best geom.Point
	for _, p := range m.scene.data.Points {
		sx, sy, ok := m.screenXY(p.X, p.Y, w, h)
		if !ok {
			continue
		}
		dx := sx - cx
		dy := sy - cy
		if d := dx*dx + dy*dy; d < bestD {
			bestD = d
			best = p
		}
	}
	return best, bestD != math.MaxInt
}
