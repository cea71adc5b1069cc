package tui

import (
	"sort"
	"strings"

	"geomap/internal/geom"
)

// cellToLonLat converts a map cell coordinate back to lon/lat using the view extent, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	e := m.scene.view
	if !(e.W() > 0 && e.H() > 0) {
		return 0, 0, false
	}
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := e.Min.X + nx*e.W()
	lat := e.Min.Y + ny*e.H()
	return lon, lat, true
}

// viewport returns the lon/lat extent shown on a w×h canvas, with one cell of margin.
func (m Model) viewport(w, h int) geom.Extent {
	x0, y0, ok0 := m.cellToLonLat(-1, h, w, h)
	x1, y1, ok1 := m.cellToLonLat(w, -1, w, h)
	if !ok0 || !ok1 {
		return geom.NewExtent()
	}
	return geom.Rect(x0, y0, x1, y1)
}

func (m Model) renderAsciiMap(w, h int) string {
	// Plain background (no grid)
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		lines[y] = strings.Repeat(" ", w)
	}
	// High-resolution braille buffer for crisp lines/edges
	br := newBrailleBuf(w, h)

	d := m.scene.data
	keys := m.scene.idx.Search(m.viewport(w, h))
	for _, key := range keys {
		f := m.scene.features[key]
		switch {
		case f.kind == polygonFeature && m.showPolys:
			m.drawPolygon(br, d.Polygons[f.i], w, h)
		case f.kind == lineFeature && m.showLines:
			var prev *[2]int
			for _, p := range d.Lines[f.i] {
				mx, my, ok := m.screenXYMicro(p.X, p.Y, w, h)
				if !ok {
					continue
				}
				if prev != nil {
					br.drawLineMicro(prev[0], prev[1], mx, my)
				}
				prev = &[2]int{mx, my}
			}
		case f.kind == pointFeature && m.showPoints && len(d.Lines) == 0 && len(d.Polygons) == 0:
			// points are drawn only when the dataset has no lines or polygons
			p := d.Points[f.i]
			if mx, my, ok := m.screenXYMicro(p.X, p.Y, w, h); ok {
				br.setPixel(mx, my)
			}
		}
	}

	// Composite braille overlay onto base lines
	braLines := br.toLines()
	for y := 0; y < h && y < len(braLines); y++ {
		base := []rune(lines[y])
		over := []rune(braLines[y])
		for x := 0; x < len(base) && x < len(over); x++ {
			if over[x] != ' ' {
				base[x] = over[x]
			}
		}
		lines[y] = string(base)
	}

	// Self-intersections of visible polygons, then the hovered vertex
	marks := map[[2]int]string{}
	if m.showPolys {
		cross := warnStyle.Render("✕")
		for _, key := range keys {
			for _, p := range m.scene.invalid[key] {
				if sx, sy, ok := m.screenXY(p.X, p.Y, w, h); ok {
					marks[[2]int{sx, sy}] = cross
				}
			}
		}
	}
	if m.hovering {
		marks[[2]int{m.hoverMicX / 2, m.hoverMicY / 4}] = hoverStyle.Render("◯")
	}
	for y := range lines {
		lines[y] = overlayRow(lines[y], y, marks)
	}
	return strings.Join(lines, "\n")
}

// overlayRow replaces cells of row y by the styled marks, which may contain ANSI sequences.
func overlayRow(row string, y int, marks map[[2]int]string) string {
	r := []rune(row)
	var sb strings.Builder
	changed := false
	for x, c := range r {
		if mark, ok := marks[[2]int{x, y}]; ok {
			sb.WriteString(mark)
			changed = true
		} else {
			sb.WriteRune(c)
		}
	}
	if !changed {
		return row
	}
	return sb.String()
}

// drawPolygon fills the outer ring with the even-odd rule per micro scanline and draws the edges of
// every ring. Holes are not cut from the fill.
func (m Model) drawPolygon(br *brailleBuf, poly [][]geom.Point, w, h int) {
	var ringsMic [][][2]int
	for _, ring := range poly {
		var sm [][2]int
		for _, p := range ring {
			mx, my, ok := m.screenXYMicro(p.X, p.Y, w, h)
			if !ok {
				continue
			}
			sm = append(sm, [2]int{mx, my})
		}
		if len(sm) >= 3 {
			ringsMic = append(ringsMic, sm)
		}
	}
	if len(ringsMic) == 0 {
		return
	}

	outerMic := ringsMic[0]
	hMic := h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := 0; i < len(outerMic); i++ {
			a := outerMic[i]
			b := outerMic[(i+1)%len(outerMic)]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], b[1]
			x0, x1 := a[0], b[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		if len(xs) >= 2 {
			sort.Ints(xs)
			for i := 0; i+1 < len(xs); i += 2 {
				for xMic := max(0, xs[i]); xMic <= min(xs[i+1], w*2-1); xMic++ {
					br.setPixel(xMic, yMic)
				}
			}
		}
	}
	for _, r := range ringsMic {
		for i := 0; i < len(r); i++ {
			a := r[i]
			b := r[(i+1)%len(r)]
			br.drawLineMicro(a[0], a[1], b[0], b[1])
		}
	}
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	e := m.scene.view
	if !(e.W() > 0 && e.H() > 0) {
		return 0, 0, false
	}
	nx := (lon - e.Min.X) / e.W()
	ny := (lat - e.Min.Y) / e.H()
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps lon/lat to current screen integer coordinates considering zoom and pan.
func (m Model) screenXY(lon, lat float64, w, h int) (int, int, bool) {
	e := m.scene.view
	if !(e.W() > 0 && e.H() > 0) {
		return 0, 0, false
	}
	nx := (lon - e.Min.X) / e.W()
	ny := (lat - e.Min.Y) / e.H()
	// Apply zoom around center (0.5, 0.5)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}
