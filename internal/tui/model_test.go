package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tdewolff/test"

	"geomap/internal/geom"
	"geomap/internal/index"
)

const bowtieAndSquare = `GEOMETRYCOLLECTION (
	POLYGON ((0 0, 1 1, 1 0, 0 1, 0 0)),
	POLYGON ((2 0, 3 0, 3 1, 2 1, 2 0))
)`

func newTestModel(t *testing.T) Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shapes.wkt")
	test.Error(t, os.WriteFile(path, []byte(bowtieAndSquare), 0o644))
	m, err := NewWithPath(path, &index.Options{Capacity: 2, MinFill: 0.5})
	test.Error(t, err)
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return mm.(Model)
}

func TestNewOptions(t *testing.T) {
	_, err := New(&index.Options{Capacity: 0, MinFill: 0.3})
	test.That(t, errors.Is(err, index.ErrInvalidCapacity))
	_, err = NewWithPath("missing.wkt", &index.Options{Capacity: 4, MinFill: 0.9})
	test.That(t, errors.Is(err, index.ErrInvalidMinFill))

	m, err := New(nil)
	test.Error(t, err)
	test.T(t, m.opts, index.DefaultOptions)
	test.T(t, m.scene.idx.Len(), 0)
	test.That(t, m.scene.view.IsUndefined())
}

func TestLoadPath(t *testing.T) {
	m := newTestModel(t)
	test.T(t, len(m.scene.features), 2)
	test.T(t, m.scene.idx.Len(), 2)
	test.T(t, m.scene.idx.Bounds(), geom.Rect(0, 0, 3, 1))
	test.T(t, m.scene.invalid, map[int][]geom.Point{0: {geom.Pt(0.5, 0.5)}})
	test.That(t, strings.Contains(m.status, "poly=2"), m.status)
	test.That(t, strings.Contains(m.status, "invalid=1"), m.status)
	test.That(t, m.showPolys)

	m.loadPath(filepath.Join(t.TempDir(), "shapes.shp"))
	test.That(t, strings.HasPrefix(m.status, "load error"), m.status)
	test.T(t, len(m.scene.features), 2)
}

func TestPaste(t *testing.T) {
	m := newTestModel(t)
	mm, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = mm.(Model)
	test.That(t, m.pasteMode)

	m.ta.SetValue("LINESTRING (0 0, 4 2)")
	mm, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mm.(Model)
	test.That(t, !m.pasteMode)
	test.T(t, m.selPath, "")
	test.T(t, len(m.scene.data.Lines), 1)
	test.T(t, len(m.scene.invalid), 0)
	test.That(t, m.showLines)

	mm, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = mm.(Model)
	m.ta.SetValue("POLYGON ((0 0")
	mm, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mm.(Model)
	test.That(t, strings.HasPrefix(m.status, "wkt error"), m.status)
	test.T(t, len(m.scene.data.Lines), 1)
}

func TestVisible(t *testing.T) {
	m := newTestModel(t)
	lo := m.layout()
	vp := m.viewport(lo.mapW, lo.mapH)
	test.That(t, vp.Intersects(m.scene.data.Extent))
	test.T(t, len(m.scene.visible(vp)), 2)
	test.T(t, m.scene.visible(geom.Rect(2.4, 0.4, 2.6, 0.6)), []feature{{polygonFeature, 1}})
	test.T(t, len(m.scene.visible(geom.Rect(10, 10, 11, 11))), 0)

	// zoomed in on the bowtie the square falls outside the viewport
	m.zoom = 8.0
	m.offsetX = lo.mapW * 3
	vp = m.viewport(lo.mapW, lo.mapH)
	test.That(t, vp.Max.X < 2.0, vp)
	test.T(t, m.scene.visible(vp), []feature{{polygonFeature, 0}})
}

func TestInspect(t *testing.T) {
	m := newTestModel(t)
	m.hovering, m.hoverHasGeo = true, true
	m.hoverLon, m.hoverLat = 2.5, 0.5
	popup, ok := m.inspect()
	test.That(t, ok)
	test.That(t, strings.Contains(popup, "polygon #2 [2 0 3 1]"), popup)
	test.That(t, strings.Contains(popup, "area: 1"), popup)
	test.That(t, strings.Contains(popup, "centroid: (2.5,0.5)"), popup)
	test.That(t, !strings.Contains(popup, "self-intersections"), popup)

	m.hoverLon, m.hoverLat = 0.5, 0.25
	popup, ok = m.inspect()
	test.That(t, ok)
	test.That(t, strings.Contains(popup, "self-intersections: 1 (0.5,0.5)"), popup)

	mm, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	m = mm.(Model)
	test.T(t, m.status, "inspect popup")
	mm, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	test.T(t, mm.(Model).inspectPopup, "")
}

func TestView(t *testing.T) {
	m := newTestModel(t)
	v := m.View()
	test.That(t, strings.Contains(v, "1 invalid polygons"))
	test.That(t, strings.Contains(v, "✕"))

	lo := m.layout()
	ascii := m.renderAsciiMap(lo.mapW, lo.mapH)
	test.T(t, len(strings.Split(ascii, "\n")), lo.mapH)
	test.That(t, strings.ContainsFunc(ascii, func(r rune) bool { return 0x2800 < r && r <= 0x28FF }))
}

func TestViewExtent(t *testing.T) {
	var tts = []struct {
		e, view geom.Extent
	}{
		{geom.Rect(0, 0, 2, 1), geom.Rect(0, 0, 2, 1)},
		{geom.Rect(1, 1, 1, 1), geom.Rect(0.5, 0.5, 1.5, 1.5)},
		{geom.Rect(0, 3, 4, 3), geom.Rect(0, 1, 4, 5)},
	}
	for _, tt := range tts {
		test.T(t, viewExtent(tt.e), tt.view)
	}
	test.That(t, viewExtent(geom.NewExtent()).IsUndefined())
}

func TestMouseHover(t *testing.T) {
	m := newTestModel(t)
	lo := m.layout()
	mm, _ := m.Update(tea.MouseMsg{X: lo.mapX + lo.mapW/2, Y: lo.mapY + lo.mapH/2})
	m = mm.(Model)
	test.That(t, m.hovering)
	test.That(t, m.hoverHasGeo)
	test.That(t, m.scene.data.Extent.Contains(geom.Pt(m.hoverLon, m.hoverLat)))

	mm, _ = m.Update(tea.MouseMsg{X: lo.mapX + lo.mapW + 5, Y: 0})
	test.That(t, !mm.(Model).hovering)
}
