package tui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"geomap/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
	isDir       bool
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		p := filepath.Join(m.cwd, name)
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if slices.Contains(geom.Extensions, ext) {
			items = append(items, fileItem{title: name, desc: ext, path: p})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

func (m *Model) countsStatus() string {
	d := m.scene.data
	s := fmt.Sprintf("  counts: pts=%d ls=%d poly=%d", len(d.Points), len(d.Lines), len(d.Polygons))
	if n := len(m.scene.invalid); n > 0 {
		s += fmt.Sprintf("  invalid=%d", n)
	}
	return s
}

// loadPath loads supported formats into the model.
func (m *Model) loadPath(p string) {
	d, err := geom.Load(p)
	if err != nil {
		log.Printf("load %s: %v", p, err)
		m.status = "load error: " + err.Error()
		return
	}
	if !m.setData(d) {
		return
	}
	m.selPath = p
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	log.Printf("loaded %s: extent %v", p, d.Extent)
	m.status = "loaded: " + filepath.Base(p) + m.countsStatus()

	// If attributes are currently shown, verify availability for the new dataset
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}
