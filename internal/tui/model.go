package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"geomap/internal/geom"
	"geomap/internal/index"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	opts  index.Options
	scene *scene

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// attributes table
	showAttrs bool
	tbl       table.Model
}

// New returns an empty viewer whose spatial index uses opts, nil for the index defaults.
func New(opts *index.Options) (Model, error) {
	if opts == nil {
		opts = &index.DefaultOptions
	}
	empty, err := newScene(geom.NewData(), opts)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "geomap ready",
		opts:        *opts,
		scene:       empty,
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, LINESTRING, POLYGON, MULTI*, GEOMETRYCOLLECTION). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns will be inferred per dataset)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m, nil
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(path string, opts *index.Options) (Model, error) {
	m, err := New(opts)
	if err != nil {
		return Model{}, err
	}
	m.loadPath(path)
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }

// setData replaces the current dataset and rebuilds the spatial index.
func (m *Model) setData(d geom.Data) bool {
	s, err := newScene(d, &m.opts)
	if err != nil {
		m.status = "index error: " + err.Error()
		return false
	}
	m.scene = s
	// prefer polys > lines > points for visibility
	m.showPolys = len(d.Polygons) > 0
	m.showLines = len(d.Lines) > 0 && !m.showPolys
	m.showPoints = len(d.Points) > 0 && !m.showPolys
	m.inspectPopup = ""
	return true
}
