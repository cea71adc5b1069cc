package tui

import (
	"fmt"
	"log"
	"math"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geomap/internal/geom"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				w := strings.TrimSpace(m.ta.Value())
				if w == "" {
					m.status = "paste: empty"
					return m, nil
				}
				d, err := geom.ParseWKT(w)
				if err != nil {
					m.status = "wkt error: " + err.Error()
					return m, nil
				}
				if !m.setData(d) {
					return m, nil
				}
				// reset viewport for immediate visibility
				m.selPath = ""
				m.zoom = 1.0
				m.offsetX, m.offsetY = 0, 0
				log.Printf("pasted wkt: extent %v", d.Extent)
				m.status = "rendered WKT" + m.countsStatus()
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showPoints = !m.showPoints
			m.status = fmt.Sprintf("points: %v", m.showPoints)
		case "2":
			m.showLines = !m.showLines
			m.status = fmt.Sprintf("lines: %v", m.showLines)
		case "3":
			m.showPolys = !m.showPolys
			m.status = fmt.Sprintf("polys: %v", m.showPolys)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
		case "p":
			m.pasteMode = !m.pasteMode
			if m.pasteMode {
				m.ta.SetValue("")
				m.status = "paste mode"
				m.ta.Focus()
			} else {
				m.status = "view mode"
				m.ta.Blur()
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "i":
			if popup, ok := m.inspect(); ok {
				m.inspectPopup = popup
				m.status = "inspect popup"
			} else {
				m.inspectPopup = "no feature nearby"
				m.status = m.inspectPopup
			}
		case "esc":
			m.inspectPopup = ""
		case "l":
			// toggle all layers
			all := m.showPoints && m.showLines && m.showPolys
			m.showPoints = !all
			m.showLines = !all
			m.showPolys = !all
			m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		// track hover over map area
		lo := m.layout()
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, lo.contentH-2)
		}
		cx, cy := msg.X, msg.Y
		if cx >= lo.mapX && cx < lo.mapX+lo.mapW && cy >= lo.mapY && cy < lo.mapY+lo.mapH {
			m.hovering = true
			m.hoverCellX = cx - lo.mapX
			m.hoverCellY = cy - lo.mapY
			// compute lon/lat for footer
			if lon, lat, ok := m.cellToLonLat(m.hoverCellX, m.hoverCellY, lo.mapW, lo.mapH); ok {
				m.hoverHasGeo = true
				m.hoverLon = lon
				m.hoverLat = lat
			} else {
				m.hoverHasGeo = false
			}
			m.hoverMicX, m.hoverMicY = m.nearestVertex(m.hoverCellX*2, m.hoverCellY*4, lo.mapW, lo.mapH)
		} else {
			m.hovering = false
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// nearestVertex snaps micro coordinates to the closest vertex of a visible feature.
func (m Model) nearestVertex(hxMic, hyMic, w, h int) (int, int) {
	best := math.MaxInt
	bx, by := hxMic, hyMic
	for _, f := range m.scene.visible(m.viewport(w, h)) {
		m.scene.vertices(f, func(p geom.Point) {
			mx, my, ok := m.screenXYMicro(p.X, p.Y, w, h)
			if !ok {
				return
			}
			dx := mx - hxMic
			dy := my - hyMic
			if d := dx*dx + dy*dy; d < best {
				best = d
				bx, by = mx, my
			}
		})
	}
	return bx, by
}
