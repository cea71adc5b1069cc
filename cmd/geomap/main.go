package main

import (
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tdewolff/argp"

	"geomap/internal/index"
	"geomap/internal/tui"
)

type View struct {
	Capacity int     `short:"c" default:"32" desc:"Maximum entries per index node"`
	MinFill  float64 `default:"0.3" desc:"Minimum fill fraction of index nodes, within [0,0.5]"`
	Debug    string  `short:"d" desc:"Write debug log to file"`
	Input    string  `index:"0" desc:"Input file (.geojson, .json, .wkt, .csv, .kml, .osm)"`
}

func main() {
	root := argp.NewCmd(&View{}, "geomap: terminal geospatial viewer")
	root.Parse()
	root.PrintHelp()
}

func (cmd *View) Run() error {
	// the terminal belongs to the program, logs go to a file or nowhere
	log.SetOutput(io.Discard)
	if cmd.Debug != "" {
		f, err := tea.LogToFile(cmd.Debug, "geomap")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	opts := &index.Options{
		Capacity: cmd.Capacity,
		MinFill:  cmd.MinFill,
	}
	var m tui.Model
	var err error
	if cmd.Input != "" {
		m, err = tui.NewWithPath(cmd.Input, opts)
	} else {
		m, err = tui.New(opts)
	}
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
