package geom

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmgeojson"
)

// ReadOSM reads an OSM XML document. Nodes with tags become points, ways become lines, closed
// area ways and multipolygon relations become polygons.
func ReadOSM(r io.Reader) (Data, error) {
	o := &osm.OSM{}
	if err := xml.NewDecoder(r).Decode(o); err != nil {
		return Data{}, fmt.Errorf("osm: %w", err)
	}
	fc, err := osmgeojson.Convert(o,
		osmgeojson.NoID(true),
		osmgeojson.NoMeta(true),
		osmgeojson.NoRelationMembership(true))
	if err != nil {
		return Data{}, fmt.Errorf("osm: %w", err)
	}
	d := NewData()
	for _, f := range fc.Features {
		if f.Geometry != nil {
			d.addOrb(f.Geometry)
		}
	}
	if d.IsEmpty() {
		return Data{}, fmt.Errorf("osm: %w", ErrNoGeometry)
	}
	return d, nil
}

// LoadOSM reads a .osm file.
func LoadOSM(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return ReadOSM(f)
}
