package geom

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/paulmach/orb/geojson"
)

// ReadFeatures decodes a FeatureCollection, a single Feature or a bare geometry into a feature
// collection. A bare geometry becomes a feature without properties.
func ReadFeatures(data []byte) (*geojson.FeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case "":
		return nil, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		return geojson.UnmarshalFeatureCollection(data)
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		fc := geojson.NewFeatureCollection()
		fc.Append(f)
		return fc, nil
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, err
		}
		fc := geojson.NewFeatureCollection()
		fc.Append(geojson.NewFeature(g.Geometry()))
		return fc, nil
	}
}

// ParseGeoJSON returns Data for every feature geometry in the document.
func ParseGeoJSON(data []byte) (Data, error) {
	fc, err := ReadFeatures(data)
	if err != nil {
		return Data{}, err
	}
	d := NewData()
	for _, f := range fc.Features {
		if f.Geometry != nil {
			d.addOrb(f.Geometry)
		}
	}
	if d.IsEmpty() {
		return Data{}, ErrNoGeometry
	}
	return d, nil
}

// LoadGeoJSON reads a GeoJSON file and returns Data (points, lines, polygons)
func LoadGeoJSON(path string) (Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseGeoJSON(data)
}
