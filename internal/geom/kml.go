package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

type kmlPolygon struct {
	Outer string   `xml:"outerBoundaryIs>LinearRing>coordinates"`
	Inner []string `xml:"innerBoundaryIs>LinearRing>coordinates"`
}

type kmlGeometry struct {
	Points   []string      `xml:"Point>coordinates"`
	Lines    []string      `xml:"LineString>coordinates"`
	Rings    []string      `xml:"LinearRing>coordinates"`
	Polygons []kmlPolygon  `xml:"Polygon"`
	Multi    []kmlGeometry `xml:"MultiGeometry"`
}

type kmlPlacemark struct {
	Name string `xml:"name"`
	kmlGeometry
}

// parseKMLCoords parses "lon,lat[,alt]" tuples separated by whitespace. Altitude goes into Z.
func parseKMLCoords(s string) []Point {
	var pts []Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		p := Pt(lon, lat)
		if len(vals) > 2 {
			if alt, err := strconv.ParseFloat(strings.TrimSpace(vals[2]), 64); err == nil {
				p.Z = alt
			}
		}
		pts = append(pts, p)
	}
	return pts
}

func (d *Data) addKML(g kmlGeometry) {
	for _, c := range g.Points {
		for _, p := range parseKMLCoords(c) {
			d.AddPoint(p)
		}
	}
	for _, c := range g.Lines {
		if ls := parseKMLCoords(c); len(ls) > 0 {
			d.AddLine(ls)
		}
	}
	for _, c := range g.Rings {
		if ring := parseKMLCoords(c); len(ring) > 0 {
			d.AddPolygon([][]Point{ring})
		}
	}
	for _, poly := range g.Polygons {
		outer := parseKMLCoords(poly.Outer)
		if len(outer) == 0 {
			continue
		}
		rings := [][]Point{outer}
		for _, c := range poly.Inner {
			rings = append(rings, parseKMLCoords(c))
		}
		d.AddPolygon(rings)
	}
	for _, sub := range g.Multi {
		d.addKML(sub)
	}
}

// ReadKML extracts Point, LineString and Polygon geometries of every Placemark, wherever it is
// nested in the document.
func ReadKML(r io.Reader) (Data, error) {
	d := NewData()
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return Data{}, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &start); err != nil {
			return Data{}, err
		}
		d.addKML(pm.kmlGeometry)
	}
	if d.IsEmpty() {
		return Data{}, errors.New("kml: no geometries found")
	}
	return d, nil
}

// LoadKML reads a KML file.
func LoadKML(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return ReadKML(f)
}
