package geom

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

type counts struct {
	points, lines, polygons int
}

func countsOf(d Data) counts {
	return counts{len(d.Points), len(d.Lines), len(d.Polygons)}
}

func TestParseWKT(t *testing.T) {
	var tts = []struct {
		wkt    string
		counts counts
		extent Extent
	}{
		{"POINT (1 2)", counts{1, 0, 0}, Rect(1, 2, 1, 2)},
		{"MULTIPOINT ((1 2), (3 4))", counts{2, 0, 0}, Rect(1, 2, 3, 4)},
		{"LINESTRING (0 0, 2 1, 4 -1)", counts{0, 1, 0}, Rect(0, -1, 4, 1)},
		{"POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 2 1, 2 2, 1 1))", counts{0, 0, 1}, Rect(0, 0, 4, 4)},
		{"MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)), ((5 5, 6 5, 6 6, 5 5)))", counts{0, 0, 2}, Rect(0, 0, 6, 6)},
		{"GEOMETRYCOLLECTION (POINT (9 9), LINESTRING (0 0, 1 1))", counts{1, 1, 0}, Rect(0, 0, 9, 9)},
		{"GEOMETRYCOLLECTION(POINT(9 9),LINESTRING(0 0,1 1))", counts{1, 1, 0}, Rect(0, 0, 9, 9)},
		{"geometrycollection (\n\tPOINT (1 1),\n\tGEOMETRYCOLLECTION (LINESTRING (0 0, 2 2)),\n\tPOLYGON ((0 0, 3 0, 3 3, 0 0))\n)", counts{1, 1, 1}, Rect(0, 0, 3, 3)},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			d, err := ParseWKT(tt.wkt)
			test.Error(t, err)
			test.T(t, countsOf(d), tt.counts)
			test.T(t, d.Extent, tt.extent)
		})
	}

	d, err := ParseWKT("POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 2 1, 2 2, 1 1))")
	test.Error(t, err)
	test.T(t, len(d.Polygons[0]), 2)
	test.T(t, d.Polygons[0][1][1], Pt(2, 1))

	_, err = ParseWKT("   ")
	test.That(t, err != nil)
	_, err = ParseWKT("CIRCLE (1 2)")
	test.That(t, err != nil)
	_, err = ParseWKT("GEOMETRYCOLLECTION EMPTY")
	test.That(t, err != nil)
	_, err = ParseWKT("GEOMETRYCOLLECTION (POINT (1 1)")
	test.That(t, err != nil)
	_, err = ParseWKT("GEOMETRYCOLLECTION (POINT (1 1), CIRCLE (1 2))")
	test.That(t, err != nil)
}

func TestParseGeoJSON(t *testing.T) {
	var tts = []struct {
		json   string
		counts counts
	}{
		{`{"type":"Point","coordinates":[1,2]}`, counts{1, 0, 0}},
		{`{"type":"Feature","properties":{"name":"a"},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}`, counts{0, 1, 0}},
		{`{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[2,0],[2,2],[0,0]]]}},
			{"type":"Feature","properties":{},"geometry":{"type":"MultiPoint","coordinates":[[5,5],[6,6]]}}
		]}`, counts{2, 0, 1}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			d, err := ParseGeoJSON([]byte(tt.json))
			test.Error(t, err)
			test.T(t, countsOf(d), tt.counts)
		})
	}

	_, err := ParseGeoJSON([]byte(`{"type":"FeatureCollection","features":[]}`))
	test.That(t, errors.Is(err, ErrNoGeometry))
	_, err = ParseGeoJSON([]byte(`{"coordinates":[1,2]}`))
	test.That(t, err != nil)
	_, err = ParseGeoJSON([]byte(`not json`))
	test.That(t, err != nil)
}

func TestReadCSV(t *testing.T) {
	d, err := ReadCSV(strings.NewReader("name, Latitude, Longitude\na, 52.1, 4.3\nb, x, 1\nc, -1.5, 3\nd\n"))
	test.Error(t, err)
	test.T(t, d.Points, []Point{Pt(4.3, 52.1), Pt(3, -1.5)})
	test.T(t, d.Extent, Rect(3, -1.5, 4.3, 52.1))

	_, err = ReadCSV(strings.NewReader("name,value\na,1\n"))
	test.That(t, err != nil)
	_, err = ReadCSV(strings.NewReader(""))
	test.That(t, err != nil)

	lat, lon := LatLonColumns([]string{"X", "id", "lat"})
	test.T(t, lat, 2)
	test.T(t, lon, 0)
}

func TestReadKML(t *testing.T) {
	kml := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document><Folder>
	<Placemark><name>p</name><Point><coordinates>4.5,52.0,10</coordinates></Point></Placemark>
	<Placemark><LineString><coordinates>0,0 1,1 2,0</coordinates></LineString></Placemark>
	<Placemark><Polygon>
		<outerBoundaryIs><LinearRing><coordinates>0,0 4,0 4,4 0,4 0,0</coordinates></LinearRing></outerBoundaryIs>
		<innerBoundaryIs><LinearRing><coordinates>1,1 2,1 2,2 1,1</coordinates></LinearRing></innerBoundaryIs>
	</Polygon></Placemark>
	<Placemark><MultiGeometry><Point><coordinates>-1,-1</coordinates></Point></MultiGeometry></Placemark>
</Folder></Document>
</kml>`
	d, err := ReadKML(strings.NewReader(kml))
	test.Error(t, err)
	test.T(t, countsOf(d), counts{2, 1, 1})
	test.T(t, d.Points[0], Point{X: 4.5, Y: 52.0, Z: 10.0})
	test.T(t, len(d.Polygons[0]), 2)
	test.Float(t, d.Extent.Min.X, -1.0)
	test.Float(t, d.Extent.Max.Y, 52.0)

	_, err = ReadKML(strings.NewReader(`<kml><Document></Document></kml>`))
	test.That(t, err != nil)
}

func TestReadOSM(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
	<node id="1" lat="0" lon="0"/>
	<node id="2" lat="0" lon="1"/>
	<node id="3" lat="1" lon="1"/>
	<node id="4" lat="1" lon="0"/>
	<way id="10">
		<nd ref="1"/><nd ref="2"/><nd ref="3"/><nd ref="4"/><nd ref="1"/>
		<tag k="building" v="yes"/>
	</way>
	<way id="11">
		<nd ref="1"/><nd ref="3"/>
		<tag k="highway" v="residential"/>
	</way>
</osm>`
	d, err := ReadOSM(strings.NewReader(doc))
	test.Error(t, err)
	test.T(t, len(d.Polygons), 1)
	test.T(t, len(d.Lines), 1)
	test.T(t, len(d.Polygons[0][0]), 5)
	test.Float(t, Area(d.Polygons[0][0][:4]), 1.0)
	test.T(t, d.Extent, Rect(0, 0, 1, 1))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shape.wkt")
	test.Error(t, os.WriteFile(path, []byte("LINESTRING (0 0, 1 1)"), 0o644))
	d, err := Load(path)
	test.Error(t, err)
	test.T(t, countsOf(d), counts{0, 1, 0})

	path = filepath.Join(dir, "points.CSV")
	test.Error(t, os.WriteFile(path, []byte("lat,lon\n1,2\n"), 0o644))
	d, err = Load(path)
	test.Error(t, err)
	test.T(t, d.Points, []Point{Pt(2, 1)})

	_, err = Load(filepath.Join(dir, "shape.shp"))
	test.That(t, err != nil)
	_, err = Load(filepath.Join(dir, "missing.geojson"))
	test.That(t, err != nil)
}

func TestDataVertices(t *testing.T) {
	d := NewData()
	test.That(t, d.IsEmpty())
	test.That(t, d.Extent.IsUndefined())
	d.AddPoint(Pt(0, 0))
	d.AddLine([]Point{Pt(1, 1), Pt(2, 2)})
	d.AddPolygon([][]Point{unitSquare})
	n := 0
	d.Vertices(func(Point) { n++ })
	test.T(t, n, 7)
	test.T(t, d.Extent, Rect(0, 0, 2, 2))
}
