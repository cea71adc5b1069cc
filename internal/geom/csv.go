package geom

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// LatLonColumns returns the indices of the latitude and longitude columns of a CSV header.
// Column detection: lat|latitude|y and lon|lng|long|longitude|x (case-insensitive).
func LatLonColumns(header []string) (idxLat, idxLon int) {
	idxLat, idxLon = -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		}
	}
	return idxLat, idxLon
}

// ReadCSV reads points from CSV rows, skipping rows without valid coordinates.
func ReadCSV(r io.Reader) (Data, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return Data{}, err
	}
	if len(recs) == 0 {
		return Data{}, errors.New("empty csv")
	}
	idxLat, idxLon := LatLonColumns(recs[0])
	if idxLat == -1 || idxLon == -1 {
		return Data{}, errors.New("csv: latitude/longitude columns not found")
	}
	d := NewData()
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		d.AddPoint(Pt(lon, lat))
	}
	if d.IsEmpty() {
		return Data{}, errors.New("csv: no valid points parsed")
	}
	return d, nil
}

// LoadCSV reads a CSV with latitude/longitude columns and returns points.
func LoadCSV(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return ReadCSV(f)
}
