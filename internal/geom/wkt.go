package geom

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
)

const wktCollection = "GEOMETRYCOLLECTION"

// ParseWKT parses a WKT geometry, including multi geometries and collections.
func ParseWKT(s string) (Data, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Data{}, errors.New("empty wkt")
	}
	d := NewData()
	if err := d.addWKT(s); err != nil {
		return Data{}, err
	}
	if d.IsEmpty() {
		return Data{}, errors.New("wkt: no coordinates parsed")
	}
	return d, nil
}

// addWKT splits collections into their members itself, the decoder only accepts them without
// spaces between members.
func (d *Data) addWKT(s string) error {
	s = strings.TrimSpace(s)
	if len(s) < len(wktCollection) || !strings.EqualFold(s[:len(wktCollection)], wktCollection) {
		g, err := wkt.Unmarshal(s)
		if err != nil {
			return fmt.Errorf("wkt: %w", err)
		}
		d.addOrb(g)
		return nil
	}

	body := strings.TrimSpace(s[len(wktCollection):])
	if strings.EqualFold(body, "EMPTY") {
		return nil
	} else if len(body) < 2 || body[0] != '(' || body[len(body)-1] != ')' {
		return fmt.Errorf("wkt collection: invalid %q", s)
	}
	members, err := splitMembers(body[1 : len(body)-1])
	if err != nil {
		return fmt.Errorf("wkt collection: %w", err)
	}
	for _, member := range members {
		if err := d.addWKT(member); err != nil {
			return err
		}
	}
	return nil
}

// splitMembers splits at the commas outside of parentheses.
func splitMembers(s string) ([]string, error) {
	var members []string
	depth, start := 0, 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, errors.New("unbalanced parentheses")
			}
		case ',':
			if depth == 0 {
				members = append(members, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, errors.New("unbalanced parentheses")
	}
	if strings.TrimSpace(s[start:]) != "" || 0 < len(members) {
		members = append(members, s[start:])
	}
	return members, nil
}

// LoadWKT reads a file holding one WKT geometry.
func LoadWKT(path string) (Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseWKT(string(data))
}
