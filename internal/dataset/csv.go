package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
)

// column aliases, matched case-insensitively against the header row
var csvColumns = map[string][]string{
	"id":          {"id", "track_id", "key"},
	"label":       {"label", "title", "name"},
	"primary":     {"primary", "era", "category"},
	"secondary":   {"secondary", "game", "group"},
	"group_title": {"group_title", "game_title"},
	"x":           {"x", "umap_x", "lon", "lng", "longitude"},
	"y":           {"y", "umap_y", "lat", "latitude"},
}

// decodeCSV reads a header row followed by one point per row. Rows whose
// coordinates do not parse are kept with nil coordinates and dropped later.
func decodeCSV(r io.Reader) ([]record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	idx := make(map[string]int)
	for i, h := range recs[0] {
		lh := strings.ToLower(strings.TrimSpace(h))
		for field, aliases := range csvColumns {
			if _, seen := idx[field]; seen {
				continue
			}
			for _, a := range aliases {
				if lh == a {
					idx[field] = i
				}
			}
		}
	}
	if _, ok := idx["x"]; !ok {
		return nil, errors.New("csv: x/y columns not found")
	}
	if _, ok := idx["y"]; !ok {
		return nil, errors.New("csv: x/y columns not found")
	}

	cell := func(row []string, field string) string {
		i, ok := idx[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	num := func(row []string, field string) *float64 {
		v, err := strconv.ParseFloat(cell(row, field), 64)
		if err != nil {
			return nil
		}
		return &v
	}

	out := make([]record, 0, len(recs)-1)
	for _, row := range recs[1:] {
		out = append(out, record{
			ID:         cell(row, "id"),
			Label:      cell(row, "label"),
			Primary:    cell(row, "primary"),
			Secondary:  cell(row, "secondary"),
			GroupTitle: cell(row, "group_title"),
			X:          num(row, "x"),
			Y:          num(row, "y"),
		})
	}
	return out, nil
}
