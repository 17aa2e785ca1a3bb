package marker

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DecodeCSV reads markers from a CSV with a header row. Column names are
// matched case-insensitively; "type" is accepted for marker_type and
// "heading" for bearing.
func DecodeCSV(r io.Reader) ([]Marker, error) {
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
	col := map[string]int{}
	for i, h := range recs[0] {
		key := strings.ToLower(strings.TrimSpace(h))
		switch key {
		case "type":
			key = "marker_type"
		case "heading":
			key = "bearing"
		}
		if _, ok := col[key]; !ok {
			col[key] = i
		}
	}
	cell := func(row []string, key string) (string, bool) {
		i, ok := col[key]
		if !ok || i >= len(row) {
			return "", false
		}
		v := strings.TrimSpace(row[i])
		return v, v != ""
	}
	num := func(row []string, key string, line int) (*float64, error) {
		s, ok := cell(row, key)
		if !ok {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, key, err)
		}
		return &f, nil
	}
	str := func(row []string, key string) *string {
		s, ok := cell(row, key)
		if !ok {
			return nil
		}
		return &s
	}

	rs := make([]record, 0, len(recs)-1)
	for n, row := range recs[1:] {
		line := n + 2
		var r record
		r.ID, _ = cell(row, "id")
		r.Color, _ = cell(row, "color")
		r.Name = str(row, "name")
		r.Type = str(row, "marker_type")
		for _, f := range []struct {
			key string
			dst **float64
		}{
			{"x", &r.X}, {"y", &r.Y}, {"depth", &r.Depth},
			{"distance", &r.Distance}, {"bearing", &r.Bearing},
		} {
			v, err := num(row, f.key, line)
			if err != nil {
				return nil, err
			}
			*f.dst = v
		}
		rs = append(rs, r)
	}
	return fromRecords(rs)
}
