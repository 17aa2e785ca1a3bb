package marker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DecodeJSON reads either a plain JSON array of marker objects or a GeoJSON
// Feature/FeatureCollection of Point features whose properties carry the
// marker attributes. A third coordinate is used as depth when the properties
// have none.
func DecodeJSON(data []byte) ([]Marker, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty json")
	}
	if trimmed[0] == '[' {
		var rs []record
		if err := json.Unmarshal(trimmed, &rs); err != nil {
			return nil, err
		}
		return fromRecords(rs)
	}
	return decodeGeoJSON(trimmed)
}

type geoFeature struct {
	Type     string          `json:"type"`
	ID       any             `json:"id"`
	Geometry *geoGeometry    `json:"geometry"`
	Props    json.RawMessage `json:"properties"`
}

type geoGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

func decodeGeoJSON(data []byte) ([]Marker, error) {
	var raw struct {
		Type     string       `json:"type"`
		Features []geoFeature `json:"features"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var features []geoFeature
	switch raw.Type {
	case "FeatureCollection":
		features = raw.Features
	case "Feature":
		var f geoFeature
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		features = []geoFeature{f}
	case "":
		return nil, errors.New("invalid geojson: missing type")
	default:
		return nil, errors.New("unsupported geojson type: " + raw.Type)
	}

	rs := make([]record, 0, len(features))
	for i, f := range features {
		var c []float64
		if f.Geometry != nil && f.Geometry.Type == "Point" {
			if err := json.Unmarshal(f.Geometry.Coordinates, &c); err != nil {
				return nil, fmt.Errorf("feature %d: coordinates: %w", i+1, err)
			}
		}
		if len(c) < 2 {
			return nil, fmt.Errorf("feature %d: point geometry: %w", i+1, ErrMissingField)
		}
		var r record
		if len(f.Props) > 0 && string(f.Props) != "null" {
			if err := json.Unmarshal(f.Props, &r); err != nil {
				return nil, fmt.Errorf("feature %d: properties: %w", i+1, err)
			}
		}
		x, y := c[0], c[1]
		r.X, r.Y = &x, &y
		if r.Depth == nil && len(c) > 2 {
			z := c[2]
			r.Depth = &z
		}
		if r.ID == "" && f.ID != nil {
			r.ID = fmt.Sprint(f.ID)
		}
		rs = append(rs, r)
	}
	return fromRecords(rs)
}
