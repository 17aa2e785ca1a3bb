package marker

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DecodeKML extracts markers from KML Placemarks. The Point coordinates are
// "x,y[,depth]"; other attributes come from ExtendedData <Data> entries.
func DecodeKML(data []byte) ([]Marker, error) {
	type kmlData struct {
		Name  string `xml:"name,attr"`
		Value string `xml:"value"`
	}
	type kmlPoint struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		ID    string    `xml:"id,attr"`
		Name  string    `xml:"name"`
		Point *kmlPoint `xml:"Point"`
		Data  []kmlData `xml:"ExtendedData>Data"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Document>Placemark"`
		Loose      []kmlPlacemark `xml:"Placemark"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	pms := append(doc.Placemarks, doc.Loose...)
	if len(pms) == 0 {
		return nil, errors.New("kml: no placemarks found")
	}

	parse := func(s string) (*float64, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return &f, nil
	}

	rs := make([]record, 0, len(pms))
	for i, pm := range pms {
		r := record{ID: pm.ID}
		if pm.Name != "" {
			name := strings.TrimSpace(pm.Name)
			r.Name = &name
		}
		if pm.Point != nil {
			vals := strings.Split(strings.TrimSpace(pm.Point.Coordinates), ",")
			dst := []**float64{&r.X, &r.Y, &r.Depth}
			for j := 0; j < len(vals) && j < len(dst); j++ {
				v, err := parse(vals[j])
				if err != nil {
					return nil, fmt.Errorf("placemark %d: coordinates: %w", i+1, err)
				}
				*dst[j] = v
			}
		}
		for _, d := range pm.Data {
			v := strings.TrimSpace(d.Value)
			var err error
			switch strings.ToLower(d.Name) {
			case "id":
				r.ID = v
			case "marker_type", "type":
				r.Type = &v
			case "color":
				r.Color = v
			case "depth":
				r.Depth, err = parse(v)
			case "distance":
				r.Distance, err = parse(v)
			case "bearing", "heading":
				r.Bearing, err = parse(v)
			}
			if err != nil {
				return nil, fmt.Errorf("placemark %d: %s: %w", i+1, d.Name, err)
			}
		}
		rs = append(rs, r)
	}
	return fromRecords(rs)
}
