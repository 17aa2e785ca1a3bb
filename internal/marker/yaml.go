package marker

import (
	"gopkg.in/yaml.v3"
)

// DecodeYAML reads a document with a top-level "markers" list.
func DecodeYAML(data []byte) ([]Marker, error) {
	var doc struct {
		Markers []record `yaml:"markers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return fromRecords(doc.Markers)
}
