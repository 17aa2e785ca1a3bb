package marker

import (
	"github.com/BurntSushi/toml"
)

// DecodeTOML reads a document of [[markers]] tables.
func DecodeTOML(data []byte) ([]Marker, error) {
	var doc struct {
		Markers []record `toml:"markers"`
	}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, err
	}
	return fromRecords(doc.Markers)
}
