package marker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extensions lists the file extensions LoadFile understands.
var Extensions = []string{".csv", ".geojson", ".json", ".kml", ".toml", ".yaml", ".yml"}

// Supported reports whether path has an extension LoadFile understands.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// LoadFile reads markers from path, choosing the decoder by extension.
func LoadFile(path string) ([]Marker, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return nil, fmt.Errorf("%s: %w: %q", filepath.Base(path), ErrUnsupportedFormat, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ms []Marker
	switch ext {
	case ".csv":
		ms, err = DecodeCSV(strings.NewReader(string(data)))
	case ".geojson", ".json":
		ms, err = DecodeJSON(data)
	case ".kml":
		ms, err = DecodeKML(data)
	case ".toml":
		ms, err = DecodeTOML(data)
	case ".yaml", ".yml":
		ms, err = DecodeYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return ms, nil
}
