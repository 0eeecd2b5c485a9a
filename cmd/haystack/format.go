package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hayspec/haystack-core/codec/csvio"
	"github.com/hayspec/haystack-core/codec/jsonio"
	"github.com/hayspec/haystack-core/codec/trio"
	"github.com/hayspec/haystack-core/value"
	"github.com/hayspec/haystack-core/zinc"
)

// detectFormat maps a file extension to one of the four wire formats:
// infer from the path, but let a --format flag override.
func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".csv":
		return "csv"
	case ".trio":
		return "trio"
	default:
		return "zinc"
	}
}

func loadGrid(data []byte, format string) (*value.Grid, error) {
	switch format {
	case "zinc":
		return zinc.Parse(string(data))
	case "json":
		return jsonio.Unmarshal(data)
	case "csv":
		return csvio.Unmarshal(data)
	case "trio":
		return trio.Unmarshal(string(data))
	default:
		return nil, fmt.Errorf("unknown format %q: want zinc, json, csv, or trio", format)
	}
}

func saveGrid(g *value.Grid, format string) ([]byte, error) {
	switch format {
	case "zinc":
		return []byte(zinc.Emit(g)), nil
	case "json":
		return jsonio.Marshal(g)
	case "csv":
		return csvio.Marshal(g)
	case "trio":
		return []byte(trio.Marshal(g)), nil
	default:
		return nil, fmt.Errorf("unknown format %q: want zinc, json, csv, or trio", format)
	}
}
