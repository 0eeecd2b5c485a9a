package main

import (
	"fmt"
	"os"

	"github.com/hayspec/haystack-core/filter"
)

func runFilter(path, expr string, flags *filterFlags) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	format := flags.format
	if format == "" {
		format = detectFormat(path)
	}
	g, err := loadGrid(data, format)
	if err != nil {
		return fmt.Errorf("failed to parse %s as %s: %w", path, format, err)
	}

	parsed, err := filter.Parse(expr)
	if err != nil {
		return fmt.Errorf("failed to parse filter %q: %w", expr, err)
	}

	matches := filter.Select(g, parsed)
	out := projectRows(g, matches)

	rendered, err := saveGrid(out, format)
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	return writeOutput(rendered, flags.out)
}
