package main

import (
	"fmt"

	"github.com/hayspec/haystack-core/filter"
	"github.com/hayspec/haystack-core/sqlfilter"
)

func runSQL(expr string, flags *sqlFlags) error {
	parsed, err := filter.Parse(expr)
	if err != nil {
		return fmt.Errorf("failed to parse filter %q: %w", expr, err)
	}

	dialect, err := sqlfilter.Get(flags.dialect)
	if err != nil {
		return fmt.Errorf("unsupported dialect: %s", flags.dialect)
	}

	q, err := sqlfilter.Translate(parsed, dialect)
	if err != nil {
		return fmt.Errorf("failed to translate filter: %w", err)
	}

	fmt.Println(q.Where)
	for i, arg := range q.Args {
		fmt.Printf("  $%d = %v\n", i+1, arg)
	}
	if q.Degraded {
		fmt.Println("warning: this query degrades to a superset match across a disjunction over a ref hop under this dialect; verify matches in-process")
	}
	return nil
}
