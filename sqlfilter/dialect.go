// Package sqlfilter translates a parsed filter expression into a
// parameterised SQL WHERE clause over a versioned-entity schema: one
// row per versioned entity with columns {entity: JSON, customer_id,
// start_datetime, end_datetime}, plus a separate time-series table not
// addressed by this translator. Each Haystack comparison becomes a
// JSON-path predicate against the entity column; a->b hops become an
// inner SELECT the outer query joins on.
package sqlfilter

import (
	"fmt"
	"sync"
)

// Dialect abstracts the four points of SQL syntax that differ between
// the engines this translator targets: quote an identifier, spell a
// JSON-extract expression, spell a bind placeholder, and report whether
// UNION/INTERSECT within a subquery needs extra parenthesisation.
type Dialect interface {
	Name() string
	QuoteIdentifier(name string) string
	JSONExtract(column, jsonPath string) string
	Placeholder(argIndex int) string
	NeedsUnionParens() bool
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Dialect{}
)

// Register adds d to the package-level dialect registry under d.Name().
// Registering a name a second time replaces the prior entry.
func Register(d Dialect) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[d.Name()] = d
}

// Get looks up a dialect previously passed to Register.
func Get(name string) (Dialect, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("sqlfilter: dialect %q is not registered", name)
	}
	return d, nil
}

func init() {
	Register(SQLite{})
	Register(Postgres{})
}

// SQLite targets the pure-Go modernc.org/sqlite driver: '?' positional
// placeholders and the json_extract() scalar function.
type SQLite struct{}

func (SQLite) Name() string                 { return "sqlite" }
func (SQLite) QuoteIdentifier(name string) string { return `"` + name + `"` }
func (SQLite) JSONExtract(column, jsonPath string) string {
	return fmt.Sprintf("json_extract(%s,'%s')", column, jsonPath)
}
func (SQLite) Placeholder(int) string { return "?" }

// NeedsUnionParens reports true: SQLite disallows a parenthesised
// UNION/INTERSECT inside a subquery, which forces degraded disjunctions
// across ref hops under this dialect.
func (SQLite) NeedsUnionParens() bool { return true }

// Postgres targets the lib/pq or pgx wire protocol: '$n' placeholders
// and the jsonb_extract_path_text JSON function.
type Postgres struct{}

func (Postgres) Name() string                 { return "postgres" }
func (Postgres) QuoteIdentifier(name string) string { return `"` + name + `"` }
func (Postgres) JSONExtract(column, jsonPath string) string {
	return fmt.Sprintf("jsonb_extract_path_text(%s,%s)", column, pgPathArgs(jsonPath))
}
func (Postgres) Placeholder(argIndex int) string { return fmt.Sprintf("$%d", argIndex) }

// NeedsUnionParens is false: PostgreSQL allows a parenthesised
// UNION/INTERSECT anywhere a subquery is legal, so disjunctions across
// ref hops never need to degrade under this dialect.
func (Postgres) NeedsUnionParens() bool { return false }

// pgPathArgs turns a "$.a.b" json_extract-style path into the
// comma-separated quoted path segments jsonb_extract_path_text expects.
func pgPathArgs(jsonPath string) string {
	segs := splitJSONPath(jsonPath)
	out := ""
	for i, s := range segs {
		if i > 0 {
			out += ","
		}
		out += "'" + s + "'"
	}
	return out
}

func splitJSONPath(jsonPath string) []string {
	p := jsonPath
	if len(p) > 0 && p[0] == '$' {
		p = p[1:]
	}
	var segs []string
	cur := ""
	for _, r := range p {
		if r == '.' {
			if cur != "" {
				segs = append(segs, cur)
				cur = ""
			}
			continue
		}
		cur += string(r)
	}
	if cur != "" {
		segs = append(segs, cur)
	}
	return segs
}
