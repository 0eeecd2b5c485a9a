package sqlfilter

import (
	"fmt"
	"unicode/utf8"

	"github.com/hayspec/haystack-core/codec/jsonio"
	"github.com/hayspec/haystack-core/filter"
	"github.com/hayspec/haystack-core/value"
)

// EntityColumn is the name of the JSON column the translated WHERE
// clause is written against, and EntityTable the table it lives in: one
// row per versioned entity. A ref-hop predicate self-joins EntityTable
// to resolve the hop and qualifies the outer column by EntityTable's
// name, so the outer query reads EntityTable without an alias.
const (
	EntityColumn = "entity"
	EntityTable  = "entities"
)

// Query is the translated form of a filter expression: a parameterised
// WHERE clause, its positional bind arguments in the order the
// placeholders appear, and whether the translation is known-degraded.
type Query struct {
	Where    string
	Args     []any
	Degraded bool
}

// Translate walks expr and emits a WHERE clause against EntityColumn
// under dialect's syntax. A ref hop (a->b) becomes a correlated EXISTS
// subquery over EntityTable: an inner SELECT resolves the ref value, the
// outer query joins on it, with no literal UNION/INTERSECT of row sets
// required.
//
// Degraded is set when a disjunction combines a multi-hop predicate with
// another operand under a dialect that cannot parenthesise UNION inside
// a subquery (SQLite): a translator that instead merged such operands
// into one set-based subquery would need that parenthesisation and so
// may only produce a superset match there. This translator's EXISTS
// strategy does not itself need the merge, but the flag is preserved so
// a caller relying on the documented limitation still gets a
// conservative signal to re-verify with filter.Select.
func Translate(expr filter.Expr, dialect Dialect) (*Query, error) {
	t := &translator{dialect: dialect}
	where, err := t.walk(expr)
	if err != nil {
		return nil, err
	}
	return &Query{Where: where, Args: t.args, Degraded: t.degraded}, nil
}

type translator struct {
	dialect  Dialect
	args     []any
	degraded bool
}

func (t *translator) walk(expr filter.Expr) (string, error) {
	switch e := expr.(type) {
	case *filter.OrExpr:
		if t.dialect.NeedsUnionParens() && (hasMultiHop(e.Left) || hasMultiHop(e.Right)) {
			t.degraded = true
		}
		left, err := t.walk(e.Left)
		if err != nil {
			return "", err
		}
		right, err := t.walk(e.Right)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s OR %s)", left, right), nil
	case *filter.AndExpr:
		left, err := t.walk(e.Left)
		if err != nil {
			return "", err
		}
		right, err := t.walk(e.Right)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s AND %s)", left, right), nil
	case *filter.NotExpr:
		inner, err := t.walk(e.Operand)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("NOT (%s)", inner), nil
	case *filter.PathExpr:
		return t.walkPath(e.Segs, "", value.Value{})
	case *filter.CmpExpr:
		return t.walkPath(e.Path.Segs, e.Op, e.Rhs)
	default:
		return "", fmt.Errorf("sqlfilter: unsupported expression node %T", expr)
	}
}

// walkPath renders the has-predicate or comparison-predicate for a
// (possibly multi-hop) path, self-joining EntityTable once per "->" in
// segs.
func (t *translator) walkPath(segs []string, op string, rhs value.Value) (string, error) {
	return t.hopChain(EntityColumn, segs, 0, op, rhs)
}

func (t *translator) hopChain(col string, segs []string, depth int, op string, rhs value.Value) (string, error) {
	if len(segs) == 1 {
		return t.leafPredicate(col, segs[0], op, rhs)
	}
	alias := fmt.Sprintf("hop%d", depth+1)
	hopCol := alias + "." + EntityColumn
	idExtract := t.dialect.JSONExtract(hopCol, "$.id")
	outerCol := col
	if depth == 0 {
		// Unqualified, the outer column would bind to the hop alias's own
		// entity column inside the subquery.
		outerCol = t.dialect.QuoteIdentifier(EntityTable) + "." + col
	}
	followExtract := t.dialect.JSONExtract(outerCol, "$."+segs[0])
	nested, err := t.hopChain(hopCol, segs[1:], depth+1, op, rhs)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"EXISTS (SELECT 1 FROM %s AS %s WHERE %s = %s AND %s)",
		t.dialect.QuoteIdentifier(EntityTable), alias, idExtract, followExtract, nested,
	), nil
}

// leafPredicate renders the has/comparison test for a single tag on an
// already-resolved entity column.
func (t *translator) leafPredicate(col, tag, op string, rhs value.Value) (string, error) {
	extract := t.dialect.JSONExtract(col, "$."+tag)
	if op == "" {
		return fmt.Sprintf("(%s IS NOT NULL AND %s <> 'false')", extract, extract), nil
	}
	isOrder := op == "<" || op == "<=" || op == ">" || op == ">="
	if isOrder && rhs.Kind() == value.KindNumber {
		return t.numberOrderPredicate(extract, op, rhs)
	}
	bound, err := jsonio.EncodeLiteral(rhs)
	if err != nil {
		return "", err
	}
	t.args = append(t.args, bound)
	placeholder := t.dialect.Placeholder(len(t.args))
	return fmt.Sprintf("%s %s %s", extract, sqlOp(op), placeholder), nil
}

// numberOrderPredicate renders a Number order comparison numerically
// rather than as a text comparison on the stored "n:<num><unit>" sigil
// form: a plain string compare would order "n:12kW" before "n:4kW"
// lexicographically, which is wrong. The predicate first checks the
// stored value ends in the same unit directly after a digit (mismatched
// units never compare, matching value.Compare), then casts the numeric substring
// between the "n:" prefix and the unit suffix to a real for the
// ordering test.
func (t *translator) numberOrderPredicate(extract, op string, rhs value.Value) (string, error) {
	num, unit, _ := rhs.AsNumber()
	unitLen := utf8.RuneCountInString(unit)
	t.args = append(t.args, "n:%"+unit)
	likeArg := t.dialect.Placeholder(len(t.args))
	t.args = append(t.args, unitLen)
	lenArg := t.dialect.Placeholder(len(t.args))
	t.args = append(t.args, num)
	numArg := t.dialect.Placeholder(len(t.args))
	return fmt.Sprintf(
		"(%s LIKE %s AND SUBSTR(%s,LENGTH(%s)-%d,1) BETWEEN '0' AND '9' AND CAST(SUBSTR(%s,3,LENGTH(%s)-2-%s) AS REAL) %s %s)",
		extract, likeArg, extract, extract, unitLen, extract, extract, lenArg, sqlOp(op), numArg,
	), nil
}

func sqlOp(op string) string {
	switch op {
	case "==":
		return "="
	case "!=":
		return "<>"
	default:
		return op
	}
}

// hasMultiHop reports whether expr contains any path with more than one
// hop, used only to decide the Degraded heuristic on an OrExpr.
func hasMultiHop(expr filter.Expr) bool {
	switch e := expr.(type) {
	case *filter.OrExpr:
		return hasMultiHop(e.Left) || hasMultiHop(e.Right)
	case *filter.AndExpr:
		return hasMultiHop(e.Left) || hasMultiHop(e.Right)
	case *filter.NotExpr:
		return hasMultiHop(e.Operand)
	case *filter.PathExpr:
		return len(e.Segs) > 1
	case *filter.CmpExpr:
		return len(e.Path.Segs) > 1
	default:
		return false
	}
}
