package filter

import "github.com/hayspec/haystack-core/value"

// Expr is a parsed filter expression. Eval never errors: a broken Ref
// chain, an absent tag, or a type-mismatched comparison all evaluate to
// false rather than propagating a failure. The concrete node types are
// exported so a translator (sqlfilter) or any other consumer can
// type-switch over the AST instead of only running it in-process.
type Expr interface {
	Eval(row *value.Dict, idx *Index) bool
}

// OrExpr is the "a or b" form.
type OrExpr struct{ Left, Right Expr }

func (e *OrExpr) Eval(row *value.Dict, idx *Index) bool {
	return e.Left.Eval(row, idx) || e.Right.Eval(row, idx)
}

// AndExpr is the "a and b" form.
type AndExpr struct{ Left, Right Expr }

func (e *AndExpr) Eval(row *value.Dict, idx *Index) bool {
	return e.Left.Eval(row, idx) && e.Right.Eval(row, idx)
}

// NotExpr is the "not a" form.
type NotExpr struct{ Operand Expr }

func (e *NotExpr) Eval(row *value.Dict, idx *Index) bool {
	return !e.Operand.Eval(row, idx)
}

// PathExpr is both an Expr in its own right (bare-path truthiness) and
// the operand CmpExpr resolves before applying a comparison operator.
// Segs holds the "->"-separated hop names: len(Segs) == 1 for a
// plain tag reference, more for an a->b->c chain.
type PathExpr struct{ Segs []string }

func (p *PathExpr) Eval(row *value.Dict, idx *Index) bool {
	v, ok := p.Resolve(row, idx)
	return ok && v.Truthy()
}

// Resolve walks p's hop chain starting at row. Every hop but the last
// must dereference to a Truthy Ref that Index can resolve to another
// entity; the last hop's value is returned as-is (even Null), with ok
// false only when the tag itself is absent or an intermediate hop could
// not be followed.
func (p *PathExpr) Resolve(row *value.Dict, idx *Index) (value.Value, bool) {
	cur := row
	var v value.Value
	for i, seg := range p.Segs {
		got, ok := cur.Get(seg)
		if !ok {
			return value.Null(), false
		}
		v = got
		if i == len(p.Segs)-1 {
			break
		}
		if !got.Truthy() {
			return value.Null(), false
		}
		name, _, isRef := got.AsRef()
		if !isRef {
			return value.Null(), false
		}
		next, found := idx.lookup(name)
		if !found {
			return value.Null(), false
		}
		cur = next
	}
	return v, true
}

// CmpExpr compares the value a path resolves to against a literal
// scalar. An empty Op means "bare path" and CmpExpr degenerates to
// Path.Eval.
type CmpExpr struct {
	Path *PathExpr
	Op   string
	Rhs  value.Value
}

func (e *CmpExpr) Eval(row *value.Dict, idx *Index) bool {
	v, ok := e.Path.Resolve(row, idx)
	if !ok {
		return false
	}
	if e.Op == "" {
		return v.Truthy()
	}
	switch e.Op {
	case "==":
		return value.Equal(v, e.Rhs)
	case "!=":
		return !value.Equal(v, e.Rhs)
	default:
		cmp, cmpOK := value.Compare(v, e.Rhs)
		if !cmpOK {
			return false
		}
		switch e.Op {
		case "<":
			return cmp < 0
		case "<=":
			return cmp <= 0
		case ">":
			return cmp > 0
		case ">=":
			return cmp >= 0
		}
		return false
	}
}
