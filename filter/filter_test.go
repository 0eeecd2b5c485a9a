package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayspec/haystack-core/value"
)

func buildEntities(t *testing.T) *value.Grid {
	t.Helper()
	g, err := value.NewBuilder().
		Column("id").
		Column("dis").
		Column("rooftop").
		Column("load").
		Column("siteRef").
		Row("id", value.NewRef("ahu1", ""), "dis", value.Str("AHU-1"), "rooftop", value.Marker(), "load", value.Num(12, "kW"), "siteRef", value.NewRef("siteA", "")).
		Row("id", value.NewRef("ahu2", ""), "dis", value.Str("AHU-2"), "rooftop", value.Null(), "load", value.Num(4, "kW"), "siteRef", value.NewRef("missing", "")).
		Row("id", value.NewRef("siteA", ""), "dis", value.Str("Site A"), "rooftop", value.Null(), "load", value.Null(), "siteRef", value.Null()).
		Build()
	require.NoError(t, err)
	return g
}

func TestBareTagHasSemantics(t *testing.T) {
	g := buildEntities(t)
	expr, err := Parse("rooftop")
	require.NoError(t, err)
	matches := Select(g, expr)
	assert.Equal(t, []int{0}, matches)
}

func TestNotAndOrPrecedence(t *testing.T) {
	g := buildEntities(t)
	expr, err := Parse("not rooftop and load > 1kW")
	require.NoError(t, err)
	matches := Select(g, expr)
	assert.Equal(t, []int{1}, matches)

	expr2, err := Parse("rooftop or dis == \"AHU-2\"")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, Select(g, expr2))
}

func TestComparisonOperators(t *testing.T) {
	g := buildEntities(t)
	expr, err := Parse("load >= 4kW and load <= 12kW")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, Select(g, expr))
}

func TestMismatchedUnitComparisonDegradesToFalse(t *testing.T) {
	g := buildEntities(t)
	expr, err := Parse("load > 1kg")
	require.NoError(t, err)
	assert.Empty(t, Select(g, expr))
}

func TestRefHopDereference(t *testing.T) {
	g := buildEntities(t)
	expr, err := Parse("siteRef->dis == \"Site A\"")
	require.NoError(t, err)
	assert.Equal(t, []int{0}, Select(g, expr))
}

func TestBrokenRefChainEvaluatesFalseNotError(t *testing.T) {
	g := buildEntities(t)
	expr, err := Parse("siteRef->dis == \"Nowhere\"")
	require.NoError(t, err)
	assert.Empty(t, Select(g, expr))

	// ahu2's siteRef points at an entity the index does not contain, so
	// only ahu1 (whose siteRef resolves to siteA) matches.
	expr2, err := Parse("siteRef->dis")
	require.NoError(t, err)
	assert.Equal(t, []int{0}, Select(g, expr2))
}

func TestParenGrouping(t *testing.T) {
	g := buildEntities(t)
	expr, err := Parse("(rooftop or load > 10kW) and dis == \"AHU-1\"")
	require.NoError(t, err)
	assert.Equal(t, []int{0}, Select(g, expr))
}

func TestComparisonRequiresPathOperand(t *testing.T) {
	_, err := Parse("(rooftop or load > 1kW) == T")
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestMaxExprLenEnforced(t *testing.T) {
	saved := MaxExprLen
	MaxExprLen = 8
	defer func() { MaxExprLen = saved }()

	_, err := Parse("rooftop and dis")
	require.ErrorIs(t, err, ErrTooLong)
}

func TestTrailingGarbageIsParseError(t *testing.T) {
	_, err := Parse("rooftop and")
	require.Error(t, err)
}

func TestDateTimeLiteralWithZoneNameParses(t *testing.T) {
	g, err := value.NewBuilder().
		Column("id").
		Build()
	require.NoError(t, err)
	_ = g

	expr, err := Parse(`ts == 2021-06-01T08:30:00-04:00 New_York and rooftop`)
	require.NoError(t, err)
	require.NotNil(t, expr)
}
