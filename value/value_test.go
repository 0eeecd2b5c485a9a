package value

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberUnitIsPartOfIdentity(t *testing.T) {
	a := Num(1, "kg")
	b := Num(1, "")
	assert.False(t, Equal(a, b), "1kg must not equal 1")
	assert.True(t, Equal(a, Num(1, "kg")))
}

func TestNaNRoundTripsBitIdentical(t *testing.T) {
	n := Num(math.NaN(), "")
	assert.True(t, Equal(n, Num(math.NaN(), "")))

	negNaN := Num(math.Float64frombits(math.Float64bits(math.NaN())^(1<<63)), "")
	assert.False(t, Equal(n, negNaN), "differently-signed NaN bit patterns are not Equal")
}

func TestRefEqualityIgnoresDisplay(t *testing.T) {
	a := NewRef("site1", "Building A")
	b := NewRef("site1", "Something else")
	assert.True(t, Equal(a, b))

	c := NewRef("site2", "Building A")
	assert.False(t, Equal(a, c))
}

func TestDateTimeZoneIsPartOfIdentity(t *testing.T) {
	instant, err := time.Parse(time.RFC3339, "2021-01-01T12:00:00-05:00")
	require.NoError(t, err)

	a := DateTimeVal(DateTime{Instant: instant, Zone: "New_York"})
	b := DateTimeVal(DateTime{Instant: instant, Zone: "Toronto"})
	assert.False(t, Equal(a, b))
	assert.True(t, Equal(a, DateTimeVal(DateTime{Instant: instant, Zone: "New_York"})))
}

func TestMarkerComparedToNonMarkerIsFalse(t *testing.T) {
	assert.False(t, Equal(Marker(), Bool(true)))
	assert.True(t, Equal(Marker(), Marker()))
}

func TestAbsentKeyDistinctFromPresentNull(t *testing.T) {
	d := NewDict()
	d.Set("age", Null())

	v, ok := d.Get("age")
	assert.True(t, ok)
	assert.True(t, v.IsNull())

	_, ok = d.Get("missing")
	assert.False(t, ok)
}

func TestDictPreservesInsertionOrder(t *testing.T) {
	d := NewDict()
	d.Set("b", Str("2"))
	d.Set("a", Str("1"))
	d.Set("c", Str("3"))
	assert.Equal(t, []string{"b", "a", "c"}, d.Keys())
}

func TestCompareNumberUnitMismatchIsNotOk(t *testing.T) {
	_, ok := Compare(Num(3, "ft"), Num(3, "kg"))
	assert.False(t, ok)

	result, ok := Compare(Num(2, "kg"), Num(3, "kg"))
	require.True(t, ok)
	assert.Equal(t, -1, result)
}

func TestCompareStringsLexicographic(t *testing.T) {
	result, ok := Compare(Str("alpha"), Str("beta"))
	require.True(t, ok)
	assert.Equal(t, -1, result)
}

func TestGridRejectsDuplicateColumn(t *testing.T) {
	g := NewGrid()
	require.NoError(t, g.AddColumn("name", nil))
	err := g.AddColumn("name", nil)
	require.Error(t, err)
	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestBuilderRoundTrip(t *testing.T) {
	g, err := NewBuilder().
		Column("name").
		Column("age").
		Row("name", Str("Alice"), "age", Null()).
		Row("name", Str("Bob"), "age", Num(30, "")).
		Build()
	require.NoError(t, err)
	require.Len(t, g.Rows, 2)
	assert.Equal(t, []string{"name", "age"}, g.ColumnNames())
	assert.True(t, g.Cell(0, "age").IsNull())
	n, unit, ok := g.Cell(1, "age").AsNumber()
	require.True(t, ok)
	assert.Equal(t, 30.0, n)
	assert.Equal(t, "", unit)
}
