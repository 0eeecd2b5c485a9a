package sqlfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayspec/haystack-core/filter"
)

func parseOrFail(t *testing.T, expr string) filter.Expr {
	t.Helper()
	e, err := filter.Parse(expr)
	require.NoError(t, err)
	return e
}

func TestTranslateHasAndNot(t *testing.T) {
	sqlite, err := Get("sqlite")
	require.NoError(t, err)

	q, err := Translate(parseOrFail(t, "rooftop"), sqlite)
	require.NoError(t, err)
	assert.Contains(t, q.Where, "json_extract(entity,'$.rooftop')")
	assert.Contains(t, q.Where, "IS NOT NULL")
	assert.Empty(t, q.Args)

	q2, err := Translate(parseOrFail(t, "not rooftop"), sqlite)
	require.NoError(t, err)
	assert.Contains(t, q2.Where, "NOT (")
}

func TestTranslateComparisonBindsArgs(t *testing.T) {
	sqlite, err := Get("sqlite")
	require.NoError(t, err)

	q, err := Translate(parseOrFail(t, `dis == "Pump 1"`), sqlite)
	require.NoError(t, err)
	assert.Contains(t, q.Where, "=")
	require.Len(t, q.Args, 1)
	assert.Equal(t, "Pump 1", q.Args[0])

	q2, err := Translate(parseOrFail(t, "load > 3kg"), sqlite)
	require.NoError(t, err)
	require.Len(t, q2.Args, 3, "a numeric order comparison binds a LIKE pattern, a unit length, and the bound number")
	assert.Equal(t, "n:%kg", q2.Args[0])
	assert.Equal(t, len("kg"), q2.Args[1])
	assert.Equal(t, 3.0, q2.Args[2])
	assert.Contains(t, q2.Where, "CAST(SUBSTR(")
}

func TestTranslatePostgresPlaceholders(t *testing.T) {
	pg, err := Get("postgres")
	require.NoError(t, err)

	q, err := Translate(parseOrFail(t, `dis == "A" and load > 1kg`), pg)
	require.NoError(t, err)
	assert.Contains(t, q.Where, "$1")
	assert.Contains(t, q.Where, "$4")
	require.Len(t, q.Args, 4)
}

func TestTranslateRefHopEmitsExists(t *testing.T) {
	sqlite, err := Get("sqlite")
	require.NoError(t, err)

	q, err := Translate(parseOrFail(t, `siteRef->dis == "Site A"`), sqlite)
	require.NoError(t, err)
	assert.Contains(t, q.Where, "EXISTS (SELECT 1 FROM")
	assert.Contains(t, q.Where, "hop1")
	require.Len(t, q.Args, 1)
}

func TestDegradedFlagOnDisjunctionAcrossHopUnderSQLite(t *testing.T) {
	sqlite, err := Get("sqlite")
	require.NoError(t, err)
	pg, err := Get("postgres")
	require.NoError(t, err)

	expr := parseOrFail(t, `siteRef->dis == "Site A" or rooftop`)

	q, err := Translate(expr, sqlite)
	require.NoError(t, err)
	assert.True(t, q.Degraded)

	q2, err := Translate(expr, pg)
	require.NoError(t, err)
	assert.False(t, q2.Degraded)
}
