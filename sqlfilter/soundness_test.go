package sqlfilter

import (
	"database/sql"
	"encoding/json"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayspec/haystack-core/codec/jsonio"
	"github.com/hayspec/haystack-core/filter"
	"github.com/hayspec/haystack-core/value"
)

// TestSoundnessAgainstRealSQLite loads the same entities into an
// in-memory SQLite database that filter.Select evaluates in-process,
// and asserts Translate's WHERE clause selects the identical row set:
// for every filter F and grid g, evaluate(F, g) equals running
// translate(F) against a database loaded with g. Skipped under -short
// since it spins up a real engine rather than stubbing one.
func TestSoundnessAgainstRealSQLite(t *testing.T) {
	if testing.Short() {
		t.Skip("soundness check needs a real sqlite engine")
	}

	g, err := value.NewBuilder().
		Column("id").
		Column("dis").
		Column("rooftop").
		Column("load").
		Column("siteRef").
		Row("id", value.NewRef("ahu1", ""), "dis", value.Str("AHU-1"), "rooftop", value.Marker(), "load", value.Num(12, "kW"), "siteRef", value.NewRef("siteA", "")).
		Row("id", value.NewRef("ahu2", ""), "dis", value.Str("AHU-2"), "rooftop", value.Null(), "load", value.Num(4, "kW"), "siteRef", value.NewRef("siteA", "")).
		Row("id", value.NewRef("siteA", ""), "dis", value.Str("Site A"), "rooftop", value.Null(), "load", value.Null(), "siteRef", value.Null()).
		Build()
	require.NoError(t, err)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE entities (entity TEXT NOT NULL)`)
	require.NoError(t, err)

	ins, err := db.Prepare(`INSERT INTO entities (entity) VALUES (?)`)
	require.NoError(t, err)
	defer ins.Close()

	// Flatten each row into the {tag: literal} shape the entity JSON
	// column holds, reusing jsonio's own literal encoding so the stored
	// documents match exactly what the jsonio codec would have written.
	for _, row := range g.Rows {
		obj := make(map[string]any, row.Len())
		for _, k := range row.Keys() {
			v, _ := row.Get(k)
			lit, err := jsonio.EncodeLiteral(v)
			require.NoError(t, err)
			obj[k] = lit
		}
		doc, err := json.Marshal(obj)
		require.NoError(t, err)
		_, err = ins.Exec(string(doc))
		require.NoError(t, err)
	}

	sqlite, err := Get("sqlite")
	require.NoError(t, err)

	cases := []string{
		"rooftop",
		"not rooftop",
		"load > 4kW",
		`dis == "AHU-2"`,
		`siteRef->dis == "Site A"`,
	}
	for _, exprSrc := range cases {
		expr, err := filter.Parse(exprSrc)
		require.NoError(t, err)

		wantIdx := filter.Select(g, expr)
		wantDis := make([]string, 0, len(wantIdx))
		for _, i := range wantIdx {
			dis, _ := g.Cell(i, "dis").AsStr()
			wantDis = append(wantDis, dis)
		}

		q, err := Translate(expr, sqlite)
		require.NoError(t, err)

		rows, err := db.Query(`SELECT json_extract(entity,'$.dis') FROM entities WHERE `+q.Where, q.Args...)
		require.NoError(t, err)

		var gotDis []string
		for rows.Next() {
			var dis string
			require.NoError(t, rows.Scan(&dis))
			gotDis = append(gotDis, dis)
		}
		require.NoError(t, rows.Err())
		rows.Close()

		assert.ElementsMatch(t, wantDis, gotDis, "expr %q: translate/evaluate mismatch", exprSrc)
	}
}
