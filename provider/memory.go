package provider

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hayspec/haystack-core/filter"
	"github.com/hayspec/haystack-core/gridalgebra"
	"github.com/hayspec/haystack-core/value"
)

// Memory is an in-process reference Provider over a versioned entity
// Grid. It is a demonstration and test fixture, not a production
// storage back-end: every version it ever holds lives in memory for
// the process lifetime, there is no persistence, and no network I/O
// occurs anywhere in it.
type Memory struct {
	mu      sync.RWMutex
	history []memorySnapshot
}

type memorySnapshot struct {
	at   value.DateTime
	grid *value.Grid
}

// NewMemory constructs a Memory provider with a single initial version.
func NewMemory(at value.DateTime, initial *value.Grid) *Memory {
	return &Memory{history: []memorySnapshot{{at: at, grid: initial}}}
}

var _ Provider = (*Memory)(nil)

// Commit applies patch onto the current version via gridalgebra.Merge
// and records the result as a new version stamped at. Warnings surfaced
// by Merge (a patch row with no id, or a duplicate id) are returned
// rather than silently dropped.
func (m *Memory) Commit(at value.DateTime, patch *value.Grid) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	current := m.history[len(m.history)-1].grid
	res := gridalgebra.Merge(current, patch)
	m.history = append(m.history, memorySnapshot{at: at, grid: res.Grid})
	return res.Warnings
}

func (m *Memory) snapshotAt(version time.Time) *value.Grid {
	if version.IsZero() {
		return m.history[len(m.history)-1].grid
	}
	var best *value.Grid
	for _, s := range m.history {
		if !s.at.Instant.After(version) {
			best = s.grid
		}
	}
	if best == nil {
		return m.history[0].grid
	}
	return best
}

// About returns a single-row Grid describing this reference provider,
// matching the Haystack "about" op's response shape.
func (m *Memory) About(ctx context.Context) (*value.Grid, error) {
	g, err := value.NewBuilder().
		Column("vendorName").
		Column("productName").
		Column("productVersion").
		Row("vendorName", value.Str("hayspec"), "productName", value.Str("haystack-core memory provider"), "productVersion", value.Str("0")).
		Build()
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Read evaluates expr against the entity set as of version (the zero
// time.Time means "current"), projecting sel columns (nil means all)
// and truncating to limit rows (0 means unlimited).
func (m *Memory) Read(ctx context.Context, expr filter.Expr, limit int, sel []string, version time.Time) (*value.Grid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g := m.snapshotAt(version)
	var matches []int
	if expr == nil {
		matches = make([]int, len(g.Rows))
		for i := range g.Rows {
			matches[i] = i
		}
	} else {
		matches = filter.Select(g, expr)
	}

	cols := sel
	if cols == nil {
		cols = g.ColumnNames()
	}
	out := value.NewGrid()
	for _, c := range cols {
		if err := out.AddColumn(c, nil); err != nil {
			return nil, err
		}
	}
	for _, i := range matches {
		if limit > 0 && len(out.Rows) >= limit {
			break
		}
		src := g.Rows[i]
		row := value.NewDict()
		for _, c := range cols {
			if v, ok := src.Get(c); ok {
				row.Set(c, v)
			}
		}
		out.AddRow(row)
	}
	return out, nil
}

// Versions returns every version timestamp this provider has recorded,
// oldest first.
func (m *Memory) Versions(ctx context.Context) ([]value.DateTime, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]value.DateTime, len(m.history))
	for i, s := range m.history {
		out[i] = s.at
	}
	return out, nil
}

// ValuesForTag returns the distinct values known for tag across the
// current version's entities, in an unspecified but deterministic
// (string-sorted by rendered form) order.
func (m *Memory) ValuesForTag(ctx context.Context, tag string) ([]value.Value, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g := m.history[len(m.history)-1].grid
	seen := make(map[string]value.Value)
	for _, row := range g.Rows {
		v, ok := row.Get(tag)
		if !ok || v.IsNull() {
			continue
		}
		seen[v.String()] = v
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return out, nil
}

// PointWrite applies a single-cell patch for id's "val" tag through
// Commit, stamping the resulting version at the write time. who and
// duration are recorded on the returned acknowledgement row but are not
// otherwise enforced: this reference fixture has no writable-point
// priority array, only a single current value per id.
func (m *Memory) PointWrite(ctx context.Context, id string, level int, v value.Value, who string, duration time.Duration) (*value.Grid, error) {
	dt := value.DateTime{Instant: time.Now()}

	patch, err := value.NewBuilder().
		Column("id").Column("val").
		Row("id", value.NewRef(id, ""), "val", v).
		Build()
	if err != nil {
		return nil, err
	}
	warnings := m.Commit(dt, patch)
	return ackGrid(id, level, who, duration, warnings)
}

// HisRead and InvokeAction are out of scope for this reference fixture;
// it demonstrates the Read/Versions/PointWrite path gridalgebra and
// filter wire into, not a full history store or action dispatcher.
func (Memory) HisRead(ctx context.Context, ids []string, from, to time.Time) (*value.Grid, error) {
	return nil, &CapabilityError{Op: "hisRead"}
}

func (Memory) InvokeAction(ctx context.Context, id, action string, params *value.Dict) (*value.Grid, error) {
	return nil, &CapabilityError{Op: "invokeAction"}
}

func ackGrid(id string, level int, who string, duration time.Duration, warnings []string) (*value.Grid, error) {
	b := value.NewBuilder().
		Column("id").Column("level").Column("who").Column("duration")
	durStr := ""
	if duration > 0 {
		durStr = duration.String()
	}
	b = b.Row("id", value.NewRef(id, ""), "level", value.Num(float64(level), ""), "who", value.Str(who), "duration", value.Str(durStr))
	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	if len(warnings) > 0 {
		g.Meta.Set("warning", value.Str(strings.Join(warnings, "; ")))
	}
	return g, nil
}
