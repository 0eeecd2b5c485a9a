// Package provider defines the boundary between the ontology core and a
// storage back-end: a synchronous capability interface mirroring the
// Haystack REST verbs, plus a CapabilityError a back-end reports for
// any operation it chooses not to implement. No concrete network or
// database driver lives here; only provider.Memory, an in-process
// reference fixture used for tests and examples, does.
package provider

import (
	"context"
	"time"

	"github.com/hayspec/haystack-core/filter"
	"github.com/hayspec/haystack-core/value"
)

// Provider is the abstract boundary to a storage back-end. Concrete
// providers are free to implement any subset of the verbs below; every
// method left unimplemented must return a *CapabilityError naming
// itself, the same "implement a subset, others are typed errors" shape
// introspect.Introspecter's dialect registry uses for unregistered
// dialects.
type Provider interface {
	// About returns a single-row Grid describing the server, matching
	// the Haystack "about" op response shape.
	About(ctx context.Context) (*value.Grid, error)

	// Read runs expr against the entity store and returns matching
	// rows in source order, after applying limit (0 means unlimited)
	// and select (nil means all columns). version, if non-zero, reads
	// against a prior version instead of the current state.
	Read(ctx context.Context, expr filter.Expr, limit int, sel []string, version time.Time) (*value.Grid, error)

	// HisRead returns a time-series slice for each id in ids, limited
	// to the half-open instant range [from, to).
	HisRead(ctx context.Context, ids []string, from, to time.Time) (*value.Grid, error)

	// PointWrite requests that id's writable level be set to v by who,
	// for duration (zero means indefinite), returning an
	// acknowledgement row.
	PointWrite(ctx context.Context, id string, level int, v value.Value, who string, duration time.Duration) (*value.Grid, error)

	// InvokeAction runs a named action on id with the given
	// parameters, returning the action's result Grid.
	InvokeAction(ctx context.Context, id, action string, params *value.Dict) (*value.Grid, error)

	// ValuesForTag returns the distinct values known for tag, in an
	// unspecified but deterministic order.
	ValuesForTag(ctx context.Context, tag string) ([]value.Value, error)

	// Versions returns the ordered list of DateTimes at which the
	// store's entity set changed, oldest first.
	Versions(ctx context.Context) ([]value.DateTime, error)
}

// Base is an embeddable Provider implementation whose every method
// reports CapabilityError. A concrete provider embeds Base and
// overrides only the methods it supports.
type Base struct{}

func (Base) About(ctx context.Context) (*value.Grid, error) {
	return nil, &CapabilityError{Op: "about"}
}

func (Base) Read(ctx context.Context, expr filter.Expr, limit int, sel []string, version time.Time) (*value.Grid, error) {
	return nil, &CapabilityError{Op: "read"}
}

func (Base) HisRead(ctx context.Context, ids []string, from, to time.Time) (*value.Grid, error) {
	return nil, &CapabilityError{Op: "hisRead"}
}

func (Base) PointWrite(ctx context.Context, id string, level int, v value.Value, who string, duration time.Duration) (*value.Grid, error) {
	return nil, &CapabilityError{Op: "pointWrite"}
}

func (Base) InvokeAction(ctx context.Context, id, action string, params *value.Dict) (*value.Grid, error) {
	return nil, &CapabilityError{Op: "invokeAction"}
}

func (Base) ValuesForTag(ctx context.Context, tag string) ([]value.Value, error) {
	return nil, &CapabilityError{Op: "values_for_tag"}
}

func (Base) Versions(ctx context.Context) ([]value.DateTime, error) {
	return nil, &CapabilityError{Op: "versions"}
}
