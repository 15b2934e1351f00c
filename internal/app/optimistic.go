package app

import (
	"context"

	"github.com/talentflow/talentflow/pkg/metrics"
)

// Mutation describes one optimistic write over a piece of container state
// of type T.
//
// Read snapshots the state before anything changes. Apply pushes the
// hoped-for result into the container synchronously. Call performs the
// remote write and returns the authoritative result. Restore puts the
// snapshot back verbatim when Call fails. Reconcile, when set, folds the
// authoritative result into the container after success; when nil the
// applied state stands. OnError, when set, receives the failure after the
// restore has run.
type Mutation[T any] struct {
	Read      func() T
	Apply     func()
	Call      func(ctx context.Context) (T, error)
	Restore   func(snapshot T)
	Reconcile func(result T)
	OnError   func(err error)
}

// Mutate runs one optimistic mutation: snapshot, apply, call, then either
// reconcile or roll back. The zero value of T and the error are returned
// on failure so callers can surface it.
func Mutate[T any](ctx context.Context, m Mutation[T]) (T, error) {
	snapshot := m.Read()
	m.Apply()

	result, err := m.Call(ctx)
	if err != nil {
		m.Restore(snapshot)
		metrics.RecordOptimisticRollback()
		if m.OnError != nil {
			m.OnError(err)
		}
		var zero T
		return zero, err
	}

	if m.Reconcile != nil {
		m.Reconcile(result)
	}
	metrics.RecordOptimisticCommit()
	return result, nil
}
