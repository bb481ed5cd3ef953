package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// MergePolicy selects how a patch finds its base snapshot.
type MergePolicy int

const (
	// MergeSerialized applies each patch over the latest snapshot under the
	// writer lock. Overlapping dispatches are both reflected in the result.
	MergeSerialized MergePolicy = iota

	// MergeSnapshotAtDispatch captures the base snapshot when Dispatch is
	// called, before the intent's remote call resolves. If a second dispatch
	// resolves in between, its changes are overwritten by the first one's
	// stale base: last writer wins. This reproduces the merge behavior of
	// the previous client and exists so the hazard stays observable; new
	// callers want MergeSerialized.
	MergeSnapshotAtDispatch
)

// Engine is the sole writer of the session snapshot. It runs each intent
// through the reducer, merges the resulting patch according to its policy,
// and republishes the snapshot to subscribers.
type Engine struct {
	reducer *Reducer
	policy  MergePolicy
	log     *slog.Logger

	mu    sync.Mutex
	state State
	subs  map[string]chan State
}

func NewEngine(reducer *Reducer, policy MergePolicy, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}

	return &Engine{
		reducer: reducer,
		policy:  policy,
		log:     log,
		subs:    map[string]chan State{},
	}
}

// State returns a copy of the current snapshot.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

// Dispatch runs one intent to completion: side effect first, merge second.
// On a reducer error the snapshot is left untouched. The remote call happens
// outside the writer lock, so independent dispatches do not wait on each
// other's network round trips.
func (e *Engine) Dispatch(ctx context.Context, intent Intent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var base State
	if e.policy == MergeSnapshotAtDispatch {
		base = e.State()
	}

	patch, err := e.reducer.Reduce(ctx, intent)
	if err != nil {
		e.log.Debug("intent failed", "kind", intent.Kind, "intent_id", intent.ID, "error", err)
		return err
	}

	e.mu.Lock()
	version := e.state.Version
	if e.policy == MergeSerialized {
		base = e.state
	}
	next := patch.apply(base)
	next.Version = version + 1
	e.state = next
	snapshot := e.state.clone()
	e.mu.Unlock()

	e.log.Debug("intent merged", "kind", intent.Kind, "intent_id", intent.ID, "version", snapshot.Version)
	e.publish(snapshot)
	return nil
}

// Subscription delivers snapshots until Cancel is called. Cancel is
// idempotent and closes the channel.
type Subscription struct {
	ch     chan State
	cancel func()
	once   sync.Once
}

func (s *Subscription) States() <-chan State {
	return s.ch
}

func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

// Subscribe registers a snapshot consumer. Slow consumers skip intermediate
// snapshots rather than stalling the writer.
func (e *Engine) Subscribe() *Subscription {
	id := uuid.NewString()
	ch := make(chan State, 8)

	e.mu.Lock()
	e.subs[id] = ch
	e.mu.Unlock()

	return &Subscription{
		ch: ch,
		cancel: func() {
			e.mu.Lock()
			delete(e.subs, id)
			e.mu.Unlock()
			close(ch)
		},
	}
}

func (e *Engine) publish(snapshot State) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, ch := range e.subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}
