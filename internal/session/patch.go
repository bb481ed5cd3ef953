package session

import (
	"slices"

	"github.com/bnema/bank-session-cli/internal/domain"
)

// Field is one entry of a sparse patch: absent fields leave the merged state
// untouched, present fields overwrite it, including overwriting with the
// empty value to reset it.
type Field[T any] struct {
	value   T
	present bool
}

func Set[T any](value T) Field[T] {
	return Field[T]{value: value, present: true}
}

func (f Field[T]) Value() (T, bool) {
	return f.value, f.present
}

// Patch is the sparse state delta one intent produces.
//
// AddSubmissions appends rather than overwrites: the submission log is an
// append-only audit trail, so a patch can only ever contribute records.
type Patch struct {
	UserID         Field[domain.UserID]
	User           Field[*domain.User]
	Toast          Field[string]
	AddSubmissions []domain.Submission
}

func (p Patch) apply(base State) State {
	next := base
	if v, ok := p.UserID.Value(); ok {
		next.CurrentUserID = v
	}
	if v, ok := p.User.Value(); ok {
		next.CurrentUser = v
	}
	if v, ok := p.Toast.Value(); ok {
		next.Toast = v
	}
	if len(p.AddSubmissions) > 0 {
		next.Submissions = append(slices.Clone(base.Submissions), p.AddSubmissions...)
	}
	return next
}
