package session

import (
	"maps"
	"slices"

	"github.com/bnema/bank-session-cli/internal/domain"
)

// State is the shared session snapshot: who is signed in, the ledger actions
// attempted this session, and the pending notification. Zero value means
// signed out with nothing pending.
//
// Version increases by one per merged patch and never otherwise; readers can
// use it to detect that a snapshot they hold has gone stale.
type State struct {
	CurrentUserID domain.UserID
	CurrentUser   *domain.User
	Submissions   []domain.Submission
	Toast         string
	Version       uint64
}

func (s State) SignedIn() bool {
	return s.CurrentUserID != ""
}

func (s State) clone() State {
	out := s
	out.Submissions = slices.Clone(s.Submissions)
	if s.CurrentUser != nil {
		user := *s.CurrentUser
		user.Extra = maps.Clone(user.Extra)
		out.CurrentUser = &user
	}
	return out
}
