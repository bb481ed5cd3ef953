package session

import (
	"github.com/bnema/bank-session-cli/internal/domain"
	"github.com/google/uuid"
)

// IntentKind names one state transition. The set is closed: the reducer
// matches it exhaustively and rejects anything else with
// domain.ErrUnknownIntent instead of panicking.
type IntentKind string

const (
	IntentAddUser       IntentKind = "add_user"
	IntentSignIn        IntentKind = "sign_in"
	IntentSetUser       IntentKind = "set_user"
	IntentFetchUser     IntentKind = "fetch_user"
	IntentWithdraw      IntentKind = "withdraw"
	IntentDeposit       IntentKind = "deposit"
	IntentLogSubmission IntentKind = "log_submission"
	IntentShowToast     IntentKind = "show_notification"
	IntentSignOut       IntentKind = "sign_out"
)

// Intent is one typed request for a state transition, including the single
// side effect it implies. Intents are transient: built per call, never stored.
type Intent struct {
	ID      string
	Kind    IntentKind
	Payload any
}

func NewIntent(kind IntentKind, payload any) Intent {
	return Intent{
		ID:      uuid.NewString(),
		Kind:    kind,
		Payload: payload,
	}
}

// SetUserPayload carries an identity established out-of-band, typically by
// the identity-provider exchange.
type SetUserPayload struct {
	UserID domain.UserID
	User   domain.User
}

// LedgerPayload is shared by the withdraw and deposit intents.
type LedgerPayload struct {
	User string
	Sum  float64
}
