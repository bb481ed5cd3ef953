package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bnema/bank-session-cli/internal/domain"
	"github.com/bnema/bank-session-cli/internal/ports"
)

// Session is the published action surface: one method per intent the rest of
// the application may raise. It owns no state itself; everything flows
// through the engine. Construct exactly one per application root.
type Session struct {
	engine   *Engine
	provider ports.IdentityProvider
	log      *slog.Logger
}

func NewSession(engine *Engine, provider ports.IdentityProvider, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}

	return &Session{
		engine:   engine,
		provider: provider,
		log:      log,
	}
}

func (s *Session) State() State {
	return s.engine.State()
}

func (s *Session) Subscribe() *Subscription {
	return s.engine.Subscribe()
}

func (s *Session) AddUser(ctx context.Context, profile domain.NewUserProfile) error {
	return s.engine.Dispatch(ctx, NewIntent(IntentAddUser, profile))
}

func (s *Session) SignIn(ctx context.Context, email, password, token string) error {
	return s.engine.Dispatch(ctx, NewIntent(IntentSignIn, domain.Credentials{
		Email:    email,
		Password: password,
		Token:    token,
	}))
}

// SignInWithProvider runs the third-party credential exchange and, on
// success, feeds the provider's identity back in as a set-user intent.
// Provider failures are logged for diagnostics and returned to the caller;
// the session snapshot stays as it was.
func (s *Session) SignInWithProvider(ctx context.Context) error {
	if s.provider == nil {
		return fmt.Errorf("sign in with provider: no identity provider configured")
	}

	result, err := s.provider.Exchange(ctx)
	if err != nil {
		s.log.Error("identity provider exchange failed", "error", err)
		return fmt.Errorf("sign in with provider: %w", err)
	}

	return s.engine.Dispatch(ctx, NewIntent(IntentSetUser, SetUserPayload{
		UserID: result.UserID,
		User:   result.User,
	}))
}

func (s *Session) FetchCurrentUser(ctx context.Context) error {
	return s.engine.Dispatch(ctx, NewIntent(IntentFetchUser, nil))
}

// Withdraw runs the ledger operation and, when it succeeds, records the
// attempt in the session submission log. An empty user falls back to the
// signed-in user's email.
func (s *Session) Withdraw(ctx context.Context, user string, sum float64) error {
	return s.ledgerAction(ctx, IntentWithdraw, domain.ActionWithdraw, user, sum)
}

func (s *Session) Deposit(ctx context.Context, user string, sum float64) error {
	return s.ledgerAction(ctx, IntentDeposit, domain.ActionDeposit, user, sum)
}

func (s *Session) ledgerAction(ctx context.Context, kind IntentKind, action domain.ActionKind, user string, sum float64) error {
	if user == "" {
		state := s.engine.State()
		if !state.SignedIn() || state.CurrentUser == nil {
			return domain.ErrNotSignedIn
		}
		user = state.CurrentUser.Email
	}

	if err := s.engine.Dispatch(ctx, NewIntent(kind, LedgerPayload{User: user, Sum: sum})); err != nil {
		return err
	}

	return s.LogSubmission(ctx, domain.Submission{User: user, Sum: sum, Action: action})
}

func (s *Session) LogSubmission(ctx context.Context, submission domain.Submission) error {
	return s.engine.Dispatch(ctx, NewIntent(IntentLogSubmission, submission))
}

func (s *Session) ShowNotification(ctx context.Context, message string) error {
	return s.engine.Dispatch(ctx, NewIntent(IntentShowToast, message))
}

func (s *Session) HideNotification(ctx context.Context) error {
	return s.engine.Dispatch(ctx, NewIntent(IntentShowToast, ""))
}

func (s *Session) SignOut(ctx context.Context) error {
	return s.engine.Dispatch(ctx, NewIntent(IntentSignOut, nil))
}
