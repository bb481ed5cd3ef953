package session

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/bank-session-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService implements ports.AccountService with per-call hooks. Calls
// without a hook fail the test.
type fakeService struct {
	t           *testing.T
	createUser  func(ctx context.Context, profile domain.NewUserProfile) (domain.User, error)
	signIn      func(ctx context.Context, creds domain.Credentials) (domain.User, error)
	currentUser func(ctx context.Context) (domain.User, error)
	withdraw    func(ctx context.Context, user string, sum float64) (domain.User, error)
	deposit     func(ctx context.Context, user string, sum float64) (domain.User, error)
	logout      func(ctx context.Context) error
}

func (f *fakeService) CreateUser(ctx context.Context, profile domain.NewUserProfile) (domain.User, error) {
	if f.createUser == nil {
		f.t.Fatal("unexpected CreateUser call")
	}
	return f.createUser(ctx, profile)
}

func (f *fakeService) SignIn(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	if f.signIn == nil {
		f.t.Fatal("unexpected SignIn call")
	}
	return f.signIn(ctx, creds)
}

func (f *fakeService) CurrentUser(ctx context.Context) (domain.User, error) {
	if f.currentUser == nil {
		f.t.Fatal("unexpected CurrentUser call")
	}
	return f.currentUser(ctx)
}

func (f *fakeService) Withdraw(ctx context.Context, user string, sum float64) (domain.User, error) {
	if f.withdraw == nil {
		f.t.Fatal("unexpected Withdraw call")
	}
	return f.withdraw(ctx, user, sum)
}

func (f *fakeService) Deposit(ctx context.Context, user string, sum float64) (domain.User, error) {
	if f.deposit == nil {
		f.t.Fatal("unexpected Deposit call")
	}
	return f.deposit(ctx, user, sum)
}

func (f *fakeService) Logout(ctx context.Context) error {
	if f.logout == nil {
		f.t.Fatal("unexpected Logout call")
	}
	return f.logout(ctx)
}

func TestReducerSetUserProducesIdentityPatch(t *testing.T) {
	t.Parallel()

	reducer := NewReducer(&fakeService{t: t})
	user := domain.User{ID: "u1", Email: "a@b.com"}

	patch, err := reducer.Reduce(context.Background(), NewIntent(IntentSetUser, SetUserPayload{UserID: "u1", User: user}))
	require.NoError(t, err)

	id, ok := patch.UserID.Value()
	require.True(t, ok)
	assert.Equal(t, domain.UserID("u1"), id)

	merged, ok := patch.User.Value()
	require.True(t, ok)
	require.NotNil(t, merged)
	assert.Equal(t, "a@b.com", merged.Email)
}

func TestReducerAddUserSuccess(t *testing.T) {
	t.Parallel()

	service := &fakeService{t: t}
	service.createUser = func(_ context.Context, profile domain.NewUserProfile) (domain.User, error) {
		assert.Equal(t, "a@b.com", profile.Email)
		return domain.User{ID: "u1", Email: profile.Email, Balance: 500}, nil
	}
	reducer := NewReducer(service)

	patch, err := reducer.Reduce(context.Background(), NewIntent(IntentAddUser, domain.NewUserProfile{Email: "a@b.com", Password: "pw"}))
	require.NoError(t, err)

	id, ok := patch.UserID.Value()
	require.True(t, ok)
	user, ok := patch.User.Value()
	require.True(t, ok)
	require.NotNil(t, user)
	assert.Equal(t, id, user.ID)
}

func TestReducerAddUserEmailTaken(t *testing.T) {
	t.Parallel()

	service := &fakeService{t: t}
	service.createUser = func(context.Context, domain.NewUserProfile) (domain.User, error) {
		return domain.User{}, domain.ErrForbidden
	}
	reducer := NewReducer(service)

	patch, err := reducer.Reduce(context.Background(), NewIntent(IntentAddUser, domain.NewUserProfile{Email: "a@b.com"}))
	require.NoError(t, err)

	id, ok := patch.UserID.Value()
	require.True(t, ok)
	assert.Empty(t, id)

	toast, ok := patch.Toast.Value()
	require.True(t, ok)
	assert.Equal(t, "That email is already taken!", toast)
}

func TestReducerSignInBadCredentials(t *testing.T) {
	t.Parallel()

	service := &fakeService{t: t}
	service.signIn = func(context.Context, domain.Credentials) (domain.User, error) {
		return domain.User{}, domain.ErrForbidden
	}
	reducer := NewReducer(service)

	patch, err := reducer.Reduce(context.Background(), NewIntent(IntentSignIn, domain.Credentials{Email: "a@b.com", Password: "nope"}))
	require.NoError(t, err)

	id, ok := patch.UserID.Value()
	require.True(t, ok)
	assert.Empty(t, id)

	toast, ok := patch.Toast.Value()
	require.True(t, ok)
	assert.Equal(t, "Sorry, the credentials are incorrect", toast)
}

func TestReducerFetchUserForbiddenClearsIdentitySilently(t *testing.T) {
	t.Parallel()

	service := &fakeService{t: t}
	service.currentUser = func(context.Context) (domain.User, error) {
		return domain.User{}, domain.ErrForbidden
	}
	reducer := NewReducer(service)

	patch, err := reducer.Reduce(context.Background(), NewIntent(IntentFetchUser, nil))
	require.NoError(t, err)

	id, ok := patch.UserID.Value()
	require.True(t, ok)
	assert.Empty(t, id)

	user, ok := patch.User.Value()
	require.True(t, ok)
	assert.Nil(t, user)

	_, ok = patch.Toast.Value()
	assert.False(t, ok, "fetch-user rejection must stay silent")
}

func TestReducerWithdrawFaultPropagates(t *testing.T) {
	t.Parallel()

	fault := errors.New("connection reset")
	service := &fakeService{t: t}
	service.withdraw = func(context.Context, string, float64) (domain.User, error) {
		return domain.User{}, fault
	}
	reducer := NewReducer(service)

	_, err := reducer.Reduce(context.Background(), NewIntent(IntentWithdraw, LedgerPayload{User: "a@b.com", Sum: 50}))
	require.ErrorIs(t, err, fault)
}

func TestReducerSignOutIgnoresLogoutOutcomeButNotTransportFailure(t *testing.T) {
	t.Parallel()

	service := &fakeService{t: t}
	service.logout = func(context.Context) error { return nil }
	reducer := NewReducer(service)

	patch, err := reducer.Reduce(context.Background(), NewIntent(IntentSignOut, nil))
	require.NoError(t, err)

	id, ok := patch.UserID.Value()
	require.True(t, ok)
	assert.Empty(t, id)
	user, ok := patch.User.Value()
	require.True(t, ok)
	assert.Nil(t, user)

	fault := errors.New("dial tcp: connection refused")
	service.logout = func(context.Context) error { return fault }

	_, err = reducer.Reduce(context.Background(), NewIntent(IntentSignOut, nil))
	require.ErrorIs(t, err, fault)
}

func TestReducerLogSubmissionAppends(t *testing.T) {
	t.Parallel()

	reducer := NewReducer(&fakeService{t: t})
	submission := domain.Submission{User: "a@b.com", Sum: 50, Action: domain.ActionWithdraw}

	patch, err := reducer.Reduce(context.Background(), NewIntent(IntentLogSubmission, submission))
	require.NoError(t, err)
	assert.Equal(t, []domain.Submission{submission}, patch.AddSubmissions)
}

func TestReducerUnknownIntent(t *testing.T) {
	t.Parallel()

	reducer := NewReducer(&fakeService{t: t})

	_, err := reducer.Reduce(context.Background(), NewIntent("mint_money", nil))
	require.ErrorIs(t, err, domain.ErrUnknownIntent)
}

func TestReducerRejectsMismatchedPayload(t *testing.T) {
	t.Parallel()

	reducer := NewReducer(&fakeService{t: t})

	_, err := reducer.Reduce(context.Background(), NewIntent(IntentWithdraw, "fifty"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payload")
}
