package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/bank-session-cli/internal/domain"
	"github.com/bnema/bank-session-cli/internal/ports"
)

// Toast strings for the recoverable service rejections. The remote service
// signals both conditions with a 403.
const (
	ToastEmailTaken     = "That email is already taken!"
	ToastBadCredentials = "Sorry, the credentials are incorrect"
)

// Reducer maps one intent to a sparse state patch, performing the intent's
// single remote call in the process. A 403 from the service is recovered
// into a patch; every other failure is returned as an error and produces
// no patch at all.
type Reducer struct {
	service ports.AccountService
}

func NewReducer(service ports.AccountService) *Reducer {
	return &Reducer{service: service}
}

func (r *Reducer) Reduce(ctx context.Context, intent Intent) (Patch, error) {
	switch intent.Kind {
	case IntentSetUser:
		payload, err := payloadAs[SetUserPayload](intent)
		if err != nil {
			return Patch{}, err
		}
		user := payload.User
		return Patch{
			UserID: Set(payload.UserID),
			User:   Set(&user),
		}, nil

	case IntentAddUser:
		payload, err := payloadAs[domain.NewUserProfile](intent)
		if err != nil {
			return Patch{}, err
		}
		user, err := r.service.CreateUser(ctx, payload)
		if errors.Is(err, domain.ErrForbidden) {
			return Patch{
				UserID: Set(domain.UserID("")),
				Toast:  Set(ToastEmailTaken),
			}, nil
		}
		if err != nil {
			return Patch{}, fmt.Errorf("create user: %w", err)
		}
		return identityPatch(user), nil

	case IntentSignIn:
		payload, err := payloadAs[domain.Credentials](intent)
		if err != nil {
			return Patch{}, err
		}
		user, err := r.service.SignIn(ctx, payload)
		if errors.Is(err, domain.ErrForbidden) {
			return Patch{
				UserID: Set(domain.UserID("")),
				Toast:  Set(ToastBadCredentials),
			}, nil
		}
		if err != nil {
			return Patch{}, fmt.Errorf("sign in: %w", err)
		}
		return identityPatch(user), nil

	case IntentFetchUser:
		user, err := r.service.CurrentUser(ctx)
		if errors.Is(err, domain.ErrForbidden) {
			return signedOutPatch(), nil
		}
		if err != nil {
			return Patch{}, fmt.Errorf("fetch current user: %w", err)
		}
		return identityPatch(user), nil

	case IntentWithdraw:
		payload, err := payloadAs[LedgerPayload](intent)
		if err != nil {
			return Patch{}, err
		}
		user, err := r.service.Withdraw(ctx, payload.User, payload.Sum)
		if err != nil {
			return Patch{}, fmt.Errorf("withdraw: %w", err)
		}
		return identityPatch(user), nil

	case IntentDeposit:
		payload, err := payloadAs[LedgerPayload](intent)
		if err != nil {
			return Patch{}, err
		}
		user, err := r.service.Deposit(ctx, payload.User, payload.Sum)
		if err != nil {
			return Patch{}, fmt.Errorf("deposit: %w", err)
		}
		return identityPatch(user), nil

	case IntentLogSubmission:
		payload, err := payloadAs[domain.Submission](intent)
		if err != nil {
			return Patch{}, err
		}
		return Patch{AddSubmissions: []domain.Submission{payload}}, nil

	case IntentShowToast:
		payload, err := payloadAs[string](intent)
		if err != nil {
			return Patch{}, err
		}
		return Patch{Toast: Set(payload)}, nil

	case IntentSignOut:
		// The logout response status is deliberately ignored: the local
		// session clears even when the server-side one was already gone.
		if err := r.service.Logout(ctx); err != nil {
			return Patch{}, fmt.Errorf("logout: %w", err)
		}
		return signedOutPatch(), nil

	default:
		return Patch{}, fmt.Errorf("%w: %q", domain.ErrUnknownIntent, intent.Kind)
	}
}

func payloadAs[T any](intent Intent) (T, error) {
	payload, ok := intent.Payload.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("intent %s: payload is %T, want %T", intent.Kind, intent.Payload, zero)
	}
	return payload, nil
}

func identityPatch(user domain.User) Patch {
	return Patch{
		UserID: Set(user.ID),
		User:   Set(&user),
	}
}

func signedOutPatch() Patch {
	return Patch{
		UserID: Set(domain.UserID("")),
		User:   Set[*domain.User](nil),
	}
}
