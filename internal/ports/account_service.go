package ports

import (
	"context"

	"github.com/bnema/bank-session-cli/internal/domain"
)

// AccountService is the remote account-management API as the session core
// needs it. Implementations return domain.ErrForbidden (possibly wrapped)
// for the service's recoverable 403 responses; any other failure is a fault.
type AccountService interface {
	CreateUser(ctx context.Context, profile domain.NewUserProfile) (domain.User, error)
	SignIn(ctx context.Context, creds domain.Credentials) (domain.User, error)
	CurrentUser(ctx context.Context) (domain.User, error)
	Withdraw(ctx context.Context, user string, sum float64) (domain.User, error)
	Deposit(ctx context.Context, user string, sum float64) (domain.User, error)
	Logout(ctx context.Context) error
}
