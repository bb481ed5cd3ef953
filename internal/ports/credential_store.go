package ports

import (
	"context"

	"github.com/bnema/bank-session-cli/internal/domain"
)

// CredentialStore is durable client-side storage for the last signed-in
// user identifier. Get returns domain.ErrCredentialNotFound when nothing
// is stored.
type CredentialStore interface {
	Put(ctx context.Context, id domain.UserID) error
	Get(ctx context.Context) (domain.UserID, error)
	Delete(ctx context.Context) error
}
