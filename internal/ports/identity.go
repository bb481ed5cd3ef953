package ports

import (
	"context"

	"github.com/bnema/bank-session-cli/internal/domain"
)

// IdentityProvider performs the third-party credential exchange
// (browser pop-up or equivalent) and yields the provider's view of the user.
type IdentityProvider interface {
	Exchange(ctx context.Context) (domain.ProviderSession, error)
}
