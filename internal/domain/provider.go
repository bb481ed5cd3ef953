package domain

import "fmt"

// ProviderSession is the outcome of a successful identity-provider exchange.
type ProviderSession struct {
	UserID      UserID
	AccessToken string
	User        User
}

// ProviderError carries the structured failure the provider reports:
// an error code, a human message, and the email involved when known.
type ProviderError struct {
	Code    string
	Message string
	Email   string
}

func (e *ProviderError) Error() string {
	if e.Email != "" {
		return fmt.Sprintf("identity provider: %s (%s, email %s)", e.Message, e.Code, e.Email)
	}
	return fmt.Sprintf("identity provider: %s (%s)", e.Message, e.Code)
}
