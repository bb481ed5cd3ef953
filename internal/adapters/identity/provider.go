package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/bank-session-cli/internal/domain"
	"github.com/bnema/bank-session-cli/internal/ports"
)

const maxTokenResponseBytes = 1 << 20

// Provider failure codes reported through domain.ProviderError.
const (
	CodeAuthorizationFailed = "authorization_failed"
	CodeCallbackFailed      = "callback_failed"
	CodeExchangeFailed      = "exchange_failed"
	CodeTokenInvalid        = "token_invalid"
)

// Config describes the hosted identity provider. AuthURL defaults to the
// issuer's /oauth/authorize endpoint.
type Config struct {
	Issuer     string
	AuthURL    string
	ClientID   string
	Scopes     []string
	ListenAddr string
	Timeout    time.Duration
}

// Provider runs the provider's pop-up style exchange: it opens the hosted
// sign-in page in the user's browser, waits for the redirect on a local
// callback server, and exchanges the authorization code for tokens.
type Provider struct {
	cfg     Config
	authURL *url.URL
	http    *http.Client
	openURL func(string) error
	log     *slog.Logger
}

var _ ports.IdentityProvider = (*Provider)(nil)

func NewProvider(cfg Config, httpClient *http.Client, openURL func(string) error, log *slog.Logger) (*Provider, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("issuer is required")
	}
	if cfg.ClientID == "" {
		return nil, errors.New("client id is required")
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = strings.TrimRight(cfg.Issuer, "/") + "/oauth/authorize"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}

	authURL, err := url.Parse(cfg.AuthURL)
	if err != nil {
		return nil, fmt.Errorf("parse auth url: %w", err)
	}
	if authURL.Scheme != "http" && authURL.Scheme != "https" {
		return nil, errors.New("auth url must use http or https")
	}
	if authURL.Host == "" {
		return nil, errors.New("auth url host is required")
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if openURL == nil {
		openURL = func(string) error { return nil }
	}
	if log == nil {
		log = slog.Default()
	}

	return &Provider{cfg: cfg, authURL: authURL, http: httpClient, openURL: openURL, log: log}, nil
}

func (p *Provider) Exchange(ctx context.Context) (domain.ProviderSession, error) {
	pkce, err := NewPKCEPair()
	if err != nil {
		return domain.ProviderSession{}, p.fail(CodeAuthorizationFailed, fmt.Errorf("generate pkce pair: %w", err), "")
	}
	state, err := NewState()
	if err != nil {
		return domain.ProviderSession{}, p.fail(CodeAuthorizationFailed, fmt.Errorf("generate state: %w", err), "")
	}

	rec, err := listenForRedirect(p.cfg.ListenAddr, state)
	if err != nil {
		return domain.ProviderSession{}, p.fail(CodeAuthorizationFailed, err, "")
	}
	defer rec.stop()

	if err := p.openURL(p.authorizationURL(rec.redirectURI(), state, pkce.Challenge)); err != nil {
		return domain.ProviderSession{}, p.fail(CodeAuthorizationFailed, fmt.Errorf("open sign-in page: %w", err), "")
	}

	code, err := rec.awaitCode(p.cfg.Timeout)
	if err != nil {
		return domain.ProviderSession{}, p.fail(CodeCallbackFailed, err, "")
	}

	tokens, err := p.exchangeCode(ctx, code, rec.redirectURI(), pkce.Verifier)
	if err != nil {
		return domain.ProviderSession{}, p.fail(CodeExchangeFailed, err, "")
	}

	claims, err := ParseIDTokenClaims(tokens.IDToken)
	if err != nil {
		return domain.ProviderSession{}, p.fail(CodeTokenInvalid, err, "")
	}

	return domain.ProviderSession{
		UserID:      domain.UserID(claims.Subject),
		AccessToken: tokens.AccessToken,
		User: domain.User{
			ID:    domain.UserID(claims.Subject),
			Email: claims.Email,
			Name:  claims.Name,
		},
	}, nil
}

func (p *Provider) fail(code string, err error, email string) *domain.ProviderError {
	p.log.Error("identity exchange failed", "code", code, "error", err)
	return &domain.ProviderError{Code: code, Message: err.Error(), Email: email}
}

// authorizationURL renders the hosted sign-in URL for one exchange attempt.
// The base URL was validated when the Provider was built.
func (p *Provider) authorizationURL(redirectURI, state, challenge string) string {
	u := *p.authURL
	q := u.Query()
	q.Set("response_type", "code")
	q.Set("client_id", p.cfg.ClientID)
	q.Set("redirect_uri", redirectURI)
	if len(p.cfg.Scopes) > 0 {
		q.Set("scope", strings.Join(p.cfg.Scopes, " "))
	}
	q.Set("state", state)
	q.Set("code_challenge", challenge)
	q.Set("code_challenge_method", PKCEChallengeMethodS256)
	u.RawQuery = q.Encode()
	return u.String()
}

type exchangedTokens struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (p *Provider) exchangeCode(ctx context.Context, code, redirectURI, verifier string) (exchangedTokens, error) {
	issuer := strings.TrimRight(p.cfg.Issuer, "/")
	endpoint := issuer + "/oauth/token"

	values := url.Values{}
	values.Set("grant_type", "authorization_code")
	values.Set("code", code)
	values.Set("redirect_uri", redirectURI)
	values.Set("client_id", p.cfg.ClientID)
	values.Set("code_verifier", verifier)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return exchangedTokens{}, fmt.Errorf("create token exchange request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.http.Do(httpReq)
	if err != nil {
		return exchangedTokens{}, fmt.Errorf("exchange code for tokens: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return exchangedTokens{}, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tokens exchangedTokens
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxTokenResponseBytes)).Decode(&tokens); err != nil {
		return exchangedTokens{}, fmt.Errorf("decode token response: %w", err)
	}
	if tokens.AccessToken == "" || tokens.IDToken == "" {
		return exchangedTokens{}, errors.New("token response missing required fields")
	}

	return tokens, nil
}
