package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"

	"github.com/bnema/bank-session-cli/internal/adapters/bankapi"
	"github.com/bnema/bank-session-cli/internal/adapters/identity"
	tomlstore "github.com/bnema/bank-session-cli/internal/adapters/store/toml"
	"github.com/bnema/bank-session-cli/internal/ports"
	"github.com/bnema/bank-session-cli/internal/session"
)

type config struct {
	ServerURL      string        `env:"BANKCTL_SERVER_URL" envDefault:"http://localhost:4000"`
	RequestTimeout time.Duration `env:"BANKCTL_REQUEST_TIMEOUT" envDefault:"30s"`
	AuthIssuer     string        `env:"BANKCTL_AUTH_ISSUER" envDefault:"https://accounts.google.com"`
	AuthClientID   string        `env:"BANKCTL_AUTH_CLIENT_ID"`
	AuthListenAddr string        `env:"BANKCTL_AUTH_LISTEN" envDefault:"127.0.0.1:1455"`
	AuthTimeout    time.Duration `env:"BANKCTL_AUTH_TIMEOUT" envDefault:"5m"`
	ToastDuration  time.Duration `env:"BANKCTL_TOAST_DURATION" envDefault:"2s"`
	LegacyMerge    bool          `env:"BANKCTL_LEGACY_MERGE"`
	Debug          bool          `env:"BANKCTL_DEBUG"`
}

type app struct {
	session       *session.Session
	engine        *session.Engine
	store         ports.CredentialStore
	observer      *identity.Observer
	toastDuration time.Duration
	log           *slog.Logger
}

func wireApp() (*app, error) {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment config: %w", err)
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	httpClient := &http.Client{Jar: jar, Timeout: cfg.RequestTimeout}

	client, err := bankapi.NewClient(cfg.ServerURL, httpClient)
	if err != nil {
		return nil, fmt.Errorf("wire account service client: %w", err)
	}

	store, err := tomlstore.NewStore(viper.New(), ports.SystemClock{})
	if err != nil {
		return nil, fmt.Errorf("wire credential store: %w", err)
	}

	var provider ports.IdentityProvider
	if cfg.AuthClientID != "" {
		p, err := identity.NewProvider(identity.Config{
			Issuer:     cfg.AuthIssuer,
			ClientID:   cfg.AuthClientID,
			Scopes:     []string{"openid", "profile", "email"},
			ListenAddr: cfg.AuthListenAddr,
			Timeout:    cfg.AuthTimeout,
		}, httpClient, openBrowser, log)
		if err != nil {
			return nil, fmt.Errorf("wire identity provider: %w", err)
		}
		provider = p
	}

	policy := session.MergeSerialized
	if cfg.LegacyMerge {
		policy = session.MergeSnapshotAtDispatch
	}

	engine := session.NewEngine(session.NewReducer(client), policy, log)
	observer := identity.StartObserver(engine, store, log)

	return &app{
		session:       session.NewSession(engine, provider, log),
		engine:        engine,
		store:         store,
		observer:      observer,
		toastDuration: cfg.ToastDuration,
		log:           log,
	}, nil
}

func (a *app) close() {
	if a.observer != nil {
		a.observer.Close()
	}
}
