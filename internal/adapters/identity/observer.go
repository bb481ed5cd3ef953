package identity

import (
	"context"
	"log/slog"

	"github.com/bnema/bank-session-cli/internal/domain"
	"github.com/bnema/bank-session-cli/internal/ports"
	"github.com/bnema/bank-session-cli/internal/session"
)

// Observer watches session snapshots for sign-in transitions and mirrors the
// signed-in user id into durable client storage: written on sign-in, erased
// on sign-out. The application root starts at most one and closes it on
// teardown, which cancels the underlying subscription.
type Observer struct {
	store ports.CredentialStore
	sub   *session.Subscription
	log   *slog.Logger
	done  chan struct{}
}

func StartObserver(engine *session.Engine, store ports.CredentialStore, log *slog.Logger) *Observer {
	if log == nil {
		log = slog.Default()
	}

	o := &Observer{
		store: store,
		sub:   engine.Subscribe(),
		log:   log,
		done:  make(chan struct{}),
	}
	go o.run()

	return o
}

func (o *Observer) run() {
	defer close(o.done)

	var last domain.UserID
	for snapshot := range o.sub.States() {
		if !snapshot.SignedIn() {
			// Erase unconditionally: the current id may have been stored
			// by an earlier process, not by this observer.
			if err := o.store.Delete(context.Background()); err != nil {
				o.log.Error("erase stored user id", "error", err)
				continue
			}
			last = ""
			continue
		}

		if snapshot.CurrentUserID == last {
			continue
		}
		if err := o.store.Put(context.Background(), snapshot.CurrentUserID); err != nil {
			o.log.Error("store signed-in user id", "error", err)
			continue
		}
		last = snapshot.CurrentUserID
	}
}

// Close releases the snapshot subscription and waits for the observer
// goroutine to drain.
func (o *Observer) Close() {
	o.sub.Cancel()
	<-o.done
}
