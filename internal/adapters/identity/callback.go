package identity

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"
)

var (
	ErrStateMismatch   = errors.New("authorization redirect carried the wrong state")
	ErrCallbackTimeout = errors.New("no authorization redirect arrived in time")
)

// redirectOutcome is what a single provider redirect resolves to.
type redirectOutcome struct {
	code string
	err  error
}

// loopbackReceiver waits on a localhost listener for the one redirect the
// provider issues after the user approves the sign-in. Later redirects are
// served but ignored.
type loopbackReceiver struct {
	state    string
	listener net.Listener
	srv      *http.Server
	outcome  chan redirectOutcome
	resolve  sync.Once
	shutdown sync.Once
}

func listenForRedirect(addr, state string) (*loopbackReceiver, error) {
	if addr == "" {
		addr = "127.0.0.1:0"
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen for authorization redirect: %w", err)
	}

	rec := &loopbackReceiver{
		state:    state,
		listener: ln,
		outcome:  make(chan redirectOutcome, 1),
	}
	rec.srv = &http.Server{Handler: http.HandlerFunc(rec.serveRedirect)}

	go func() {
		if err := rec.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rec.complete(redirectOutcome{err: err})
		}
	}()

	return rec, nil
}

func (l *loopbackReceiver) redirectURI() string {
	addr, ok := l.listener.Addr().(*net.TCPAddr)
	if !ok {
		return "http://localhost/callback"
	}
	return fmt.Sprintf("http://localhost:%d/callback", addr.Port)
}

// awaitCode blocks until the redirect lands or the deadline passes, then
// shuts the listener down either way.
func (l *loopbackReceiver) awaitCode(timeout time.Duration) (string, error) {
	defer l.stop()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case out := <-l.outcome:
		return out.code, out.err
	case <-timer.C:
		return "", ErrCallbackTimeout
	}
}

func (l *loopbackReceiver) stop() {
	l.shutdown.Do(func() { _ = l.srv.Close() })
}

func (l *loopbackReceiver) serveRedirect(w http.ResponseWriter, r *http.Request) {
	code, err := codeFromRedirect(r.URL.Query(), l.state)
	if err != nil {
		l.complete(redirectOutcome{err: err})
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	l.complete(redirectOutcome{code: code})
	_, _ = fmt.Fprintln(w, "Sign-in complete. You can close this window.")
}

func (l *loopbackReceiver) complete(out redirectOutcome) {
	l.resolve.Do(func() { l.outcome <- out })
}

// codeFromRedirect validates one redirect's query parameters and extracts
// the authorization code.
func codeFromRedirect(q url.Values, wantState string) (string, error) {
	if q.Get("state") != wantState {
		return "", ErrStateMismatch
	}

	if name := q.Get("error"); name != "" {
		if desc := q.Get("error_description"); desc != "" {
			return "", fmt.Errorf("provider rejected authorization: %s: %s", name, desc)
		}
		return "", fmt.Errorf("provider rejected authorization: %s", name)
	}

	code := q.Get("code")
	if code == "" {
		return "", errors.New("redirect carried no authorization code")
	}

	return code, nil
}
