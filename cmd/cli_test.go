package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupRequiresEmailFlag(t *testing.T) {
	server := newFakeBank(t)
	defer server.Close()

	_, _, err := executeCLI(t, t.TempDir(), server.URL, "signup", "--password", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"email\" not set")
}

func TestSignupConflictShowsToast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	stdout, _, err := executeCLI(t, t.TempDir(), server.URL,
		"signup", "--email", "a@b.com", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, stdout, "That email is already taken!")
	assert.NotContains(t, stdout, "Signed up as")
}

func TestLoginHappyPathPrintsIdentity(t *testing.T) {
	server := newFakeBank(t)
	defer server.Close()

	stdout, _, err := executeCLI(t, t.TempDir(), server.URL,
		"login", "--email", "a@b.com", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed in as a@b.com (u1)")
}

func TestWhoamiNotSignedIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	stdout, _, err := executeCLI(t, t.TempDir(), server.URL, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in")
}

func TestWithdrawThenWhoamiRemembersLastUser(t *testing.T) {
	home := t.TempDir()

	bank := newFakeBank(t)
	defer bank.Close()

	stdout, _, err := executeCLI(t, home, bank.URL, "withdraw", "--user", "a@b.com", "--sum", "50")
	require.NoError(t, err)
	assert.Contains(t, stdout, "balance 450.00")

	signedOut := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer signedOut.Close()

	stdout, _, err = executeCLI(t, home, signedOut.URL, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "last signed in as u1")
}

func TestLogoutErasesRememberedUser(t *testing.T) {
	home := t.TempDir()

	bank := newFakeBank(t)
	defer bank.Close()

	// One invocation signs in and persists the user id, a later invocation
	// signs out; the stored id must not survive the sign-out.
	_, _, err := executeCLI(t, home, bank.URL, "withdraw", "--user", "a@b.com", "--sum", "50")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, bank.URL, "logout")
	require.NoError(t, err)

	signedOut := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer signedOut.Close()

	stdout, _, err := executeCLI(t, home, signedOut.URL, "whoami")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "last signed in as")
	assert.Contains(t, stdout, "Not signed in")
}

func TestHistoryEmptySession(t *testing.T) {
	server := newFakeBank(t)
	defer server.Close()

	stdout, _, err := executeCLI(t, t.TempDir(), server.URL, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No submissions this session")
}

func TestLogoutPrintsConfirmation(t *testing.T) {
	server := newFakeBank(t)
	defer server.Close()

	stdout, _, err := executeCLI(t, t.TempDir(), server.URL, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed out")
}

func executeCLI(t *testing.T, home, serverURL string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("BANKCTL_SERVER_URL", serverURL)
	t.Setenv("BANKCTL_TOAST_DURATION", "10ms")

	root, app := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	if app != nil {
		app.close()
	}
	return stdout.String(), stderr.String(), err
}

// newFakeBank serves the happy-path account service: every user op answers
// with the same updated user record.
func newFakeBank(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/addUser", "/signIn", "/getUser":
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "u1", "email": "a@b.com", "balance": 500})
		case "/withdraw":
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "u1", "email": "a@b.com", "balance": 450})
		case "/deposit":
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "u1", "email": "a@b.com", "balance": 550})
		case "/logout":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
}
