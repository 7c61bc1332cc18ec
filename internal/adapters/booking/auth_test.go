package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/doctowatch/internal/adapters/transport"
	"github.com/bnema/doctowatch/internal/domain"
)

type fakePrompter struct {
	interactive bool
	line        string
	chosen      int
}

func (p *fakePrompter) Interactive() bool { return p.interactive }

func (p *fakePrompter) ChooseIndex(string, []string) (int, error) { return p.chosen, nil }

func (p *fakePrompter) ReadLine(string) (string, error) { return p.line, nil }

func (p *fakePrompter) ReadSecret(string) (string, error) { return "", nil }

func newTestClient(t *testing.T, baseURL string, prompter *fakePrompter) *Client {
	t.Helper()

	httpClient, err := transport.New(transport.Options{BaseURL: baseURL})
	require.NoError(t, err)
	if prompter == nil {
		prompter = &fakePrompter{interactive: true}
	}
	return NewClient(httpClient, prompter, zerolog.Nop())
}

func TestLoginSucceedsWithoutChallenge(t *testing.T) {
	var loginBody loginRequest
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sessions/new", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("POST /login.json", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&loginBody))
		_, _ = fmt.Fprint(w, `{"redirection":"/account"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	err := client.Login(context.Background(), domain.Credentials{Username: "user@mail.test", Password: "hunter2"})
	require.NoError(t, err)

	assert.Equal(t, loginRequest{
		Kind:             "patient",
		Username:         "user@mail.test",
		Password:         "hunter2",
		Remember:         true,
		RememberUsername: true,
	}, loginBody)
}

func TestLoginRejectedCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sessions/new", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("POST /login.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	err := client.Login(context.Background(), domain.Credentials{Username: "user", Password: "nope"})
	require.ErrorIs(t, err, domain.ErrLoginRejected)
}

func TestLoginReportsBotMitigationBlock(t *testing.T) {
	loginCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sessions/new", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = fmt.Fprint(w, "<html>Checking your browser before accessing doctolib.fr</html>")
	})
	mux.HandleFunc("POST /login.json", func(w http.ResponseWriter, r *http.Request) {
		loginCalls++
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	err := client.Login(context.Background(), domain.Credentials{})
	require.ErrorIs(t, err, domain.ErrBotBlocked)
	assert.Zero(t, loginCalls, "credentials must not be sent through a bot block")
}

func TestPlainServerErrorIsNotABotBlock(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sessions/new", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	err := client.Login(context.Background(), domain.Credentials{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrBotBlocked)
}

func TestLoginReportsUpstreamUnavailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sessions/new", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusUpstreamError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	err := client.Login(context.Background(), domain.Credentials{})
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestTwoFactorChallengeSolved(t *testing.T) {
	sendAuthCodeCalls := 0
	var challengeBody challengeRequest

	mux := http.NewServeMux()
	mux.HandleFunc("GET /sessions/new", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("POST /login.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"redirection":"/sessions/two-factor"}`)
	})
	mux.HandleFunc("POST /api/accounts/send_auth_code", func(w http.ResponseWriter, r *http.Request) {
		sendAuthCodeCalls++
		var body sendAuthCodeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "email", body.TwoFactorAuthMethod)
	})
	mux.HandleFunc("POST /login/challenge", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&challengeBody))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL, &fakePrompter{interactive: true, line: "424242"})
	err := client.Login(context.Background(), domain.Credentials{Username: "user", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, 1, sendAuthCodeCalls)
	assert.Equal(t, challengeRequest{AuthCode: "424242", TwoFactorAuthMethod: "email"}, challengeBody)
}

func TestTwoFactorInvalidCodeFailsWithoutRetry(t *testing.T) {
	challengeCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sessions/new", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("POST /login.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"redirection":"/sessions/two-factor"}`)
	})
	mux.HandleFunc("POST /api/accounts/send_auth_code", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("POST /login/challenge", func(w http.ResponseWriter, r *http.Request) {
		challengeCalls++
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL, &fakePrompter{interactive: true, line: "000000"})
	err := client.Login(context.Background(), domain.Credentials{Username: "user", Password: "pw"})
	require.ErrorIs(t, err, domain.ErrInvalidAuthCode)
	assert.Equal(t, 1, challengeCalls)
}

func TestTwoFactorWithoutTerminalFailsBeforeAnyCodeIsSent(t *testing.T) {
	sendAuthCodeCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sessions/new", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("POST /login.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"redirection":"/sessions/two-factor"}`)
	})
	mux.HandleFunc("POST /api/accounts/send_auth_code", func(w http.ResponseWriter, r *http.Request) {
		sendAuthCodeCalls++
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL, &fakePrompter{interactive: false})
	err := client.Login(context.Background(), domain.Credentials{Username: "user", Password: "pw"})
	require.ErrorIs(t, err, domain.ErrNoTerminal)
	assert.Zero(t, sendAuthCodeCalls)
}
