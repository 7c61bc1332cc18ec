package booking

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/bnema/doctowatch/internal/domain"
)

const twoFactorPath = "/sessions/two-factor"

// statusUpstreamError is Cloudflare's "origin unreachable" status.
const statusUpstreamError = 520

// Login drives the session from logged-out to logged-in, solving the
// two-factor challenge when the server demands one. On success the
// transport's cookie jar holds everything later calls need.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) error {
	if err := c.openSessionPage(ctx); err != nil {
		return err
	}

	var login loginResponse
	res, err := c.http.PostJSON(ctx, "/login.json", loginRequest{
		Kind:             "patient",
		Username:         creds.Username,
		Password:         creds.Password,
		Remember:         true,
		RememberUsername: true,
	}, &login)
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if res.StatusCode() >= 400 && res.StatusCode() < 500 {
		return fmt.Errorf("%w: status %d", domain.ErrLoginRejected, res.StatusCode())
	}
	if res.IsError() {
		return fmt.Errorf("login request: status %d", res.StatusCode())
	}

	if login.Redirection != twoFactorPath {
		c.log.Debug().Str("redirection", login.Redirection).Msg("logged in without a challenge")
		return nil
	}

	return c.solveTwoFactor(ctx)
}

// openSessionPage is the precondition GET that surfaces bot-mitigation
// blocks before credentials are ever sent.
func (c *Client) openSessionPage(ctx context.Context) error {
	res, err := c.http.Get(ctx, "/sessions/new")
	if err != nil {
		return fmt.Errorf("open session page: %w", err)
	}

	switch {
	case isBotBlock(res):
		return fmt.Errorf("%w: status %d", domain.ErrBotBlocked, res.StatusCode())
	case res.StatusCode() == statusUpstreamError:
		return domain.ErrUpstreamUnavailable
	case res.IsError():
		return fmt.Errorf("open session page: status %d", res.StatusCode())
	}

	return nil
}

func isBotBlock(res *resty.Response) bool {
	if res.StatusCode() != http.StatusServiceUnavailable {
		return false
	}
	if !strings.Contains(res.Header().Get("Content-Type"), "text/html") {
		return false
	}

	body := res.String()
	return strings.Contains(body, "cloudflare") ||
		strings.Contains(body, "Checking your browser before accessing")
}

func (c *Client) solveTwoFactor(ctx context.Context) error {
	// checked before any network call so a headless run fails with a clear
	// diagnostic instead of hanging on a prompt
	if !c.prompter.Interactive() {
		return fmt.Errorf("%w: an auth code must be typed in to finish the login", domain.ErrNoTerminal)
	}

	c.log.Info().Msg("requesting a two-factor auth code by email")
	res, err := c.http.PostJSON(ctx, "/api/accounts/send_auth_code", sendAuthCodeRequest{
		TwoFactorAuthMethod: "email",
	}, nil)
	if err != nil {
		return fmt.Errorf("send auth code: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("send auth code: status %d", res.StatusCode())
	}

	code, err := c.prompter.ReadLine("Enter auth code: ")
	if err != nil {
		return fmt.Errorf("read auth code: %w", err)
	}

	res, err = c.http.PostJSON(ctx, "/login/challenge", challengeRequest{
		AuthCode:            code,
		TwoFactorAuthMethod: "email",
	}, nil)
	if err != nil {
		return fmt.Errorf("submit auth code: %w", err)
	}
	if res.StatusCode() == http.StatusNotFound {
		return domain.ErrInvalidAuthCode
	}
	if res.IsError() {
		return fmt.Errorf("submit auth code: status %d", res.StatusCode())
	}

	return nil
}
