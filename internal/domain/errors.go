package domain

import "errors"

var (
	// ErrBotBlocked means the pre-login page was served a bot-mitigation
	// challenge. Retrying from the same network will not help; a human has
	// to defeat the challenge out of band.
	ErrBotBlocked = errors.New("request blocked by the site's bot mitigation")
	// ErrUpstreamUnavailable is the site's CDN failing to reach its own
	// backend. Safe to retry by re-invoking the program later.
	ErrUpstreamUnavailable = errors.New("upstream server is unreachable, retry later")

	ErrLoginRejected   = errors.New("wrong login or password")
	ErrNoTerminal      = errors.New("interactive terminal required but not available")
	ErrInvalidAuthCode = errors.New("invalid auth code")
	ErrNoMotives       = errors.New("doctor does not offer any consultation at the moment")
	ErrUnknownMotive   = errors.New("consultation motive is not offered by this doctor")
	ErrNoPatients      = errors.New("no patient is registered on this account")
)
