// Package booking is the Doctolib API client: login with its optional
// two-factor challenge, catalog resolution and availability polling, all
// over the shared transport.
package booking

import (
	"github.com/rs/zerolog"

	"github.com/bnema/doctowatch/internal/adapters/transport"
	"github.com/bnema/doctowatch/internal/ports"
)

type Client struct {
	http     *transport.Client
	prompter ports.Prompter
	log      zerolog.Logger
}

var (
	_ ports.Authenticator      = (*Client)(nil)
	_ ports.Catalog            = (*Client)(nil)
	_ ports.AvailabilityPoller = (*Client)(nil)
)

func NewClient(http *transport.Client, prompter ports.Prompter, log zerolog.Logger) *Client {
	return &Client{http: http, prompter: prompter, log: log}
}
