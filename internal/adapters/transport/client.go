// Package transport owns the HTTP client every booking call goes through.
// It presents a consistent, browser-looking fingerprint to the server,
// tracks the effective URL after redirects, and can capture raw exchanges
// for diagnostics.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/bnema/doctowatch/internal/domain"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/89.0.4389.114 Safari/537.36"

const defaultTimeout = 30 * time.Second

// ErrAsyncUnsupported rejects any attempt to configure a non-blocking
// client. Everything here is strictly synchronous.
var ErrAsyncUnsupported = errors.New("async requests are not supported")

type Options struct {
	BaseURL string
	Logger  zerolog.Logger
	// CaptureDir, when set, receives one file per HTTP exchange.
	CaptureDir string
	// Async must be false; see ErrAsyncUnsupported.
	Async   bool
	Timeout time.Duration
}

type Client struct {
	http    *resty.Client
	baseURL *url.URL
	jar     *cookiejar.Jar
	log     zerolog.Logger

	// lastURL is the effective URL of the most recent response, after the
	// server's redirects. Single request in flight at a time, so a plain
	// field suffices.
	lastURL string
}

func New(opts Options) (*Client, error) {
	if opts.Async {
		return nil, ErrAsyncUnsupported
	}
	if opts.BaseURL == "" {
		return nil, errors.New("transport: base url is required")
	}

	baseURL, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", userAgent)
	client.SetHeader("sec-fetch-dest", "document")
	client.SetHeader("sec-fetch-mode", "navigate")
	client.SetHeader("sec-fetch-site", "same-origin")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseURL.Hostname()))
	client.SetTimeout(timeout)

	c := &Client{
		http:    client,
		baseURL: baseURL,
		jar:     jar,
		log:     opts.Logger,
	}

	client.OnBeforeRequest(c.logRequest)
	client.OnAfterResponse(c.recordEffectiveURL)
	client.OnError(c.logFailure)

	if opts.CaptureDir != "" {
		capture, err := newFilesystemCapture(opts.CaptureDir, opts.Logger)
		if err != nil {
			return nil, err
		}
		client.OnAfterResponse(capture.record)
	}

	return c, nil
}

func (c *Client) Get(ctx context.Context, path string) (*resty.Response, error) {
	return c.http.R().SetContext(ctx).Get(path)
}

// GetJSON issues a GET and, on a 2xx response, decodes the JSON body into
// out. Non-2xx responses are returned undecoded for the caller to interpret.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if out != nil {
		req.SetResult(out)
		req.ForceContentType("application/json")
	}
	return req.Get(path)
}

func (c *Client) PostJSON(ctx context.Context, path string, body any, out any) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx).SetBody(body)
	req.SetHeader("content-type", "application/json")
	if out != nil {
		req.SetResult(out)
		req.ForceContentType("application/json")
	}
	return req.Post(path)
}

// LastURL is the normalized effective URL of the latest response.
func (c *Client) LastURL() string {
	return c.lastURL
}

// ImportState seeds the cookie jar and last-URL marker from a previous run.
func (c *Client) ImportState(state domain.SessionState) {
	if state.LastURL != "" {
		c.lastURL = state.LastURL
	}

	cookies := make([]*http.Cookie, 0, len(state.Cookies))
	for name, value := range state.Cookies {
		cookies = append(cookies, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	c.jar.SetCookies(c.baseURL, cookies)
}

// ExportState snapshots the cookie jar for persistence. Partial session
// data is still worth keeping, so this never fails.
func (c *Client) ExportState() domain.SessionState {
	state := domain.NewSessionState()
	state.LastURL = c.lastURL
	for _, cookie := range c.jar.Cookies(c.baseURL) {
		state.Cookies[cookie.Name] = cookie.Value
	}
	return state
}

func (c *Client) logRequest(_ *resty.Client, req *resty.Request) error {
	c.log.Debug().Str("method", req.Method).Str("url", req.URL).Msg("http request")
	return nil
}

func (c *Client) recordEffectiveURL(_ *resty.Client, res *resty.Response) error {
	c.lastURL = res.Request.URL
	if raw := res.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		c.lastURL = raw.Request.URL.String()
	}

	c.log.Debug().
		Str("method", res.Request.Method).
		Str("url", c.lastURL).
		Int("status", res.StatusCode()).
		Msg("http response")
	return nil
}

func (c *Client) logFailure(req *resty.Request, err error) {
	c.log.Error().Str("method", req.Method).Str("url", req.URL).Err(err).Msg("http request failed")
}
