// Package fetch implements a generically typed HTTP GET wrapper: one
// request, a 2xx status check, and a JSON decode into the caller's
// target shape.
package fetch

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/calder-r/pollkit/pkg/token"
)

// Interface is the minimal client surface the typed API needs.
type Interface interface {
	// Do sends the HTTP request to the server.
	Do(req *http.Request) (*http.Response, error)
}

// Client is a thin wrapper around an *http.Client. It attaches an
// optional bearer token and a fresh X-Request-Id header to every
// request; everything else - redirects, pooling, timeouts - is
// whatever the underlying transport does by default.
type Client struct {
	HTTPClient *http.Client

	token token.Provider
}

type ClientOption func(c *Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.HTTPClient = hc
	}
}

// WithToken makes the client send "Authorization: Bearer <token>" on
// every request, re-reading the provider each time so rotating
// providers pick up new values.
func WithToken(tp token.Provider) ClientOption {
	return func(c *Client) {
		c.token = tp
	}
}

func NewClient(opt ...ClientOption) *Client {
	c := &Client{
		HTTPClient: http.DefaultClient,
	}
	for _, o := range opt {
		o(c)
	}
	return c
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.token != nil {
		if t := c.token.Token(); len(t) > 0 {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}
	if req.Header.Get("X-Request-Id") == "" {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}
	return c.HTTPClient.Do(req)
}
