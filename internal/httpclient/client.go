// Package httpclient provides the HTTP client used by the GraphIO transport.
//
// The client carries a connect/read timeout pair: the connect timeout bounds
// dialing so a dead server fails fast, the read timeout bounds the whole
// request.
package httpclient

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/graphio/graphio-go/errors"
)

// Client wraps http.Client with separate connect and read timeouts
type Client struct {
	*http.Client
	connectTimeout time.Duration
	readTimeout    time.Duration
}

// New creates a client with the given connect/read timeout pair.
// Non-positive values fall back to 5s connect and 30s read.
func New(connectTimeout, readTimeout time.Duration) *Client {
	if connectTimeout <= 0 {
		connectTimeout = 5 * time.Second
	}
	if readTimeout <= 0 {
		readTimeout = 30 * time.Second
	}

	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}

	return &Client{
		Client: &http.Client{
			Timeout: readTimeout,
			Transport: &http.Transport{
				DialContext:           dialer.DialContext,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		connectTimeout: connectTimeout,
		readTimeout:    readTimeout,
	}
}

// Wrap wraps an existing http.Client, keeping the pair for error messages.
// Used by tests that need an httptest server's client.
func Wrap(client *http.Client, connectTimeout, readTimeout time.Duration) *Client {
	return &Client{
		Client:         client,
		connectTimeout: connectTimeout,
		readTimeout:    readTimeout,
	}
}

// ConnectTimeout returns the configured dial timeout
func (c *Client) ConnectTimeout() time.Duration { return c.connectTimeout }

// ReadTimeout returns the configured request timeout
func (c *Client) ReadTimeout() time.Duration { return c.readTimeout }

// FormatTimeouts renders the pair for diagnostics, e.g. "connect=5s, read=30s"
func (c *Client) FormatTimeouts() string {
	return "connect=" + c.connectTimeout.String() + ", read=" + c.readTimeout.String()
}

// IsTimeout reports whether err is any flavor of request timeout
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
