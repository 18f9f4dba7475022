// Package httputil provides the outbound HTTP transports and input
// sanitization utilities.
package httputil

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFactory builds a Doer. With cookies set the Doer owns a fresh cookie
// jar, so requests made through it share upstream session state.
type DoerFactory func(cookies bool) (Doer, error)

// NewTransport creates the shared connection pool used for every upstream
// call. It is safe for concurrent use.
func NewTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   15 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
	}
}

// NewClient creates an HTTP client over transport. Timeout zero means no
// overall deadline, which streamed downloads need.
func NewClient(transport http.RoundTripper, jar http.CookieJar, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		Jar:       jar,
	}
}

// StdFactory returns a DoerFactory producing net/http clients that share
// transport.
func StdFactory(transport http.RoundTripper, timeout time.Duration) DoerFactory {
	return func(cookies bool) (Doer, error) {
		var jar http.CookieJar
		if cookies {
			j, err := cookiejar.New(nil)
			if err != nil {
				return nil, fmt.Errorf("creating cookie jar: %w", err)
			}
			jar = j
		}
		return NewClient(transport, jar, timeout), nil
	}
}
