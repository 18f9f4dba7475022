package httputil

import (
	"fmt"
	"io"
	"net/http"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// chromeHeaderOrder is the order Chrome emits these headers in; some
// providers fingerprint on it.
var chromeHeaderOrder = []string{
	"accept",
	"accept-language",
	"content-type",
	"origin",
	"referer",
	"cookie",
	"user-agent",
}

// BrowserDoer sends requests with a Chrome TLS fingerprint (JA3) via
// tls-client, translating to and from net/http types.
type BrowserDoer struct {
	client tls_client.HttpClient
}

// NewBrowserDoer creates a Doer that impersonates Chrome 131.
func NewBrowserDoer(cookies bool, timeoutSeconds int) (*BrowserDoer, error) {
	opts := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(timeoutSeconds),
		tls_client.WithClientProfile(profiles.Chrome_131),
	}
	if cookies {
		opts = append(opts, tls_client.WithCookieJar(tls_client.NewCookieJar()))
	}
	client, err := tls_client.NewHttpClient(nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("tls-client init: %w", err)
	}
	return &BrowserDoer{client: client}, nil
}

// BrowserFactory returns a DoerFactory producing BrowserDoers.
func BrowserFactory(timeoutSeconds int) DoerFactory {
	return func(cookies bool) (Doer, error) {
		return NewBrowserDoer(cookies, timeoutSeconds)
	}
}

// Do executes req with the Chrome fingerprint. The returned body is the
// live upstream stream; the caller closes it.
func (b *BrowserDoer) Do(req *http.Request) (*http.Response, error) {
	var body io.Reader
	if req.Body != nil && req.Body != http.NoBody {
		body = req.Body
	}
	freq, err := fhttp.NewRequestWithContext(req.Context(), req.Method, req.URL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	// fhttp cannot size a wrapped body and would send it chunked.
	freq.ContentLength = req.ContentLength
	freq.GetBody = req.GetBody
	freq.Header = fhttp.Header(req.Header.Clone())
	freq.Header[fhttp.HeaderOrderKey] = chromeHeaderOrder

	resp, err := b.client.Do(freq)
	if err != nil {
		return nil, fmt.Errorf("tls request: %w", err)
	}

	return &http.Response{
		Status:        resp.Status,
		StatusCode:    resp.StatusCode,
		Proto:         resp.Proto,
		ProtoMajor:    resp.ProtoMajor,
		ProtoMinor:    resp.ProtoMinor,
		Header:        http.Header(resp.Header),
		Body:          resp.Body,
		ContentLength: resp.ContentLength,
		Request:       req,
	}, nil
}
