package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"mediarelay/internal/httputil"
	"mediarelay/internal/media"
)

// maxPayload bounds how much of a JSON or HTML response is read into memory.
const maxPayload = 10 * 1024 * 1024

// PayloadKind tells Fetch how the caller wants the response body delivered.
// The caller decides it from the provider and route, never from the response.
type PayloadKind int

const (
	JSONPayload  PayloadKind = iota // read fully, decode with DecodeJSON
	HTMLPayload                     // read fully, use Text
	BinaryStream                    // left open in Body for the relay
)

// Request describes one upstream call.
type Request struct {
	Provider media.Provider
	Method   string
	// URL is an absolute target. When empty, Path is resolved against the
	// provider's base URL.
	URL    string
	Path   string
	Query  url.Values
	JSON   any
	Expect PayloadKind
}

// Response is the tagged result of an upstream call. Data is set for
// JSONPayload and HTMLPayload; Body is set for BinaryStream and must be
// closed by whoever consumes it.
type Response struct {
	StatusCode int
	Header     http.Header
	Kind       PayloadKind
	Data       []byte
	Body       io.ReadCloser
}

// Text returns a buffered payload as a string.
func (r *Response) Text() string {
	return string(r.Data)
}

// DecodeJSON unmarshals a buffered payload into v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decoding provider response: %w", err)
	}
	return nil
}

// Close releases the stream of a BinaryStream response. It is a no-op for
// buffered payloads.
func (r *Response) Close() error {
	if r.Body == nil {
		return nil
	}
	return r.Body.Close()
}

// StatusError reports a non-2xx answer from a provider.
type StatusError struct {
	Provider   media.Provider
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s provider returned status %d for %s", e.Provider, e.StatusCode, e.URL)
}

// Unwrap classifies every StatusError as an unavailable upstream.
func (e *StatusError) Unwrap() error {
	return media.ErrUpstreamUnavailable
}

// Client issues requests to the providers. It shares one transport across
// all callers and holds no per-request state.
type Client struct {
	profiles *Profiles
	factory  httputil.DoerFactory
	doer     httputil.Doer
}

// New creates a Client. factory builds the underlying Doers; the sessionless
// one is created here and reused.
func New(profiles *Profiles, factory httputil.DoerFactory) (*Client, error) {
	doer, err := factory(false)
	if err != nil {
		return nil, fmt.Errorf("creating upstream doer: %w", err)
	}
	return &Client{profiles: profiles, factory: factory, doer: doer}, nil
}

// Fetch issues a standalone request with no cookie state.
func (c *Client) Fetch(ctx context.Context, r Request) (*Response, error) {
	return c.do(ctx, c.doer, r)
}

// Stream opens target as a BinaryStream, choosing the header profile from
// the URL itself.
func (c *Client) Stream(ctx context.Context, target string) (*Response, error) {
	if err := httputil.ValidateURL(target); err != nil {
		return nil, fmt.Errorf("%w: invalid url: %v", media.ErrBadRequest, err)
	}
	p := c.profiles.ForURL(target)
	return c.Fetch(ctx, Request{
		Provider: p.Provider,
		Method:   http.MethodGet,
		URL:      target,
		Expect:   BinaryStream,
	})
}

// NewSession starts one logical transaction whose requests share cookies.
func (c *Client) NewSession() (*Session, error) {
	doer, err := c.factory(true)
	if err != nil {
		return nil, fmt.Errorf("creating upstream session: %w", err)
	}
	return &Session{client: c, doer: doer}, nil
}

func (c *Client) do(ctx context.Context, doer httputil.Doer, r Request) (*Response, error) {
	profile := c.profiles.Get(r.Provider)

	target := r.URL
	if target == "" {
		target = httputil.BuildURL(profile.BaseURL, r.Path, r.Query)
	} else if len(r.Query) > 0 {
		u, err := url.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("parsing target: %w", err)
		}
		q := u.Query()
		for k, vs := range r.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
		target = u.String()
	}

	var body io.Reader
	if r.JSON != nil {
		data, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	profile.Apply(req.Header)
	if r.JSON != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := logrus.WithFields(logrus.Fields{
		"provider": r.Provider.String(),
		"method":   method,
		"url":      target,
	})
	log.Debug("upstream request")

	resp, err := doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s provider failed: %w", r.Provider, err)
	}
	log.WithField("status", resp.StatusCode).Debug("upstream response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		resp.Body.Close()
		return nil, &StatusError{Provider: r.Provider, StatusCode: resp.StatusCode, URL: target}
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Kind:       r.Expect,
	}

	if r.Expect == BinaryStream {
		out.Body = resp.Body
		return out, nil
	}

	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", r.Provider, err)
	}
	out.Data = data
	return out, nil
}
