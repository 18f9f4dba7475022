package upstream

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"mediarelay/internal/httputil"
)

// Session groups the requests of one logical provider transaction so they
// share cookies and other server-issued state. Create one per transaction
// with Client.NewSession and drop it when the transaction ends.
type Session struct {
	client *Client
	doer   httputil.Doer
}

// Prepare issues a request whose only purpose is its side effect on the
// provider (cookies, tokens). The body is drained and discarded. A non-2xx
// status is logged but not fatal; transport failures are.
func (s *Session) Prepare(ctx context.Context, r Request) error {
	r.Expect = HTMLPayload
	_, err := s.client.do(ctx, s.doer, r)
	if err == nil {
		return nil
	}
	var se *StatusError
	if errors.As(err, &se) {
		logrus.WithFields(logrus.Fields{
			"provider": se.Provider.String(),
			"status":   se.StatusCode,
		}).Debug("prepare call answered non-2xx, continuing")
		return nil
	}
	return fmt.Errorf("prepare: %w", err)
}

// Fetch issues a request within the session.
func (s *Session) Fetch(ctx context.Context, r Request) (*Response, error) {
	return s.client.do(ctx, s.doer, r)
}
