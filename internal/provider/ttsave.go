package provider

import (
	"context"
	"fmt"
	"net/http"

	"mediarelay/internal/extract"
	"mediarelay/internal/media"
	"mediarelay/internal/upstream"
)

// TTSave implements VideoSource for the ttsave.app short-video front end.
type TTSave struct {
	client *upstream.Client
}

// NewTTSave creates a new TTSave provider.
func NewTTSave(client *upstream.Client) *TTSave {
	return &TTSave{client: client}
}

// lookupRequest is the JSON body the provider's download form posts.
type lookupRequest struct {
	Query      string `json:"query"`
	LanguageID string `json:"language_id"`
}

// Lookup posts pageURL to the provider and extracts the links from the
// returned HTML. A non-2xx answer is media.ErrUpstreamUnavailable and no
// parsing is attempted.
func (t *TTSave) Lookup(ctx context.Context, pageURL string) (*media.ExtractionResult, error) {
	resp, err := t.client.Fetch(ctx, upstream.Request{
		Provider: media.ShortVideo,
		Method:   http.MethodPost,
		Path:     "/download",
		JSON:     lookupRequest{Query: pageURL, LanguageID: "1"},
		Expect:   upstream.HTMLPayload,
	})
	if err != nil {
		return nil, fmt.Errorf("looking up %q: %w", pageURL, err)
	}

	return extract.Extract(resp.Text()), nil
}
