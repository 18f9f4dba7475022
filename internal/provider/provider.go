// Package provider implements the two upstream media sources on top of the
// upstream client: a short-video lookup and a music search/download service.
package provider

import (
	"context"

	"mediarelay/internal/media"
	"mediarelay/internal/upstream"
)

// VideoSource resolves a short-video page URL into its media links.
type VideoSource interface {
	Lookup(ctx context.Context, pageURL string) (*media.ExtractionResult, error)
}

// MusicSource searches tracks and opens audio downloads.
type MusicSource interface {
	// Search returns the provider's hits for query. An empty result is
	// reported as media.ErrNotFound.
	Search(ctx context.Context, query string) ([]media.TrackSummary, error)

	// Download returns the open audio stream for a track URL. The caller
	// owns and must close the response.
	Download(ctx context.Context, trackURL string) (*upstream.Response, error)
}
