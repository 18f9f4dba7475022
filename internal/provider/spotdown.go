package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"mediarelay/internal/media"
	"mediarelay/internal/upstream"
)

// SpotDown implements MusicSource for spotdown.org.
type SpotDown struct {
	client *upstream.Client
}

// NewSpotDown creates a new SpotDown provider.
func NewSpotDown(client *upstream.Client) *SpotDown {
	return &SpotDown{client: client}
}

// songDetails is the body of /api/song-details.
// {"songs":[{"title":"...","artist":"...","duration":"3:20","thumbnail":"...","url":"https://open.spotify.com/track/..."}]}
type songDetails struct {
	Songs []song `json:"songs"`
}

type song struct {
	Title     string          `json:"title"`
	Artist    string          `json:"artist"`
	Duration  json.RawMessage `json:"duration"`
	Thumbnail string          `json:"thumbnail"`
	URL       string          `json:"url"`
}

// Search looks up query on the provider.
func (s *SpotDown) Search(ctx context.Context, query string) ([]media.TrackSummary, error) {
	resp, err := s.client.Fetch(ctx, upstream.Request{
		Provider: media.MusicMeta,
		Method:   http.MethodGet,
		Path:     "/api/song-details",
		Query:    url.Values{"url": {query}},
		Expect:   upstream.JSONPayload,
	})
	if err != nil {
		return nil, fmt.Errorf("searching for %q: %w", query, err)
	}

	var details songDetails
	if err := resp.DecodeJSON(&details); err != nil {
		return nil, err
	}

	if len(details.Songs) == 0 {
		return nil, fmt.Errorf("no songs for %q: %w", query, media.ErrNotFound)
	}

	tracks := make([]media.TrackSummary, 0, len(details.Songs))
	for _, sg := range details.Songs {
		tracks = append(tracks, media.TrackSummary{
			Title:       sg.Title,
			Artist:      sg.Artist,
			Duration:    sg.Duration,
			Thumbnail:   sg.Thumbnail,
			OriginalURL: sg.URL,
		})
	}
	return tracks, nil
}

// Download runs the provider's two-step download in one session: a GET to
// check-direct-download primes server-side state, then a POST to download
// returns the audio. The second request only succeeds with the cookies set
// by the first, so both go through the same Session.
func (s *SpotDown) Download(ctx context.Context, trackURL string) (*upstream.Response, error) {
	session, err := s.client.NewSession()
	if err != nil {
		return nil, err
	}

	err = session.Prepare(ctx, upstream.Request{
		Provider: media.MusicMeta,
		Method:   http.MethodGet,
		Path:     "/api/check-direct-download",
		Query:    url.Values{"url": {trackURL}},
	})
	if err != nil {
		return nil, fmt.Errorf("preparing download of %q: %w", trackURL, err)
	}

	resp, err := session.Fetch(ctx, upstream.Request{
		Provider: media.MusicMeta,
		Method:   http.MethodPost,
		Path:     "/api/download",
		JSON:     map[string]string{"url": trackURL},
		Expect:   upstream.BinaryStream,
	})
	if err != nil {
		return nil, fmt.Errorf("downloading %q: %w", trackURL, err)
	}
	return resp, nil
}
