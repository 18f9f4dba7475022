// Package media defines shared types for the mediarelay proxy.
package media

import "encoding/json"

// Provider identifies one of the upstream services the proxy talks to.
type Provider int

const (
	ShortVideo Provider = iota // ttsave.app
	MusicMeta                  // spotdown.org
)

func (p Provider) String() string {
	switch p {
	case ShortVideo:
		return "short-video"
	case MusicMeta:
		return "music-meta"
	default:
		return "unknown"
	}
}

// Kind is the media classification of an extraction.
type Kind int

const (
	Unknown Kind = iota
	Video
	Slide
)

func (k Kind) String() string {
	switch k {
	case Video:
		return "video"
	case Slide:
		return "slide"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind as its lowercase name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// ExtractionResult is what the extractor recovers from a provider page.
// Optional links are pointers so they serialize as null when absent.
type ExtractionResult struct {
	Platform string   `json:"platform"`
	Type     Kind     `json:"type"`
	Video    *string  `json:"video"`
	Audio    *string  `json:"audio"`
	Slides   []string `json:"slides"`
	Cover    *string  `json:"cover"`
	Author   string   `json:"author"`
}

// HasSlide reports whether href is already in the slide list.
func (r *ExtractionResult) HasSlide(href string) bool {
	for _, s := range r.Slides {
		if s == href {
			return true
		}
	}
	return false
}

// TrackSummary is one search hit from the music provider.
type TrackSummary struct {
	Title       string          `json:"title"`
	Artist      string          `json:"artist"`
	Duration    json.RawMessage `json:"duration"` // provider sends either seconds or "m:ss"
	Thumbnail   string          `json:"thumbnail"`
	OriginalURL string          `json:"original_url"`
	DownloadURL string          `json:"download_url,omitempty"`
}
