// Package upstream is the outbound client for the two media providers. Each
// request carries the provider's browser-like header profile.
package upstream

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"mediarelay/internal/media"
)

// Profile is the immutable request identity used for one provider.
type Profile struct {
	Provider  media.Provider
	Authority string // host[:port] of BaseURL
	BaseURL   string
	headers   http.Header
}

// Apply copies the profile headers onto h.
func (p Profile) Apply(h http.Header) {
	for k, vs := range p.headers {
		h[k] = append([]string(nil), vs...)
	}
}

// Header returns a single profile header value.
func (p Profile) Header(key string) string {
	return p.headers.Get(key)
}

// Profiles is the read-only profile table built at startup. It holds no
// mutable state after construction and is safe for concurrent use.
type Profiles struct {
	byProvider map[media.Provider]Profile
}

// NewProfiles builds the table for the short-video and music providers
// rooted at the given base URLs.
func NewProfiles(shortVideoBase, musicBase string) (*Profiles, error) {
	sv, err := newProfile(media.ShortVideo, shortVideoBase, map[string]string{
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "id-ID,id;q=0.9,en-US;q=0.8,en;q=0.7",
		"Content-Type":    "application/json",
		"User-Agent":      "Mozilla/5.0 (Linux; Android 10; K) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/132.0.0.0 Mobile Safari/537.36",
	}, "/en", true)
	if err != nil {
		return nil, fmt.Errorf("short-video profile: %w", err)
	}

	mm, err := newProfile(media.MusicMeta, musicBase, map[string]string{
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "id-ID,id;q=0.9,en-US;q=0.8,en;q=0.7",
		"User-Agent":      "Mozilla/5.0 (Linux; Android 10; K) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Mobile Safari/537.36",
	}, "/search", false)
	if err != nil {
		return nil, fmt.Errorf("music profile: %w", err)
	}

	return &Profiles{byProvider: map[media.Provider]Profile{
		media.ShortVideo: sv,
		media.MusicMeta:  mm,
	}}, nil
}

func newProfile(p media.Provider, base string, fixed map[string]string, refererPath string, withOrigin bool) (Profile, error) {
	u, err := url.Parse(base)
	if err != nil {
		return Profile{}, fmt.Errorf("parsing base %q: %w", base, err)
	}
	if u.Host == "" {
		return Profile{}, fmt.Errorf("base %q has no host", base)
	}
	origin := u.Scheme + "://" + u.Host

	h := make(http.Header, len(fixed)+2)
	for k, v := range fixed {
		h.Set(k, v)
	}
	h.Set("Referer", origin+refererPath)
	if withOrigin {
		h.Set("Origin", origin)
	}

	return Profile{
		Provider:  p,
		Authority: u.Host,
		BaseURL:   strings.TrimRight(base, "/"),
		headers:   h,
	}, nil
}

// Get returns the profile for p.
func (ps *Profiles) Get(p media.Provider) Profile {
	return ps.byProvider[p]
}

// ForURL picks a profile for an arbitrary media URL. Anything mentioning
// "tiktok", "ttsave", or the short-video host gets the short-video profile;
// everything else gets the music profile.
func (ps *Profiles) ForURL(target string) Profile {
	sv := ps.byProvider[media.ShortVideo]
	lower := strings.ToLower(target)
	if strings.Contains(lower, "tiktok") || strings.Contains(lower, "ttsave") {
		return sv
	}
	if u, err := url.Parse(target); err == nil && strings.EqualFold(u.Host, sv.Authority) {
		return sv
	}
	return ps.byProvider[media.MusicMeta]
}
