// Package extract recovers media links from the short-video provider's
// result page. Parsing is DOM-based and never fails: anything it cannot make
// sense of simply contributes no links.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"mediarelay/internal/media"
)

const (
	// Platform is the tag reported on every extraction.
	Platform = "tiktok"

	// DefaultAuthor is used when the page has no <h2>.
	DefaultAuthor = "anonymous"
)

// Extract classifies every anchor in html and returns the result record.
//
// Anchors are visited in document order. An anchor is a video candidate if
// its markup contains "video_mp4" or its href contains both "nwm" and ".mp4";
// otherwise an href containing ".mp3" becomes the audio link (last wins);
// otherwise an href containing "slide", "image" or ".jpg" is a slide,
// deduplicated by exact string. The first video candidate is the primary
// video since the provider lists the no-watermark file first.
func Extract(html string) *media.ExtractionResult {
	result := &media.ExtractionResult{
		Platform: Platform,
		Type:     media.Unknown,
		Slides:   []string{},
		Author:   DefaultAuthor,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return result
	}

	if h2 := doc.Find("h2").First(); h2.Length() > 0 {
		if name := strings.TrimSpace(h2.Text()); name != "" {
			result.Author = name
		}
	}

	var videos []string
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		switch {
		case isVideo(s, href):
			videos = append(videos, href)
		case strings.Contains(href, ".mp3"):
			audio := href
			result.Audio = &audio
		case strings.Contains(href, "slide") || strings.Contains(href, "image") || strings.Contains(href, ".jpg"):
			if !result.HasSlide(href) {
				result.Slides = append(result.Slides, href)
			}
		}
	})

	switch {
	case len(videos) > 0:
		result.Video = &videos[0]
		result.Type = media.Video
	case len(result.Slides) > 0:
		result.Type = media.Slide
	}

	return result
}

func isVideo(s *goquery.Selection, href string) bool {
	if strings.Contains(href, "nwm") && strings.Contains(href, ".mp4") {
		return true
	}
	markup, err := goquery.OuterHtml(s)
	if err != nil {
		return false
	}
	return strings.Contains(markup, "video_mp4")
}
