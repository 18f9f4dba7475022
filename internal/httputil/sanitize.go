package httputil

import (
	"fmt"
	"net/url"
	"strings"
)

// reservedChars are stripped from file names; they are reserved on at least
// one common filesystem.
var reservedChars = strings.NewReplacer(
	"\\", "",
	"/", "",
	"*", "",
	"?", "",
	":", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// ValidateURL checks that a URL is well-formed, absolute, and uses HTTP(S).
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("only HTTP(S) URLs are allowed, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// SanitizeFilename removes every \ / * ? : " < > | from name.
// Everything else, including the empty string, passes through unchanged.
func SanitizeFilename(name string) string {
	return reservedChars.Replace(name)
}

// TruncateFilename limits name to max runes. A max of zero or less disables
// truncation.
func TruncateFilename(name string, max int) string {
	if max <= 0 {
		return name
	}
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max])
}

// SafeFilename sanitizes name and then truncates it to max runes.
func SafeFilename(name string, max int) string {
	return TruncateFilename(SanitizeFilename(name), max)
}

// BuildURL constructs a URL from base and a path, appending query when non-empty.
func BuildURL(base, path string, query url.Values) string {
	u := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
