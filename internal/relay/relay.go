package relay

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"mediarelay/internal/media"
)

// Stream is one in-flight relay. It owns Body from creation until Serve
// returns, and Serve closes it on every path.
type Stream struct {
	Body        io.ReadCloser
	ContentType string
	FileName    string
	NoCache     bool
}

// ContentDisposition returns the attachment header value for FileName.
func (s *Stream) ContentDisposition() string {
	return fmt.Sprintf(`attachment; filename="%s"`, s.FileName)
}

// Serve sends the response headers and then copies Body to w chunk by chunk,
// flushing after each one. It returns the number of body bytes written.
//
// Headers are committed before the first read, so a failure part-way
// through cannot change the status; the error (wrapping
// media.ErrStreamingFailure) is for the caller to log.
func (s *Stream) Serve(w http.ResponseWriter) (written int64, err error) {
	defer s.Body.Close()

	h := w.Header()
	h.Set("Content-Type", s.ContentType)
	h.Set("Content-Disposition", s.ContentDisposition())
	if s.NoCache {
		h.Set("Cache-Control", "no-cache")
	}
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	chunks := NewChunker(s.Body, ChunkSize)
	for {
		chunk, rerr := chunks.Next()
		if len(chunk) > 0 {
			n, werr := w.Write(chunk)
			written += int64(n)
			if werr != nil {
				return written, fmt.Errorf("%w: writing to client: %w", media.ErrStreamingFailure, werr)
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if errors.Is(rerr, io.EOF) {
			return written, nil
		}
		if rerr != nil {
			return written, fmt.Errorf("%w: reading upstream: %w", media.ErrStreamingFailure, rerr)
		}
	}
}

// Relay streams body to w under the given content type and file name.
func Relay(w http.ResponseWriter, body io.ReadCloser, contentType, fileName string) (int64, error) {
	s := &Stream{Body: body, ContentType: contentType, FileName: fileName}
	return s.Serve(w)
}
