// Package relay copies an upstream media stream to a client response in
// fixed-size chunks without buffering the payload.
package relay

import (
	"io"
)

// ChunkSize is the read size used for every relay.
const ChunkSize = 4096

// Chunker is a pull-based iterator over a reader. Each call to Next returns
// the next non-empty chunk; empty reads are skipped and never end the stream.
type Chunker struct {
	r   io.Reader
	buf []byte
	err error
}

// NewChunker returns a Chunker reading at most size bytes per chunk.
func NewChunker(r io.Reader, size int) *Chunker {
	if size <= 0 {
		size = ChunkSize
	}
	return &Chunker{r: r, buf: make([]byte, size)}
}

// Next returns the next chunk. The slice is only valid until the following
// call. At the end of the stream it returns io.EOF; any other error is the
// reader's own.
func (c *Chunker) Next() ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	for {
		n, err := c.r.Read(c.buf)
		if err != nil {
			// Hold the error until the data read alongside it is consumed.
			c.err = err
		}
		if n > 0 {
			return c.buf[:n], nil
		}
		if err != nil {
			return nil, err
		}
	}
}
