package zstd

import (
	"io"
	"sync/atomic"
)

// countingReader counts bytes consumed from the compressed file.
// The decoder may read from its own goroutine, so the count is atomic.
type countingReader struct {
	r io.Reader
	n atomic.Int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

func (c *countingReader) Count() int64 {
	return c.n.Load()
}
