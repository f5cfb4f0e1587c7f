package riff

import (
	"fmt"
	"io"
)

// Body is a byte-stream cursor over a chunk's payload. It implements
// io.Reader, io.Writer and io.Seeker with conventional semantics — reads
// clamp to the payload window and return io.EOF at its end — while the
// typed operations on Chunk itself fail hard on any boundary violation.
//
// The cursor is shared with the chunk: reading through the body advances
// the same position the chunk's typed reads use.
type Body struct {
	c *Chunk
}

// Body returns a stream cursor over the chunk's payload.
func (c *Chunk) Body() *Body { return &Body{c: c} }

// Read implements io.Reader. Short reads occur at the payload boundary and
// the end of the payload reads as io.EOF, never as bytes of a sibling.
func (b *Body) Read(p []byte) (int, error) {
	c := b.c
	if !c.open {
		return 0, fmt.Errorf("chunk %q: %w", c.tag, ErrClosedChunk)
	}
	if c.writeMode {
		return 0, fmt.Errorf("chunk %q: %w", c.tag, ErrWriteOnlyChunk)
	}
	remaining := c.dataEnd() - c.pos
	if remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := c.r.Read(p)
	c.pos += int64(n)
	return n, err
}

// Write implements io.Writer, appending to the chunk payload.
func (b *Body) Write(p []byte) (int, error) {
	c := b.c
	if err := c.checkWrite(); err != nil {
		return 0, err
	}
	n, err := c.w.Write(p)
	c.pos += int64(n)
	if err != nil {
		return n, fmt.Errorf("error writing to chunk %q: %w", c.tag, err)
	}
	return n, nil
}

// Seek implements io.Seeker over the payload window; offsets are relative
// to the start of the payload. A relative seek (io.SeekCurrent) is clamped
// to the window; absolute seeks outside it are refused. Read mode only.
func (b *Body) Seek(offset int64, whence int) (int64, error) {
	c := b.c
	if !c.open {
		return 0, fmt.Errorf("chunk %q: %w", c.tag, ErrClosedChunk)
	}
	if c.writeMode {
		return 0, fmt.Errorf("chunk %q: %w", c.tag, ErrWriteOnlyChunk)
	}

	start, end := c.dataOffset(), c.dataEnd()
	var target int64
	switch whence {
	case io.SeekStart:
		target = start + offset
	case io.SeekCurrent:
		target = c.pos + offset
		if target < start {
			target = start
		}
		if target > end {
			target = end
		}
	case io.SeekEnd:
		target = end + offset
	default:
		return 0, fmt.Errorf("chunk %q: invalid seek whence %d", c.tag, whence)
	}

	if target < start {
		return c.pos - start, fmt.Errorf("chunk %q: %w", c.tag, ErrOutOfRange)
	}
	if target > end {
		return c.pos - start, fmt.Errorf("chunk %q: %w", c.tag, ErrEndOfChunk)
	}
	if _, err := c.r.Seek(target, io.SeekStart); err != nil {
		return c.pos - start, fmt.Errorf("error seeking in chunk %q: %w", c.tag, err)
	}
	c.pos = target
	return target - start, nil
}
