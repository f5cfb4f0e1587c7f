package riff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Chunk is one tagged region of the container: an 8-byte header (tag +
// little-endian length), the payload, and a single zero pad byte when the
// payload length is odd. A chunk is either read from an existing stream or
// written to a new one; the two modes never mix on one chunk.
//
// In read mode the length is fixed by the header and every read is bounded
// to the payload window. In write mode the header is written with a zero
// placeholder length and the true length is backpatched on Close.
type Chunk struct {
	r io.ReadSeeker
	w io.WriteSeeker

	// parent is notified when this chunk opens and closes so the parent
	// can track its single-active-child invariant. Never owned.
	parent *List

	tag    FourCC
	offset int64 // absolute position of the tag, always even
	length uint32
	pos    int64 // absolute cursor position within the stream

	writeMode bool
	open      bool
}

// readChunk constructs a chunk from an 8-byte header at the given absolute
// offset of an existing stream. The payload is not read eagerly.
func readChunk(r io.ReadSeeker, parent *List, offset int64) (*Chunk, error) {
	if offset&1 == 1 {
		return nil, fmt.Errorf("%w: chunk header at odd offset %d", ErrMalformed, offset)
	}
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("error seeking to chunk at offset %d: %w", offset, err)
	}

	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: truncated chunk header at offset %d", ErrMalformed, offset)
		}
		return nil, fmt.Errorf("error reading chunk header at offset %d: %w", offset, err)
	}

	c := &Chunk{
		r:      r,
		parent: parent,
		offset: offset,
		length: binary.LittleEndian.Uint32(header[4:8]),
		pos:    offset + headerSize,
		open:   true,
	}
	copy(c.tag[:], header[0:4])
	if parent != nil {
		parent.capture()
	}
	return c, nil
}

// newChunk starts a chunk at the stream's current append position by
// emitting the tag and a zero placeholder length.
func newChunk(w io.WriteSeeker, parent *List, tag FourCC) (*Chunk, error) {
	offset, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("error locating append position: %w", err)
	}
	if offset&1 == 1 {
		// The engine pads every closed chunk, so an odd append position
		// means internal state is corrupt, not caller error.
		panic(fmt.Sprintf("riff: write cursor at odd offset %d", offset))
	}

	var header [headerSize]byte
	copy(header[0:4], tag[:])
	if _, err := w.Write(header[:]); err != nil {
		return nil, fmt.Errorf("error writing header for chunk %q: %w", tag, err)
	}

	c := &Chunk{
		w:         w,
		parent:    parent,
		tag:       tag,
		offset:    offset,
		pos:       offset + headerSize,
		writeMode: true,
		open:      true,
	}
	if parent != nil {
		parent.capture()
	}
	return c, nil
}

// Tag returns the chunk's 4-byte tag.
func (c *Chunk) Tag() FourCC { return c.tag }

// Offset returns the absolute byte position of the chunk header.
func (c *Chunk) Offset() int64 { return c.offset }

// Length returns the payload byte count, excluding header and pad byte.
// In write mode it is zero until the chunk is closed.
func (c *Chunk) Length() uint32 { return c.length }

// IsOpen reports whether the chunk is still open.
func (c *Chunk) IsOpen() bool { return c.open }

// IsWriteMode reports whether the chunk was created for writing.
func (c *Chunk) IsWriteMode() bool { return c.writeMode }

// Remaining returns the number of unread payload bytes. Zero in write mode,
// where no bound exists until Close.
func (c *Chunk) Remaining() int64 {
	if c.writeMode {
		return 0
	}
	return c.dataEnd() - c.pos
}

func (c *Chunk) dataOffset() int64 { return c.offset + headerSize }
func (c *Chunk) dataEnd() int64    { return c.dataOffset() + int64(c.length) }

// ReadBytes reads exactly n payload bytes at the current cursor. The whole
// span must lie inside the payload window; reads never cross the chunk
// boundary even if the stream has more bytes.
func (c *Chunk) ReadBytes(n int) ([]byte, error) {
	if err := c.checkRead(int64(n)); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(c.r, buf)
	c.pos += int64(read)
	if err != nil {
		return nil, fmt.Errorf("error reading %d bytes from chunk %q: %w", n, c.tag, err)
	}
	return buf, nil
}

// WriteBytes appends raw bytes to the chunk payload.
func (c *Chunk) WriteBytes(p []byte) error {
	if err := c.checkWrite(); err != nil {
		return err
	}
	n, err := c.w.Write(p)
	c.pos += int64(n)
	if err != nil {
		return fmt.Errorf("error writing %d bytes to chunk %q: %w", len(p), c.tag, err)
	}
	return nil
}

func (c *Chunk) checkRead(n int64) error {
	if !c.open {
		return fmt.Errorf("chunk %q: %w", c.tag, ErrClosedChunk)
	}
	if c.writeMode {
		return fmt.Errorf("chunk %q: %w", c.tag, ErrWriteOnlyChunk)
	}
	if n < 0 || c.pos < c.dataOffset() {
		return fmt.Errorf("chunk %q: %w", c.tag, ErrOutOfRange)
	}
	if c.pos+n > c.dataEnd() {
		return fmt.Errorf("chunk %q: %d bytes requested, %d remaining: %w",
			c.tag, n, c.dataEnd()-c.pos, ErrEndOfChunk)
	}
	return nil
}

func (c *Chunk) checkWrite() error {
	if !c.open {
		return fmt.Errorf("chunk %q: %w", c.tag, ErrClosedChunk)
	}
	if !c.writeMode {
		return fmt.Errorf("chunk %q: %w", c.tag, ErrReadOnlyChunk)
	}
	return nil
}

// Close finishes the chunk. Closing twice is a no-op.
//
// In write mode the payload length is derived from how far the cursor
// advanced, the placeholder in the header is backpatched, and a zero pad
// byte is emitted when the length is odd so the next sibling starts at an
// even offset. In read mode only the parent bookkeeping is released.
func (c *Chunk) Close() error {
	if !c.open {
		return nil
	}
	if c.writeMode {
		if err := c.backpatch(); err != nil {
			return err
		}
	}
	c.open = false
	if c.parent != nil {
		c.parent.release()
	}
	return nil
}

func (c *Chunk) backpatch() error {
	// The stream cursor, not c.pos, is authoritative here: children of a
	// list chunk advance the shared stream without touching the parent.
	pos, err := c.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("error locating end of chunk %q: %w", c.tag, err)
	}
	size := pos - c.dataOffset()
	if size > math.MaxUint32 {
		return fmt.Errorf("chunk %q is %d bytes: %w", c.tag, size, ErrChunkTooLarge)
	}
	c.length = uint32(size)

	if _, err := c.w.Seek(c.offset+4, io.SeekStart); err != nil {
		return fmt.Errorf("error seeking to length field of chunk %q: %w", c.tag, err)
	}
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], c.length)
	if _, err := c.w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("error backpatching length of chunk %q: %w", c.tag, err)
	}
	if _, err := c.w.Seek(c.dataEnd(), io.SeekStart); err != nil {
		return fmt.Errorf("error restoring position after chunk %q: %w", c.tag, err)
	}
	c.pos = c.dataEnd()

	if c.length&1 == 1 {
		if _, err := c.w.Write([]byte{0}); err != nil {
			return fmt.Errorf("error writing pad byte for chunk %q: %w", c.tag, err)
		}
		c.pos++
	}
	return nil
}

// AsList reinterprets an open read-mode chunk tagged "RIFF" or "LIST" as a
// list. The chunk's identity is consumed by the returned list; there is no
// second independent view over the same bytes.
func (c *Chunk) AsList() (*List, error) {
	if !c.open {
		return nil, fmt.Errorf("chunk %q: %w", c.tag, ErrClosedChunk)
	}
	if c.writeMode {
		return nil, fmt.Errorf("chunk %q: %w", c.tag, ErrWriteOnlyChunk)
	}
	if c.tag != TagRIFF && c.tag != TagLIST {
		return nil, fmt.Errorf("chunk %q is not a list chunk: %w", c.tag, ErrUnexpectedTag)
	}
	return newListReader(c, c.tag)
}
