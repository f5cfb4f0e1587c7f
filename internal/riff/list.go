package riff

import (
	"errors"
	"fmt"
	"io"
)

// List is a chunk tagged "RIFF" or "LIST" whose payload starts with a
// 4-byte list-type tag followed by child chunks. A list materializes its
// children lazily, one at a time, and enforces that at most one child chunk
// or child enumeration is active at any moment.
type List struct {
	chunk    *Chunk
	listType FourCC

	// busy counts the open child chunks and active scanners. Child
	// creation, scanning and Close are refused while it is non-zero.
	busy int
}

// newListReader wraps an already-read chunk as a list, checking the
// container tag and consuming the list-type tag from the payload.
func newListReader(c *Chunk, want FourCC) (*List, error) {
	if c.tag != want {
		return nil, fmt.Errorf("list chunk tagged %q, want %q: %w", c.tag, want, ErrUnexpectedTag)
	}
	l := &List{chunk: c}
	// The list type is the first 4 payload bytes, wherever the cursor is.
	if _, err := c.Body().Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	listType, err := c.ReadTag()
	if err != nil {
		if errors.Is(err, ErrEndOfChunk) {
			return nil, fmt.Errorf("%w: list %q payload too short for list type", ErrMalformed, c.tag)
		}
		return nil, err
	}
	l.listType = listType
	return l, nil
}

// newListWriter starts a list chunk and emits its list-type tag right after
// the provisional header.
func newListWriter(c *Chunk, listType FourCC) (*List, error) {
	l := &List{chunk: c, listType: listType}
	if err := c.WriteTag(listType); err != nil {
		return nil, err
	}
	return l, nil
}

// Tag returns the container tag, "RIFF" or "LIST".
func (l *List) Tag() FourCC { return l.chunk.Tag() }

// ListType returns the secondary 4-byte list-type tag, e.g. "WAVE".
func (l *List) ListType() FourCC { return l.listType }

// Offset returns the absolute byte position of the list's chunk header.
func (l *List) Offset() int64 { return l.chunk.Offset() }

// Length returns the payload length of the list's base chunk, including
// the 4 list-type bytes. In write mode it is zero until the list is closed.
func (l *List) Length() uint32 { return l.chunk.Length() }

// IsOpen reports whether the list is still open.
func (l *List) IsOpen() bool { return l.chunk.IsOpen() }

// IsWriteMode reports whether the list was created for writing.
func (l *List) IsWriteMode() bool { return l.chunk.IsWriteMode() }

// IsBusy reports whether a child chunk or a child enumeration is active.
func (l *List) IsBusy() bool { return l.busy > 0 }

func (l *List) capture() { l.busy++ }

func (l *List) release() {
	if l.busy > 0 {
		l.busy--
	}
}

// Scan starts a lazy enumeration of the list's children. The enumeration is
// single-pass and non-restartable, and it holds the list busy until it is
// exhausted or closed; a second scan or any mutation in the meantime fails
// with ErrListBusy. Read mode only.
func (l *List) Scan() (*Scanner, error) {
	if !l.chunk.IsOpen() {
		return nil, fmt.Errorf("list %q: %w", l.Tag(), ErrListNotOpen)
	}
	if l.chunk.IsWriteMode() {
		return nil, fmt.Errorf("list %q: %w", l.Tag(), ErrListWriteOnly)
	}
	if l.busy > 0 {
		return nil, fmt.Errorf("list %q: %w", l.Tag(), ErrListBusy)
	}
	l.capture()
	return &Scanner{
		list: l,
		next: l.chunk.dataOffset() + listTypeSize,
		end:  l.chunk.dataEnd(),
	}, nil
}

// CreateChunk starts a new child chunk at the current append position. The
// child is the list's busy child until it is closed. Write mode only.
func (l *List) CreateChunk(tag FourCC) (*Chunk, error) {
	if err := l.checkCreate(); err != nil {
		return nil, err
	}
	return newChunk(l.chunk.w, l, tag)
}

// CreateList starts a new child list with a fixed "LIST" container tag and
// the given list type. Write mode only.
func (l *List) CreateList(listType FourCC) (*List, error) {
	if err := l.checkCreate(); err != nil {
		return nil, err
	}
	c, err := newChunk(l.chunk.w, l, TagLIST)
	if err != nil {
		return nil, err
	}
	return newListWriter(c, listType)
}

func (l *List) checkCreate() error {
	if !l.chunk.IsOpen() {
		return fmt.Errorf("list %q: %w", l.Tag(), ErrListNotOpen)
	}
	if !l.chunk.IsWriteMode() {
		return fmt.Errorf("list %q: %w", l.Tag(), ErrListReadOnly)
	}
	if l.busy > 0 {
		return fmt.Errorf("list %q: %w", l.Tag(), ErrListBusy)
	}
	return nil
}

// Close finishes the list by closing its base chunk, which in write mode
// backpatches the length covering everything written into the subtree. It
// refuses to close while a child or enumeration is outstanding: forcing a
// child closed mid-write would fix the wrong length into the file.
func (l *List) Close() error {
	if !l.chunk.IsOpen() {
		return nil
	}
	if l.busy > 0 {
		return fmt.Errorf("list %q: %w", l.Tag(), ErrListBusy)
	}
	return l.chunk.Close()
}

// Scanner walks a list's children in file order. Typical use:
//
//	sc, err := list.Scan()
//	if err != nil { ... }
//	defer sc.Close()
//	for sc.Next() {
//		child := sc.Chunk()
//		...
//	}
//	if err := sc.Err(); err != nil { ... }
//
// Advancing closes the previous child. Abandoning the scanner early
// requires Close so the list is released; exhaustion and errors release it
// automatically.
type Scanner struct {
	list *List
	cur  *Chunk
	next int64 // absolute offset of the next child header
	end  int64 // absolute end of the list payload
	err  error
	done bool
}

// Next advances to the next child chunk. It returns false when fewer than a
// full header's worth of bytes remain before the end of the list payload
// (trailing pad bytes are tolerated) or when an error occurs.
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}
	if s.cur != nil && s.cur.IsOpen() {
		if err := s.cur.Close(); err != nil {
			s.err = err
			s.finish()
			return false
		}
	}
	s.cur = nil

	if s.end-s.next < headerSize {
		s.finish()
		return false
	}

	c, err := readChunk(s.list.chunk.r, s.list, s.next)
	if err != nil {
		s.err = err
		s.finish()
		return false
	}
	if c.dataEnd() > s.end {
		c.Close()
		s.err = fmt.Errorf("%w: child chunk %q at offset %d overruns list payload",
			ErrMalformed, c.Tag(), c.Offset())
		s.finish()
		return false
	}

	// Advance past the payload and the pad byte keeping siblings even.
	s.next = c.dataEnd()
	if s.next&1 == 1 {
		s.next++
	}
	s.cur = c
	return true
}

// Chunk returns the child produced by the last successful Next. The child
// stays valid until the next call to Next or Close.
func (s *Scanner) Chunk() *Chunk { return s.cur }

// Err returns the first error encountered while scanning, if any.
func (s *Scanner) Err() error { return s.err }

// Close abandons the enumeration, closing the current child and releasing
// the list. Closing an exhausted scanner is a no-op.
func (s *Scanner) Close() error {
	if s.cur != nil && s.cur.IsOpen() {
		if err := s.cur.Close(); err != nil && s.err == nil {
			s.err = err
		}
		s.cur = nil
	}
	s.finish()
	return nil
}

func (s *Scanner) finish() {
	if !s.done {
		s.done = true
		s.list.release()
	}
}
