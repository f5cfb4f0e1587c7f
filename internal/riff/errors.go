package riff

import "errors"

// Errors reported by the chunk engine. Structural problems in the input are
// wrapped around ErrMalformed or ErrUnexpectedTag; everything else flags a
// protocol violation by the caller and leaves the stream untouched, so the
// operation can be retried once the violation is fixed. Underlying I/O
// errors propagate unmodified.
var (
	// ErrMalformed means the input violates the RIFF format: a truncated
	// or unreadable chunk header, a chunk at an odd offset, or a child
	// chunk extending past its parent's payload.
	ErrMalformed = errors.New("riff: malformed container")

	// ErrUnexpectedTag means a chunk did not carry the tag required in its
	// position, e.g. a root chunk that is not "RIFF".
	ErrUnexpectedTag = errors.New("riff: unexpected chunk tag")

	// ErrOutOfRange means a read or seek would land before the start of
	// the chunk's payload window.
	ErrOutOfRange = errors.New("riff: position before start of chunk data")

	// ErrEndOfChunk means a read would run past the end of the chunk's
	// payload window. Reads never cross chunk boundaries.
	ErrEndOfChunk = errors.New("riff: read past end of chunk")

	// ErrClosedChunk means an operation was attempted on a closed chunk.
	ErrClosedChunk = errors.New("riff: chunk is closed")

	// ErrChunkTooLarge means a written chunk payload exceeds the 32-bit
	// length field of the format.
	ErrChunkTooLarge = errors.New("riff: chunk exceeds 32-bit length limit")

	// ErrWriteOnlyChunk means a read was attempted on a write-mode chunk.
	ErrWriteOnlyChunk = errors.New("riff: chunk is write-only")

	// ErrReadOnlyChunk means a write was attempted on a read-mode chunk.
	ErrReadOnlyChunk = errors.New("riff: chunk is read-only")

	// ErrListBusy means the list already has an open child chunk or an
	// active child enumeration.
	ErrListBusy = errors.New("riff: list has an active child")

	// ErrListNotOpen means the list has been closed.
	ErrListNotOpen = errors.New("riff: list is not open")

	// ErrListReadOnly means a child-creating operation was attempted on a
	// list opened for reading.
	ErrListReadOnly = errors.New("riff: list is read-only")

	// ErrListWriteOnly means a child enumeration was requested on a list
	// opened for writing.
	ErrListWriteOnly = errors.New("riff: list is write-only")
)
