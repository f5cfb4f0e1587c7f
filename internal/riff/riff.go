// Package riff reads and writes RIFF-family container files (WAV, AVI and
// friends): a flat byte stream of tagged, length-prefixed chunks, where
// RIFF/LIST chunks recursively contain further chunks.
//
// Reading walks an existing container lazily, one sibling chunk at a time,
// without scanning the whole file up front. Writing appends chunks with a
// provisional header and backpatches the real length when the chunk is
// closed, so the output stream must be seekable.
//
// At most one child chunk or child enumeration may be active on a list at a
// time. The engine checks this and refuses violations immediately; it never
// blocks.
package riff

// FourCC is a four-character chunk or list-type tag, e.g. "RIFF" or "fmt ".
// Tags are raw bytes and not necessarily printable.
type FourCC [4]byte

// Tag builds a FourCC from a string. Short strings are padded with spaces,
// longer ones are truncated to four bytes.
func Tag(s string) FourCC {
	t := FourCC{' ', ' ', ' ', ' '}
	copy(t[:], s)
	return t
}

// String returns the tag as a 4-byte string.
func (t FourCC) String() string {
	return string(t[:])
}

// Container-level tags defined by the RIFF format.
var (
	TagRIFF = Tag("RIFF")
	TagLIST = Tag("LIST")
)

const (
	// headerSize is the fixed chunk header: 4 tag bytes + 4 length bytes.
	headerSize = 8
	// listTypeSize is the list-type tag at the start of a list payload.
	listTypeSize = 4
)
