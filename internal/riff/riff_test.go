package riff

import (
	"encoding/binary"
	"io"
)

// seekBuffer is an in-memory io.WriteSeeker used as a write target in
// tests, standing in for a file.
type seekBuffer struct {
	data []byte
	pos  int64
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	end := b.pos + int64(len(p))
	if end > int64(len(b.data)) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[b.pos:], p)
	b.pos = end
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		b.pos = offset
	case io.SeekCurrent:
		b.pos += offset
	case io.SeekEnd:
		b.pos = int64(len(b.data)) + offset
	}
	return b.pos, nil
}

// chunkBytes serializes one chunk: header, payload, pad byte if odd.
func chunkBytes(tag string, payload []byte) []byte {
	out := make([]byte, 0, headerSize+len(payload)+1)
	out = append(out, tag[:4]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	out = append(out, payload...)
	if len(payload)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

// riffBytes serializes a whole container: RIFF header, form type, children.
func riffBytes(formType string, children ...[]byte) []byte {
	var payload []byte
	payload = append(payload, formType[:4]...)
	for _, child := range children {
		payload = append(payload, child...)
	}
	return chunkBytes("RIFF", payload)
}
