package riff

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Typed payload accessors. All multi-byte values are little-endian on the
// wire regardless of host byte order. Reads are bounded to the chunk's
// payload window; writes append at the current position.

// ReadUint8 reads one unsigned byte.
func (c *Chunk) ReadUint8() (uint8, error) {
	buf, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads a little-endian 16-bit unsigned integer.
func (c *Chunk) ReadUint16() (uint16, error) {
	buf, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// ReadUint32 reads a little-endian 32-bit unsigned integer.
func (c *Chunk) ReadUint32() (uint32, error) {
	buf, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadUint64 reads a little-endian 64-bit unsigned integer.
func (c *Chunk) ReadUint64() (uint64, error) {
	buf, err := c.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// ReadInt16 reads a little-endian 16-bit signed integer.
func (c *Chunk) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads a little-endian 32-bit signed integer.
func (c *Chunk) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

// ReadFloat32 reads a little-endian IEEE 754 single-precision float.
func (c *Chunk) ReadFloat32() (float32, error) {
	v, err := c.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 reads a little-endian IEEE 754 double-precision float.
func (c *Chunk) ReadFloat64() (float64, error) {
	v, err := c.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadTag reads a 4-byte tag.
func (c *Chunk) ReadTag() (FourCC, error) {
	var t FourCC
	buf, err := c.ReadBytes(4)
	if err != nil {
		return t, err
	}
	copy(t[:], buf)
	return t, nil
}

// ReadString reads a length-prefixed character sequence: a 4-byte
// little-endian code-point count followed by that many 4-byte little-endian
// code points. This is not UTF-8; conversion happens here at the boundary.
func (c *Chunk) ReadString() (string, error) {
	count, err := c.ReadUint32()
	if err != nil {
		return "", err
	}
	if int64(count)*4 > c.Remaining() {
		return "", fmt.Errorf("chunk %q: string of %d code points exceeds payload: %w",
			c.tag, count, ErrEndOfChunk)
	}
	buf, err := c.ReadBytes(int(count) * 4)
	if err != nil {
		return "", err
	}
	runes := make([]rune, count)
	for i := range runes {
		runes[i] = rune(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return string(runes), nil
}

// WriteUint8 writes one unsigned byte.
func (c *Chunk) WriteUint8(v uint8) error {
	return c.WriteBytes([]byte{v})
}

// WriteUint16 writes a little-endian 16-bit unsigned integer.
func (c *Chunk) WriteUint16(v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return c.WriteBytes(buf[:])
}

// WriteUint32 writes a little-endian 32-bit unsigned integer.
func (c *Chunk) WriteUint32(v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return c.WriteBytes(buf[:])
}

// WriteUint64 writes a little-endian 64-bit unsigned integer.
func (c *Chunk) WriteUint64(v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return c.WriteBytes(buf[:])
}

// WriteInt16 writes a little-endian 16-bit signed integer.
func (c *Chunk) WriteInt16(v int16) error {
	return c.WriteUint16(uint16(v))
}

// WriteInt32 writes a little-endian 32-bit signed integer.
func (c *Chunk) WriteInt32(v int32) error {
	return c.WriteUint32(uint32(v))
}

// WriteFloat32 writes a little-endian IEEE 754 single-precision float.
func (c *Chunk) WriteFloat32(v float32) error {
	return c.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 writes a little-endian IEEE 754 double-precision float.
func (c *Chunk) WriteFloat64(v float64) error {
	return c.WriteUint64(math.Float64bits(v))
}

// WriteTag writes a 4-byte tag.
func (c *Chunk) WriteTag(t FourCC) error {
	return c.WriteBytes(t[:])
}

// WriteString writes a length-prefixed character sequence in the format
// ReadString consumes.
func (c *Chunk) WriteString(s string) error {
	runes := []rune(s)
	buf := make([]byte, 4+len(runes)*4)
	binary.LittleEndian.PutUint32(buf, uint32(len(runes)))
	for i, r := range runes {
		binary.LittleEndian.PutUint32(buf[4+i*4:], uint32(r))
	}
	return c.WriteBytes(buf)
}
