// Package wavmeta is a thin WAV-aware layer over the chunk engine: it
// encodes and decodes the PCM "fmt " chunk and assembles minimal WAV
// containers. The chunk engine itself stays chunk-shape-agnostic.
package wavmeta

import (
	"fmt"

	"github.com/go-audio/audio"

	"github.com/mattetti/riffkit/internal/riff"
)

// Chunk tags used by the WAV flavor of RIFF.
var (
	TagWAVE = riff.Tag("WAVE")
	TagFmt  = riff.Tag("fmt ")
	TagData = riff.Tag("data")
)

// pcmFormatSize is the payload size of a PCM "fmt " chunk.
const pcmFormatSize = 16

// pcmAudioFormat is the format code for uncompressed PCM.
const pcmAudioFormat = 1

// Format represents the fields of a PCM "fmt " chunk.
type Format struct {
	AudioFormat   uint16 // 1 for PCM
	NumChannels   uint16 // 1 for mono, 2 for stereo
	SampleRate    uint32 // e.g., 44100
	ByteRate      uint32 // SampleRate * NumChannels * BitsPerSample/8
	BlockAlign    uint16 // NumChannels * BitsPerSample/8
	BitsPerSample uint16 // 8, 16, etc.
}

// PCMFormat builds a PCM Format with the derived rate fields filled in.
func PCMFormat(numChannels, sampleRate, bitsPerSample int) Format {
	return Format{
		AudioFormat:   pcmAudioFormat,
		NumChannels:   uint16(numChannels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * uint32(numChannels) * uint32(bitsPerSample) / 8,
		BlockAlign:    uint16(numChannels * bitsPerSample / 8),
		BitsPerSample: uint16(bitsPerSample),
	}
}

// FromAudio builds a Format from a go-audio format description.
func FromAudio(af *audio.Format, bitsPerSample int) Format {
	return PCMFormat(af.NumChannels, af.SampleRate, bitsPerSample)
}

// ToAudio converts the format to its go-audio equivalent.
func (f Format) ToAudio() *audio.Format {
	return &audio.Format{
		NumChannels: int(f.NumChannels),
		SampleRate:  int(f.SampleRate),
	}
}

// DecodeFormat reads the PCM fields from an open "fmt " chunk.
func DecodeFormat(c *riff.Chunk) (Format, error) {
	if c.Tag() != TagFmt {
		return Format{}, fmt.Errorf("expected %q chunk, got %q", TagFmt, c.Tag())
	}
	if c.Length() < pcmFormatSize {
		return Format{}, fmt.Errorf("%q chunk of %d bytes is too short for PCM fields", TagFmt, c.Length())
	}
	var f Format
	var err error
	if f.AudioFormat, err = c.ReadUint16(); err != nil {
		return Format{}, fmt.Errorf("error reading audio format: %w", err)
	}
	if f.NumChannels, err = c.ReadUint16(); err != nil {
		return Format{}, fmt.Errorf("error reading channel count: %w", err)
	}
	if f.SampleRate, err = c.ReadUint32(); err != nil {
		return Format{}, fmt.Errorf("error reading sample rate: %w", err)
	}
	if f.ByteRate, err = c.ReadUint32(); err != nil {
		return Format{}, fmt.Errorf("error reading byte rate: %w", err)
	}
	if f.BlockAlign, err = c.ReadUint16(); err != nil {
		return Format{}, fmt.Errorf("error reading block align: %w", err)
	}
	if f.BitsPerSample, err = c.ReadUint16(); err != nil {
		return Format{}, fmt.Errorf("error reading bits per sample: %w", err)
	}
	return f, nil
}

// EncodeFormat writes the PCM fields into an open write-mode "fmt " chunk.
func EncodeFormat(c *riff.Chunk, f Format) error {
	if err := c.WriteUint16(f.AudioFormat); err != nil {
		return fmt.Errorf("error writing audio format: %w", err)
	}
	if err := c.WriteUint16(f.NumChannels); err != nil {
		return fmt.Errorf("error writing channel count: %w", err)
	}
	if err := c.WriteUint32(f.SampleRate); err != nil {
		return fmt.Errorf("error writing sample rate: %w", err)
	}
	if err := c.WriteUint32(f.ByteRate); err != nil {
		return fmt.Errorf("error writing byte rate: %w", err)
	}
	if err := c.WriteUint16(f.BlockAlign); err != nil {
		return fmt.Errorf("error writing block align: %w", err)
	}
	if err := c.WriteUint16(f.BitsPerSample); err != nil {
		return fmt.Errorf("error writing bits per sample: %w", err)
	}
	return nil
}
