package wavmeta

import (
	"fmt"
	"io"

	"github.com/mattetti/riffkit/internal/riff"
)

// Info summarizes a WAV container.
type Info struct {
	Format     Format
	DataLength uint32 // payload size of the "data" chunk
}

// Write assembles a minimal PCM WAV container on a seekable sink: a
// RIFF/WAVE list holding a "fmt " chunk and one "data" chunk with the given
// sample bytes.
func Write(w io.WriteSeeker, f Format, data []byte) error {
	root, err := riff.Create(w, TagWAVE)
	if err != nil {
		return err
	}

	fc, err := root.CreateChunk(TagFmt)
	if err != nil {
		return err
	}
	if err := EncodeFormat(fc, f); err != nil {
		return err
	}
	if err := fc.Close(); err != nil {
		return err
	}

	dc, err := root.CreateChunk(TagData)
	if err != nil {
		return err
	}
	if err := dc.WriteBytes(data); err != nil {
		return err
	}
	if err := dc.Close(); err != nil {
		return err
	}

	return root.Close()
}

// WriteFile writes a minimal PCM WAV file.
func WriteFile(path string, f Format, data []byte) error {
	out, err := riff.CreateFile(path, TagWAVE)
	if err != nil {
		return err
	}

	fc, err := out.Root().CreateChunk(TagFmt)
	if err != nil {
		out.Close()
		return err
	}
	if err := EncodeFormat(fc, f); err != nil {
		out.Close()
		return err
	}
	if err := fc.Close(); err != nil {
		out.Close()
		return err
	}

	dc, err := out.Root().CreateChunk(TagData)
	if err != nil {
		out.Close()
		return err
	}
	if err := dc.WriteBytes(data); err != nil {
		out.Close()
		return err
	}
	if err := dc.Close(); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

// ReadInfo scans a WAV container for its format and data chunk size. Chunks
// other than "fmt " and "data" are skipped, not interpreted.
func ReadInfo(r io.ReadSeeker) (Info, error) {
	root, err := riff.Open(r)
	if err != nil {
		return Info{}, err
	}
	if root.ListType() != TagWAVE {
		return Info{}, fmt.Errorf("container type %q is not %q", root.ListType(), TagWAVE)
	}

	sc, err := root.Scan()
	if err != nil {
		return Info{}, err
	}
	defer sc.Close()

	var info Info
	var haveFormat, haveData bool
	for sc.Next() {
		c := sc.Chunk()
		switch c.Tag() {
		case TagFmt:
			if info.Format, err = DecodeFormat(c); err != nil {
				return Info{}, err
			}
			haveFormat = true
		case TagData:
			info.DataLength = c.Length()
			haveData = true
		}
		if haveFormat && haveData {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return Info{}, err
	}
	if !haveFormat {
		return Info{}, fmt.Errorf("container has no %q chunk", TagFmt)
	}
	return info, nil
}
