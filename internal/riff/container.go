package riff

import (
	"fmt"
	"io"
	"os"
)

// Open reads the outermost container chunk of a stream and returns it as a
// read-mode list. The root chunk must be tagged "RIFF" and start at byte 0;
// its list type identifies the format, e.g. "WAVE".
func Open(r io.ReadSeeker) (*List, error) {
	c, err := readChunk(r, nil, 0)
	if err != nil {
		return nil, err
	}
	return newListReader(c, TagRIFF)
}

// Create starts a new container on an empty seekable stream: a write-mode
// root list tagged "RIFF" with the given format type. Closing the returned
// list backpatches the total length into the root header.
func Create(w io.WriteSeeker, formType FourCC) (*List, error) {
	c, err := newChunk(w, nil, TagRIFF)
	if err != nil {
		return nil, err
	}
	return newListWriter(c, formType)
}

// File couples a root list with the file it reads or writes. It owns the
// underlying *os.File and releases it on Close.
type File struct {
	f    *os.File
	root *List
}

// OpenFile opens an existing container file for reading.
func OpenFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening container file: %w", err)
	}
	root, err := Open(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &File{f: f, root: root}, nil
}

// CreateFile creates a new container file for writing with the given
// format type.
func CreateFile(path string, formType FourCC) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating container file: %w", err)
	}
	root, err := Create(f, formType)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &File{f: f, root: root}, nil
}

// Root returns the root list of the container.
func (f *File) Root() *List { return f.root }

// Close closes the root list — backpatching the total length in write
// mode — flushes, and releases the underlying file. It fails with
// ErrListBusy while a child or enumeration is still outstanding; the caller
// must drain those first, then call Close again.
func (f *File) Close() error {
	if f.root.IsOpen() {
		writeMode := f.root.IsWriteMode()
		if err := f.root.Close(); err != nil {
			return err
		}
		if writeMode {
			if err := f.f.Sync(); err != nil {
				return fmt.Errorf("error flushing container file: %w", err)
			}
		}
	}
	if err := f.f.Close(); err != nil {
		return fmt.Errorf("error closing container file: %w", err)
	}
	return nil
}
