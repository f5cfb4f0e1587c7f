// Package inspector walks RIFF containers: it renders a chunk-tree report
// and repacks a container chunk by chunk through the read and write
// engines.
package inspector

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattetti/riffkit/internal/riff"
)

// Options represents the inspection options
type Options struct {
	Debug    bool
	MaxDepth int // 0 means unlimited
}

// Inspector handles walking and reporting on a container
type Inspector struct {
	options Options
}

// New creates a new inspector
func New(options Options) *Inspector {
	return &Inspector{options: options}
}

// Debug logs a message if debug mode is enabled
func (ins *Inspector) Debug(message string) {
	if ins.options.Debug {
		fmt.Println(message)
	}
}

// Dump writes an indented report of the container's chunk tree: one line
// per chunk with its tag, payload length, and absolute offset.
func (ins *Inspector) Dump(list *riff.List, w io.Writer) error {
	return ins.dumpList(list, w, 0)
}

func (ins *Inspector) dumpList(l *riff.List, w io.Writer, depth int) error {
	indent := strings.Repeat("  ", depth)
	if _, err := fmt.Fprintf(w, "%s%s '%s' (%d bytes) @ %d\n",
		indent, l.Tag(), l.ListType(), l.Length(), l.Offset()); err != nil {
		return err
	}
	if ins.options.MaxDepth > 0 && depth+1 >= ins.options.MaxDepth {
		return nil
	}

	sc, err := l.Scan()
	if err != nil {
		return err
	}
	defer sc.Close()

	for sc.Next() {
		c := sc.Chunk()
		ins.Debug(fmt.Sprintf("visiting chunk %q at offset %d", c.Tag(), c.Offset()))

		if c.Tag() == riff.TagLIST {
			sub, err := c.AsList()
			if err != nil {
				return err
			}
			if err := ins.dumpList(sub, w, depth+1); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s  %s (%d bytes) @ %d\n",
			indent, c.Tag(), c.Length(), c.Offset()); err != nil {
			return err
		}
	}
	return sc.Err()
}

// Repack copies every chunk of src into dst in order, recursing into
// nested lists. With matching form types the output is byte-identical to
// the input, which exercises the full read and write paths end to end.
func (ins *Inspector) Repack(src, dst *riff.List) error {
	sc, err := src.Scan()
	if err != nil {
		return err
	}
	defer sc.Close()

	for sc.Next() {
		c := sc.Chunk()

		if c.Tag() == riff.TagLIST {
			subSrc, err := c.AsList()
			if err != nil {
				return err
			}
			subDst, err := dst.CreateList(subSrc.ListType())
			if err != nil {
				return err
			}
			if err := ins.Repack(subSrc, subDst); err != nil {
				return err
			}
			if err := subDst.Close(); err != nil {
				return err
			}
			continue
		}

		out, err := dst.CreateChunk(c.Tag())
		if err != nil {
			return err
		}
		if _, err := io.Copy(out.Body(), c.Body()); err != nil {
			return fmt.Errorf("error copying chunk %q: %w", c.Tag(), err)
		}
		if err := out.Close(); err != nil {
			return err
		}
	}
	return sc.Err()
}
