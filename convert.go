package gemconv

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/gemconv/gem"
)

// isGEM reports whether a filename carries the GEM extension, in any case.
func isGEM(name string) bool {
	return strings.EqualFold(filepath.Ext(name), gem.Ext)
}

func (c *Converter) outputName(src string) string {
	base := filepath.Base(src)
	// Leading dots belong to the name, so ".gem" has no extension to replace
	if ext := filepath.Ext(strings.TrimLeft(base, ".")); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + c.format.Ext
}

// ConvertFile converts a single GEM file into the directory dir and returns
// the path of the file written. Every error is an *fs.PathError naming
// either the source or the destination file. Nothing is left at the
// destination when encoding fails.
func (c *Converter) ConvertFile(src, dir string) (string, error) {
	b, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}

	m, err := gem.Parse(b)
	if err != nil {
		return "", &fs.PathError{Op: "parse", Path: src, Err: err}
	}

	dst := filepath.Join(dir, c.outputName(src))

	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}

	if err := c.format.Encode(f, m.RGBA()); err != nil {
		f.Close()
		os.Remove(dst)
		return "", &fs.PathError{Op: "encode", Path: dst, Err: err}
	}

	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", err
	}

	c.logger.Printf("Converted: %s -> %s\n", src, dst)

	return dst, nil
}
