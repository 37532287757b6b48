package gemconv

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"sort"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DefaultFormat is the output format used unless Format is passed to New.
const DefaultFormat = "png"

// OutputFormat describes an image encoding the converter can write.
type OutputFormat struct {
	Name   string
	Ext    string
	Encode func(io.Writer, image.Image) error
}

var formats = map[string]OutputFormat{
	"png": {
		Name:   "png",
		Ext:    ".png",
		Encode: png.Encode,
	},
	"bmp": {
		Name:   "bmp",
		Ext:    ".bmp",
		Encode: bmp.Encode,
	},
	"tiff": {
		Name: "tiff",
		Ext:  ".tiff",
		Encode: func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		},
	},
}

// Lookup returns the output format registered under name.
func Lookup(name string) (OutputFormat, error) {
	f, ok := formats[name]
	if !ok {
		return OutputFormat{}, fmt.Errorf("unsupported output format %q", name)
	}
	return f, nil
}

// Formats returns the names of all supported output formats, sorted.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
