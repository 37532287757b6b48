package gem

import (
	"errors"
	"image"
	"image/color"
	"io"
)

func parseHeader(v view) (uint16, uint16, error) {
	width, err := v.uint16LE(0)
	if err != nil {
		return 0, 0, &MalformedHeaderError{Size: v.len()}
	}
	height, err := v.uint16LE(2)
	if err != nil {
		return 0, 0, &MalformedHeaderError{Size: v.len()}
	}
	return width, height, nil
}

func parsePalette(v view) (Palette, error) {
	var p Palette

	s, err := v.slice(headerSize, paletteSize)
	if err != nil {
		return p, &MalformedHeaderError{Size: v.len()}
	}

	for i := range p {
		// Bounds already established by the slice above
		r, _ := s.byteAt(i*3 + 0)
		g, _ := s.byteAt(i*3 + 1)
		b, _ := s.byteAt(i*3 + 2)
		p[i] = RGB{r, g, b}
	}

	return p, nil
}

func parsePixels(v view, width, height uint16) ([]uint8, error) {
	rest, err := v.from(pixelOffset)
	if err != nil {
		return nil, &MalformedHeaderError{Size: v.len()}
	}

	expected := int(width) * int(height)
	s, err := rest.slice(0, expected)
	if err != nil {
		return nil, &InsufficientPixelDataError{
			Actual:   rest.len(),
			Expected: expected,
		}
	}

	return s.bytes(), nil
}

// Parse decodes a complete GEM file held in b. The returned image does not
// reference b.
func Parse(b []byte) (*Image, error) {
	v := view{b}

	if v.len() < pixelOffset {
		return nil, &MalformedHeaderError{Size: v.len()}
	}

	width, height, err := parseHeader(v)
	if err != nil {
		return nil, err
	}

	palette, err := parsePalette(v)
	if err != nil {
		return nil, err
	}

	pix, err := parsePixels(v, width, height)
	if err != nil {
		return nil, err
	}

	return &Image{
		Width:   width,
		Height:  height,
		Palette: palette,
		Pix:     pix,
	}, nil
}

// Decode reads a GEM file from r and returns it as an *image.RGBA.
func Decode(r io.Reader) (image.Image, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	m, err := Parse(b)
	if err != nil {
		return nil, err
	}

	return m.RGBA(), nil
}

// DecodeConfig returns the color model and dimensions of a GEM image without
// reading the pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var tmp [pixelOffset]byte

	n, err := io.ReadFull(r, tmp[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return image.Config{}, &MalformedHeaderError{Size: n}
		}
		return image.Config{}, err
	}

	width, height, err := parseHeader(view{tmp[:]})
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      int(width),
		Height:     int(height),
	}, nil
}
