package gem

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPalette maps index i to a color unique to i
func testPalette() Palette {
	var p Palette
	for i := range p {
		p[i] = RGB{uint8(i), uint8(255 - i), uint8(i * 7)}
	}
	return p
}

func makeGEM(width, height uint16, p Palette, pix []byte) []byte {
	b := make([]byte, headerSize, pixelOffset+len(pix))
	binary.LittleEndian.PutUint16(b[0:], width)
	binary.LittleEndian.PutUint16(b[2:], height)
	for _, c := range p {
		b = append(b, c.R, c.G, c.B)
	}
	return append(b, pix...)
}

func TestParseTwoPixels(t *testing.T) {
	var p Palette
	p[0] = RGB{255, 0, 0}
	p[1] = RGB{0, 255, 0}
	for i := 2; i < paletteEntries; i++ {
		p[i] = RGB{0x12, 0x34, 0x56}
	}

	b := makeGEM(2, 1, p, []byte{0x00, 0x01})
	assert.Equal(t, []byte{0x02, 0x00, 0x01, 0x00}, b[:4])

	m, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), m.Width)
	assert.Equal(t, uint16(1), m.Height)

	rgba := m.RGBA()
	assert.Equal(t, image.Rect(0, 0, 2, 1), rgba.Bounds())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, rgba.RGBAAt(1, 0))
}

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint16
	}{
		{"square", 16, 16},
		{"wide", 640, 1},
		{"tall", 1, 400},
		{"odd", 13, 7},
		{"empty", 0, 0},
		{"zero height", 32, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pix := make([]byte, int(tt.width)*int(tt.height))
			for i := range pix {
				pix[i] = byte(i)
			}

			m, err := Parse(makeGEM(tt.width, tt.height, testPalette(), pix))
			require.NoError(t, err)
			assert.Equal(t, pix, m.Pix)

			rgba := m.RGBA()
			assert.Equal(t, int(tt.width), rgba.Bounds().Dx())
			assert.Equal(t, int(tt.height), rgba.Bounds().Dy())
		})
	}
}

func TestPaletteMapping(t *testing.T) {
	pal := testPalette()

	pix := make([]byte, paletteEntries)
	for i := range pix {
		pix[i] = byte(i)
	}

	// 16x16 so every index appears exactly once, row-major
	m, err := Parse(makeGEM(16, 16, pal, pix))
	require.NoError(t, err)

	rgba := m.RGBA()
	for v := 0; v < paletteEntries; v++ {
		x, y := v%16, v/16
		want := color.RGBA{pal[v].R, pal[v].G, pal[v].B, 0xff}
		assert.Equal(t, want, rgba.RGBAAt(x, y), "index %d", v)
	}

	pm := m.Paletted()
	assert.Equal(t, pix, pm.Pix)
	assert.Len(t, pm.Palette, paletteEntries)
	for v := 0; v < paletteEntries; v++ {
		assert.Equal(t, pal[v].RGBA(), pm.Palette[v])
	}
}

func TestParseMalformedHeader(t *testing.T) {
	full := makeGEM(0, 0, testPalette(), nil)
	require.Len(t, full, pixelOffset)

	for _, n := range []int{0, 1, 3, 4, 100, pixelOffset - 1} {
		_, err := Parse(full[:n])
		require.Error(t, err)

		var merr *MalformedHeaderError
		if assert.True(t, errors.As(err, &merr), "length %d", n) {
			assert.Equal(t, n, merr.Size)
		}
		assert.Contains(t, err.Error(), "invalid GEM file")
	}

	_, err := Parse(full)
	assert.NoError(t, err)
}

func TestParseInsufficientPixelData(t *testing.T) {
	b := makeGEM(4, 3, testPalette(), make([]byte, 11))

	_, err := Parse(b)
	require.Error(t, err)

	var perr *InsufficientPixelDataError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 11, perr.Actual)
	assert.Equal(t, 12, perr.Expected)
	assert.Contains(t, err.Error(), "11 vs 12")
}

func TestParseTrailingBytes(t *testing.T) {
	pix := []byte{1, 2, 3, 4, 0xaa, 0xbb, 0xcc}

	m, err := Parse(makeGEM(2, 2, testPalette(), pix))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, m.Pix)
	assert.Equal(t, 2, m.RGBA().Bounds().Dx())
}

func TestParseDoesNotAlias(t *testing.T) {
	b := makeGEM(2, 1, testPalette(), []byte{5, 6})

	m, err := Parse(b)
	require.NoError(t, err)

	b[pixelOffset] = 9
	assert.Equal(t, []byte{5, 6}, m.Pix)
}

func TestDecode(t *testing.T) {
	pal := testPalette()

	m, err := Decode(bytes.NewReader(makeGEM(3, 2, pal, []byte{0, 1, 2, 3, 4, 5})))
	require.NoError(t, err)

	rgba, ok := m.(*image.RGBA)
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 3, 2), rgba.Bounds())
	assert.Equal(t, pal[4].RGBA(), rgba.RGBAAt(1, 1))

	_, err = Decode(bytes.NewReader([]byte{0x01, 0x00}))
	var merr *MalformedHeaderError
	assert.True(t, errors.As(err, &merr))
}

func TestDecodeConfig(t *testing.T) {
	// Pixel data is deliberately missing, it is never read
	config, err := DecodeConfig(bytes.NewReader(makeGEM(320, 200, testPalette(), nil)))
	require.NoError(t, err)
	assert.Equal(t, 320, config.Width)
	assert.Equal(t, 200, config.Height)
	assert.Equal(t, color.RGBAModel, config.ColorModel)

	_, err = DecodeConfig(bytes.NewReader(make([]byte, 10)))
	var merr *MalformedHeaderError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, 10, merr.Size)
}
