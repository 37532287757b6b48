/*
Package gem implements a decoder and encoder for the PC-98 GEM image format.

A GEM file is an uncompressed 8-bit palette image. It starts with a 4 byte
header holding the width and height as little-endian 16-bit values, followed
by a 768 byte palette of 256 RGB triples and finally one palette index per
pixel in row-major order, top row first. Any bytes after the last pixel are
ignored. The format has no alpha channel so every decoded pixel is opaque.
*/
package gem

import (
	"image"
	"image/color"
)

const (
	headerSize     = 4
	paletteEntries = 256
	paletteSize    = paletteEntries * 3
	pixelOffset    = headerSize + paletteSize

	// Ext is the conventional filename extension of a GEM file
	Ext = ".gem"
)

// RGB is a single palette entry.
type RGB struct {
	R, G, B uint8
}

// RGBA returns the palette entry as a fully opaque color.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 0xff}
}

// Palette is the fixed 256 entry color table; entry i is the color of pixel
// index i.
type Palette [paletteEntries]RGB

// Colors returns p as a color.Palette with every entry fully opaque.
func (p Palette) Colors() color.Palette {
	cp := make(color.Palette, len(p))
	for i, c := range p {
		cp[i] = c.RGBA()
	}
	return cp
}

// Image is a decoded GEM file. Pix holds Width*Height palette indices in
// row-major order.
type Image struct {
	Width   uint16
	Height  uint16
	Palette Palette
	Pix     []uint8
}

// Bounds returns the rectangle covered by the image, anchored at (0, 0).
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(m.Width), int(m.Height))
}

// RGBA renders the image through its palette.
func (m *Image) RGBA() *image.RGBA {
	rgba := image.NewRGBA(m.Bounds())
	pix := m.Pix
	if n := len(rgba.Pix) >> 2; len(pix) > n {
		pix = pix[:n]
	}
	for i, v := range pix {
		c := m.Palette[v]
		o := i * 4
		rgba.Pix[o+0] = c.R
		rgba.Pix[o+1] = c.G
		rgba.Pix[o+2] = c.B
		rgba.Pix[o+3] = 0xff
	}
	return rgba
}

// Paletted returns the image as an *image.Paletted sharing no memory with m.
func (m *Image) Paletted() *image.Paletted {
	pm := image.NewPaletted(m.Bounds(), m.Palette.Colors())
	copy(pm.Pix, m.Pix)
	return pm
}
