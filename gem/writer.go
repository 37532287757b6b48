package gem

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/ericpauley/go-quantize/quantize"
)

var errTooLarge = errors.New("gem: image is too large")

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(m *image.Paletted) error {
	w, h := m.Rect.Dx(), m.Rect.Dy()

	var header [headerSize]byte
	binary.LittleEndian.PutUint16(header[0:], uint16(w))
	binary.LittleEndian.PutUint16(header[2:], uint16(h))
	if _, err := e.w.Write(header[:]); err != nil {
		return err
	}

	// Unused entries are left black
	var palette [paletteSize]byte
	for i, c := range m.Palette {
		if i == paletteEntries {
			break
		}
		// Alpha is dropped, keep the unpremultiplied color
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		palette[i*3+0] = n.R
		palette[i*3+1] = n.G
		palette[i*3+2] = n.B
	}
	if _, err := e.w.Write(palette[:]); err != nil {
		return err
	}

	for y := 0; y < h; y++ {
		if _, err := e.w.Write(m.Pix[y*m.Stride : y*m.Stride+w]); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes the Image m to w in GEM format. Images that are not already
// paletted with at most 256 colors are quantized first.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Dx() > math.MaxUint16 || b.Dy() > math.MaxUint16 {
		return errTooLarge
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok && len(cp) <= paletteEntries {
			pm = image.NewPaletted(b, cp)
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					pm.Set(x, y, cp.Convert(m.At(x, y)))
				}
			}
		}
	}
	if pm == nil || len(pm.Palette) > paletteEntries {
		var p color.Palette
		if !b.Empty() {
			q := quantize.MedianCutQuantizer{}
			p = q.Quantize(make(color.Palette, 0, paletteEntries), m)
		}
		pm = image.NewPaletted(b, p)
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	e := encoder{w: w}

	return e.encode(pm)
}
