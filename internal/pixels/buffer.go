package pixels

import (
	"image"

	"github.com/strichware/bardec/internal/mempool"
)

// Buffer is a width x height grayscale intensity plane (0-255).
// Buffers are immutable once produced; transforms allocate fresh buffers
// rather than mutating shared ones.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// At returns the intensity at (x, y). Callers must stay in bounds.
func (b *Buffer) At(x, y int) uint8 {
	return b.Pix[y*b.Width+x]
}

// Row returns the intensities of row y as a view into the buffer.
// The returned slice must not be modified.
func (b *Buffer) Row(y int) []uint8 {
	return b.Pix[y*b.Width : (y+1)*b.Width]
}

// Release returns the pixel plane to the buffer pool. The buffer must not be
// used afterwards. Safe to call on a nil buffer.
func (b *Buffer) Release() {
	if b == nil {
		return
	}
	mempool.PutUint8(b.Pix)
	b.Pix = nil
}

// Luma converts 16-bit-per-channel RGB (as returned by image.Color.RGBA) to
// an 8-bit intensity using the ITU BT.601 weights, rounded to nearest.
func Luma(r, g, b uint32) uint8 {
	r8 := r >> 8
	g8 := g >> 8
	b8 := b >> 8
	// 0.299r + 0.587g + 0.114b in fixed point (x1000), rounded.
	y := (299*r8 + 587*g8 + 114*b8 + 500) / 1000
	if y > 255 {
		y = 255
	}
	return uint8(y)
}

// FromImage converts an image into a pooled grayscale Buffer.
// The caller should Release the buffer when the decode request completes.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	buf := &Buffer{
		Width:  width,
		Height: height,
		Pix:    mempool.GetUint8(width * height),
	}

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < height; y++ {
			copy(buf.Row(y), src.Pix[y*src.Stride:y*src.Stride+width])
		}
	case *image.NRGBA:
		for y := 0; y < height; y++ {
			row := buf.Row(y)
			off := y * src.Stride
			for x := 0; x < width; x++ {
				i := off + x*4
				row[x] = luma8(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
			}
		}
	case *image.RGBA:
		for y := 0; y < height; y++ {
			row := buf.Row(y)
			off := y * src.Stride
			for x := 0; x < width; x++ {
				i := off + x*4
				row[x] = luma8(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
			}
		}
	default:
		for y := 0; y < height; y++ {
			row := buf.Row(y)
			for x := 0; x < width; x++ {
				r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				row[x] = Luma(r, g, b)
			}
		}
	}
	return buf
}

func luma8(r, g, b uint8) uint8 {
	y := (299*uint32(r) + 587*uint32(g) + 114*uint32(b) + 500) / 1000
	return uint8(y)
}
