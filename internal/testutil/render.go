// Package testutil renders synthetic barcode images for tests: exact
// module-width bar rendering for the 1-D decoders plus independently encoded
// fixtures from the boombuler and skip2 encoder libraries.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/ean"
	"github.com/disintegration/imaging"
	qrgen "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/require"

	"github.com/strichware/bardec/internal/symbology"
)

// RenderModules draws a module sequence (1 = dark bar) as exact-width
// vertical bars with a white quiet zone on either side. scale is pixels per
// module.
func RenderModules(bits []uint8, scale, height, quiet int) *image.NRGBA {
	width := len(bits)*scale + 2*quiet
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	for i, bit := range bits {
		if bit == 0 {
			continue
		}
		x0 := quiet + i*scale
		bar := image.Rect(x0, 0, x0+scale, height)
		draw.Draw(img, bar, &image.Uniform{color.Black}, image.Point{}, draw.Src)
	}
	return img
}

// RenderEAN13 renders payload (13 digits) as a clean, noise-free EAN-13
// symbol with exact module widths.
func RenderEAN13(t *testing.T, payload string) image.Image {
	t.Helper()
	bits, err := symbology.EncodeEAN13Modules(payload)
	require.NoError(t, err)
	return RenderModules(bits, 3, 120, 30)
}

// RenderEAN8 renders payload (8 digits) as a clean EAN-8 symbol.
func RenderEAN8(t *testing.T, payload string) image.Image {
	t.Helper()
	bits, err := symbology.EncodeEAN8Modules(payload)
	require.NoError(t, err)
	return RenderModules(bits, 3, 100, 30)
}

// RenderEANBoombuler renders an EAN-8 or EAN-13 payload through the
// boombuler encoder, giving the pipeline a fixture produced by an
// independent implementation of the standard.
func RenderEANBoombuler(t *testing.T, payload string) image.Image {
	t.Helper()
	bc, err := ean.Encode(payload)
	require.NoError(t, err)

	modules := bc.Bounds().Dx()
	scaled, err := barcode.Scale(bc, modules*4, 120)
	require.NoError(t, err)

	// Paste onto a white canvas so the symbol keeps its quiet zones.
	canvas := imaging.New(modules*4+80, 160, color.White)
	return imaging.Paste(canvas, scaled, image.Pt(40, 20))
}

// RenderQR renders content as a QR symbol.
func RenderQR(t *testing.T, content string, size int) image.Image {
	t.Helper()
	code, err := qrgen.New(content, qrgen.Medium)
	require.NoError(t, err)
	return code.Image(size)
}

// UniformImage returns a structureless single-intensity image.
func UniformImage(width, height int, level uint8) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.NRGBA{level, level, level, 255}}, image.Point{}, draw.Src)
	return img
}

// StripeImage returns an image of vertical 1-pixel stripes, enough to
// trigger spurious 1-D transitions without encoding anything.
func StripeImage(width, height int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		c := color.NRGBA{255, 255, 255, 255}
		if x%2 == 0 {
			c = color.NRGBA{0, 0, 0, 255}
		}
		for y := 0; y < height; y++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// SideBySide pastes b to the right of a on a shared white canvas.
func SideBySide(a, b image.Image) image.Image {
	ab, bb := a.Bounds(), b.Bounds()
	h := ab.Dy()
	if bb.Dy() > h {
		h = bb.Dy()
	}
	canvas := imaging.New(ab.Dx()+bb.Dx()+20, h+20, color.White)
	canvas = imaging.Paste(canvas, a, image.Pt(0, 10))
	return imaging.Paste(canvas, b, image.Pt(ab.Dx()+20, 10))
}

// PNGBytes encodes img as PNG.
func PNGBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
