// Package transform produces the ordered catalog of candidate image
// preprocessing steps tried by the decode pipeline to compensate for unknown
// lighting and contrast.
package transform

import (
	"image"

	"github.com/disintegration/imaging"
)

// Transform is a named, pure preprocessing step. Apply never mutates its
// input; imaging operations always allocate a fresh NRGBA image.
type Transform struct {
	Name  string
	Apply func(image.Image) image.Image
}

// Catalog returns the fixed, ordered transform catalog. Cheaper and
// likelier-to-succeed transforms come first so the search can exit early.
// The slice is freshly allocated and restartable; callers may range over it
// any number of times.
func Catalog() []Transform {
	return []Transform{
		{Name: "identity", Apply: func(img image.Image) image.Image { return img }},
		{Name: "grayscale", Apply: func(img image.Image) image.Image { return imaging.Grayscale(img) }},
		{Name: "contrast+50", Apply: adjustContrast(50)},
		{Name: "contrast+80", Apply: adjustContrast(80)},
		{Name: "contrast-30", Apply: adjustContrast(-30)},
		{Name: "contrast-50", Apply: adjustContrast(-50)},
		{Name: "brightness+20", Apply: adjustBrightness(20)},
		{Name: "brightness+30", Apply: adjustBrightness(30)},
		{Name: "brightness-30", Apply: adjustBrightness(-30)},
		{Name: "brightness-50", Apply: adjustBrightness(-50)},
		{Name: "invert", Apply: func(img image.Image) image.Image { return imaging.Invert(img) }},
		{Name: "blur1", Apply: blur(1)},
		{Name: "blur2", Apply: blur(2)},
		{Name: "sharpen", Apply: func(img image.Image) image.Image { return imaging.Sharpen(img, 1.0) }},
	}
}

func adjustContrast(pct float64) func(image.Image) image.Image {
	return func(img image.Image) image.Image { return imaging.AdjustContrast(img, pct) }
}

func adjustBrightness(pct float64) func(image.Image) image.Image {
	return func(img image.Image) image.Image { return imaging.AdjustBrightness(img, pct) }
}

func blur(sigma float64) func(image.Image) image.Image {
	return func(img image.Image) image.Image { return imaging.Blur(img, sigma) }
}
