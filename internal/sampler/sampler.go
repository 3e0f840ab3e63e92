// Package sampler yields horizontal intensity scan lines from a grayscale
// buffer according to a band/step strategy.
package sampler

import (
	"github.com/strichware/bardec/internal/pixels"
)

// Strategy selects which rows of a buffer are scanned. Band is the vertical
// fraction range [start, end) of the image covered; Step is the row stride.
type Strategy struct {
	Name string
	Band [2]float64
	Step int
}

// Strategies returns the scan strategies in increasing cost order. Barcodes
// are assumed roughly centered and horizontal, so the sparse middle band is
// tried first and the dense full-height sweep last.
func Strategies() []Strategy {
	return []Strategy{
		{Name: "mid-sparse", Band: [2]float64{0.35, 0.65}, Step: 8},
		{Name: "mid", Band: [2]float64{0.15, 0.85}, Step: 4},
		{Name: "full-dense", Band: [2]float64{0.05, 0.95}, Step: 1},
	}
}

// Line is one horizontal intensity line, tagged with its source row and the
// transform that produced the buffer (for diagnostics).
type Line struct {
	Row       int
	Transform string
	Pixels    []uint8
}

// Sample lazily yields scan lines from buf for the given strategy, tagging
// each with transformName. fn returning false stops the iteration early.
func Sample(buf *pixels.Buffer, transformName string, s Strategy, fn func(Line) bool) {
	if buf == nil || buf.Height == 0 || buf.Width == 0 {
		return
	}
	step := s.Step
	if step < 1 {
		step = 1
	}
	start := int(s.Band[0] * float64(buf.Height))
	end := int(s.Band[1] * float64(buf.Height))
	if start < 0 {
		start = 0
	}
	if end > buf.Height {
		end = buf.Height
	}
	for y := start; y < end; y += step {
		if !fn(Line{Row: y, Transform: transformName, Pixels: buf.Row(y)}) {
			return
		}
	}
}
