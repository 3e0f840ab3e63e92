package binarize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bimodalLine builds a line with half its pixels at lo and half at hi.
func bimodalLine(lo, hi uint8, n int) []uint8 {
	line := make([]uint8, n)
	for i := range line {
		if i < n/2 {
			line[i] = lo
		} else {
			line[i] = hi
		}
	}
	return line
}

func TestOtsuBimodal(t *testing.T) {
	line := bimodalLine(30, 220, 100)
	threshold := Threshold(line, MethodOtsu)

	// Threshold must land strictly between the two modes and classify each
	// half correctly.
	assert.Greater(t, threshold, uint8(30))
	assert.LessOrEqual(t, threshold, uint8(220))

	bits := Binarize(line, threshold, nil)
	for i := 0; i < 50; i++ {
		assert.Equal(t, uint8(0), bits[i], "dark pixel %d misclassified", i)
	}
	for i := 50; i < 100; i++ {
		assert.Equal(t, uint8(1), bits[i], "light pixel %d misclassified", i)
	}
}

func TestOtsuUniformLine(t *testing.T) {
	line := make([]uint8, 64)
	for i := range line {
		line[i] = 128
	}
	// No split exists; must not panic and must return a deterministic value.
	first := Threshold(line, MethodOtsu)
	second := Threshold(line, MethodOtsu)
	assert.Equal(t, first, second)
}

func TestMean(t *testing.T) {
	assert.Equal(t, uint8(50), Threshold([]uint8{0, 100}, MethodMean))
	assert.Equal(t, uint8(10), Threshold([]uint8{10, 10, 10}, MethodMean))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, uint8(20), Threshold([]uint8{10, 20, 200}, MethodMedian))
	assert.Equal(t, uint8(200), Threshold([]uint8{10, 20, 200, 201}, MethodMedian))
}

func TestAdaptiveBelowMean(t *testing.T) {
	line := bimodalLine(50, 150, 100)
	adaptive := Threshold(line, MethodAdaptive)
	mean := Threshold(line, MethodMean)
	assert.Less(t, adaptive, mean)
}

func TestBinarizeMapping(t *testing.T) {
	bits := Binarize([]uint8{0, 99, 100, 101, 255}, 100, nil)
	assert.Equal(t, []uint8{0, 0, 1, 1, 1}, bits)
}

func TestBinarizeReusesDst(t *testing.T) {
	dst := make([]uint8, 8)
	line := []uint8{10, 200, 10, 200}
	out := Binarize(line, 100, dst)
	require.Len(t, out, 4)
	assert.Equal(t, []uint8{0, 1, 0, 1}, out)
	// Same backing array.
	assert.Equal(t, &dst[0], &out[0])
}

func TestEmptyLine(t *testing.T) {
	assert.Equal(t, uint8(0), Threshold(nil, MethodOtsu))
	assert.Empty(t, Binarize(nil, 100, nil))
}

func TestMethodsOrder(t *testing.T) {
	methods := Methods()
	require.Equal(t, MethodOtsu, methods[0], "Otsu must be primary")
	assert.Len(t, methods, 4)
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "otsu", MethodOtsu.String())
	assert.Equal(t, "adaptive", MethodAdaptive.String())
	assert.Equal(t, "unknown", Method(42).String())
}
