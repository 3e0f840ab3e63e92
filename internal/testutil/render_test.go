package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderModules(t *testing.T) {
	img := RenderModules([]uint8{1, 0, 1}, 2, 10, 4)
	require.Equal(t, 3*2+8, img.Bounds().Dx())
	require.Equal(t, 10, img.Bounds().Dy())

	at := func(x int) uint32 {
		r, _, _, _ := img.At(x, 5).RGBA()
		return r >> 8
	}
	assert.Equal(t, uint32(255), at(0), "quiet zone")
	assert.Equal(t, uint32(0), at(4), "first bar")
	assert.Equal(t, uint32(255), at(6), "space")
	assert.Equal(t, uint32(0), at(8), "second bar")
	assert.Equal(t, uint32(255), at(10), "quiet zone")
}

func TestUniformImage(t *testing.T) {
	img := UniformImage(8, 8, 128)
	r, g, b, _ := img.At(3, 3).RGBA()
	assert.Equal(t, uint32(128), r>>8)
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

func TestStripeImage(t *testing.T) {
	img := StripeImage(8, 4)
	r0, _, _, _ := img.At(0, 0).RGBA()
	r1, _, _, _ := img.At(1, 0).RGBA()
	assert.Equal(t, uint32(0), r0>>8)
	assert.Equal(t, uint32(255), r1>>8)
}

func TestPNGBytesRoundTrip(t *testing.T) {
	data := PNGBytes(t, UniformImage(4, 4, 10))
	assert.NotEmpty(t, data)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}
