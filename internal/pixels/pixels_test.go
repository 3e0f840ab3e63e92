package pixels

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLuma(t *testing.T) {
	tests := []struct {
		name     string
		r, g, b  uint8
		expected uint8
	}{
		{name: "black", r: 0, g: 0, b: 0, expected: 0},
		{name: "white", r: 255, g: 255, b: 255, expected: 255},
		{name: "pure red", r: 255, g: 0, b: 0, expected: 76},
		{name: "pure green", r: 0, g: 255, b: 0, expected: 150},
		{name: "pure blue", r: 0, g: 0, b: 255, expected: 29},
		{name: "mid gray", r: 128, g: 128, b: 128, expected: 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := color.NRGBA{tt.r, tt.g, tt.b, 255}
			r, g, b, _ := c.RGBA()
			assert.Equal(t, tt.expected, Luma(r, g, b))
		})
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			v := uint8(x * 60)
			img.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}

	buf := FromImage(img)
	defer buf.Release()

	require.Equal(t, 4, buf.Width)
	require.Equal(t, 2, buf.Height)
	assert.Equal(t, uint8(0), buf.At(0, 0))
	assert.Equal(t, uint8(60), buf.At(1, 0))
	assert.Equal(t, uint8(180), buf.At(3, 1))
	assert.Equal(t, []uint8{0, 60, 120, 180}, buf.Row(1))
}

func TestFromImageGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	img.SetGray(1, 1, color.Gray{Y: 200})

	buf := FromImage(img)
	defer buf.Release()

	assert.Equal(t, uint8(200), buf.At(1, 1))
	assert.Equal(t, uint8(0), buf.At(0, 0))
}

func TestDecode(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	var enc bytes.Buffer
	require.NoError(t, png.Encode(&enc, img))

	decoded, err := Decode(enc.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Bounds().Dx())
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode([]byte("not an image"))
	require.Error(t, err)

	_, err = Decode(nil)
	require.Error(t, err)
}
