package transform

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 30), uint8(y * 30), 100, 255})
		}
	}
	return img
}

func TestCatalogOrder(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 14)
	assert.Equal(t, "identity", catalog[0].Name)
	assert.Equal(t, "grayscale", catalog[1].Name)
	assert.Equal(t, "sharpen", catalog[len(catalog)-1].Name)

	names := make(map[string]bool)
	for _, tr := range catalog {
		assert.NotEmpty(t, tr.Name)
		assert.NotNil(t, tr.Apply)
		assert.False(t, names[tr.Name], "duplicate transform name %q", tr.Name)
		names[tr.Name] = true
	}
}

func TestTransformsArePure(t *testing.T) {
	img := testImage()
	orig := append([]uint8(nil), img.Pix...)

	for _, tr := range Catalog() {
		out := tr.Apply(img)
		require.NotNil(t, out, tr.Name)
		assert.Equal(t, img.Bounds().Dx(), out.Bounds().Dx(), tr.Name)
		assert.Equal(t, orig, img.Pix, "transform %q mutated its input", tr.Name)
	}
}

func TestInvertInverts(t *testing.T) {
	img := testImage()
	var inverted image.Image
	for _, tr := range Catalog() {
		if tr.Name == "invert" {
			inverted = tr.Apply(img)
		}
	}
	require.NotNil(t, inverted)

	r0, _, _, _ := img.At(0, 0).RGBA()
	r1, _, _, _ := inverted.At(0, 0).RGBA()
	assert.Equal(t, uint32(255), (r0>>8)+(r1>>8))
}

func TestCatalogRestartable(t *testing.T) {
	img := testImage()
	first := Catalog()
	second := Catalog()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.NotNil(t, second[i].Apply(img))
	}
}
