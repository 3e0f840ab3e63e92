package matrix

import (
	"image"
	"testing"

	qrgen "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMatrixQR(t *testing.T) {
	code, err := qrgen.New("HELLO", qrgen.Medium)
	require.NoError(t, err)
	img := code.Image(256)

	payload, ok := NewQRDecoder().DecodeMatrix(img)
	require.True(t, ok)
	assert.Equal(t, "HELLO", payload)
}

func TestDecodeMatrixNoSymbol(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	_, ok := NewQRDecoder().DecodeMatrix(img)
	assert.False(t, ok)
}
