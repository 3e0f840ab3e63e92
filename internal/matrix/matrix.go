// Package matrix consumes a mature 2-D matrix (QR) decoder as an external
// collaborator. The pipeline tries this path first: it is cheaper and far
// more reliable than the 1-D heuristics.
package matrix

import (
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// Decoder is the collaborator contract consumed by the pipeline.
type Decoder interface {
	// DecodeMatrix returns the decoded payload, or false when no 2-D symbol
	// is present. Implementations must not fail the request for undecodable
	// images.
	DecodeMatrix(img image.Image) (string, bool)
}

// QRDecoder decodes QR symbols via the gozxing ZXing port.
type QRDecoder struct {
	reader gozxing.Reader
}

// NewQRDecoder returns a ready-to-use QR decoder. The zero value is not
// usable.
func NewQRDecoder() *QRDecoder {
	return &QRDecoder{reader: qrcode.NewQRCodeReader()}
}

func (d *QRDecoder) DecodeMatrix(img image.Image) (string, bool) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", false
	}
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := d.reader.Decode(bmp, hints)
	if err != nil || result == nil {
		return "", false
	}
	return result.GetText(), true
}
