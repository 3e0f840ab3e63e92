package pixels

import (
	"bytes"
	"fmt"
	"image"

	// Register the image codecs we accept for decode requests.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// Decode decodes raw encoded image bytes (PNG, JPEG, GIF or BMP) into an
// image. The original image is kept around for the 2-D matrix path; the 1-D
// pipeline works on grayscale Buffers derived from it.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("decode image: empty input")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
