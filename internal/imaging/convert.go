// Package imaging converts pool images into browser-displayable PNG.
//
// Browsers do not render TIFF, which is the native format of much of the
// lab's imaging output. ToPNG decodes any registered format and re-encodes
// it as PNG for the comparison page.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/tiff"
)

// ToPNG decodes the image from r and returns it re-encoded as PNG bytes.
func ToPNG(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
