package codec

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeFile reads an image file and returns it flattened to NRGBA, plus
// the detected source format name.
func DecodeFile(path string) (*image.NRGBA, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	return ToNRGBA(img), format, nil
}

// ToNRGBA flattens any image into non-premultiplied RGBA with a zero
// origin and compact stride (4*width), so Pix can be handed to the
// confusion transforms as a flat interleaved pixel buffer.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		b := n.Rect
		if b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
			return n
		}
	}
	return imaging.Clone(img)
}
