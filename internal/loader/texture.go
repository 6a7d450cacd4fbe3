package loader

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/taigrr/softrender/pkg/colormodel"
)

// Texture is a decoded 8-bit-per-channel RGB raster, stored row-major
// top-to-bottom as it came off the decoder.
type Texture struct {
	Width, Height int
	Pixels        []colormodel.UColor
}

// LoadTexture decodes path via the standard library's registered image
// formats (PNG, JPEG).
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loader: decode texture %q: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]colormodel.UColor, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pixels[y*w+x] = colormodel.UColor{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
			}
		}
	}

	return &Texture{Width: w, Height: h, Pixels: pixels}, nil
}

// Sample performs nearest-neighbor lookup at floating-point (u, v),
// wrapping both axes and flipping V: v=0 addresses the bottom row of the
// image, whose rows the decoder stores top to bottom.
func (t *Texture) Sample(u, v float64) colormodel.FColor {
	if t == nil || t.Width == 0 || t.Height == 0 {
		return colormodel.White
	}

	px := wrapIndex(int(math.Floor(u*float64(t.Width))), t.Width)
	py := wrapIndex(int(math.Floor(v*float64(t.Height))), t.Height)

	row := t.Height - py - 1
	return t.Pixels[row*t.Width+px].ToFColor()
}

func wrapIndex(i, n int) int {
	return ((i % n) + n) % n
}
