// Package imageio writes render output: a PNG color image and an
// optional raw depth dump.
package imageio

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/taigrr/softrender/pkg/colormodel"
	"github.com/taigrr/softrender/pkg/resource"
)

// WritePNG encodes a UColor render target as an 8-bit-per-channel RGB PNG.
func WritePNG(path string, width, height int, color *resource.Resource[colormodel.UColor]) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %q: %w", path, err)
	}
	defer f.Close()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.At(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = 255
		}
	}

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("imageio: encode %q: %w", path, err)
	}
	return nil
}

// WriteDepth writes the depth buffer as headerless little-endian f32,
// row-major.
func WriteDepth(path string, width, height int, depth *resource.Resource[float64]) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %q: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, 4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(depth.At(x, y))))
			if _, err := f.Write(buf); err != nil {
				return fmt.Errorf("imageio: write %q: %w", path, err)
			}
		}
	}
	return nil
}
