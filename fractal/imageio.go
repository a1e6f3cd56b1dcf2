package fractal

import (
	"image"
	"image/color"
	"image/draw"
)

// FromImage converts any image.Image into a grayscale Image using Rec.
// 601-type luma weights, matching the weighting the reference pack's own
// Luma helper uses. The image is first flattened into an *image.RGBA with
// bounds anchored at (0, 0) so arbitrary source bounds never leak through.
// size must be a power of two; src's bounds must be exactly size x size.
func FromImage(src image.Image, size uint32) (*Image, error) {
	b := src.Bounds()
	if uint32(b.Dx()) != size || uint32(b.Dy()) != size {
		return nil, newError(InputRejected, "image dimensions do not match the requested size")
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)

	img, err := NewImage(size)
	if err != nil {
		return nil, err
	}
	for y := uint32(0); y < size; y++ {
		for x := uint32(0); x < size; x++ {
			c := rgba.RGBAAt(int(x), int(y))
			img.Write(x, y, luma(c))
		}
	}
	return img, nil
}

// ToImage renders img as a standard library *image.Gray for encoding to PNG,
// BMP, or any other format the stdlib or x/image package family supports.
func ToImage(img *Image) *image.Gray {
	size := int(img.Size())
	gray := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			gray.SetGray(x, y, color.Gray{Y: img.Sample(uint32(x), uint32(y))})
		}
	}
	return gray
}

// luma returns the Rec. 601-type integer luma (0..255) of an RGBA pixel.
func luma(c color.RGBA) byte {
	return byte((299*int32(c.R) + 587*int32(c.G) + 114*int32(c.B) + 500) / 1000)
}
