package fractal

import "fmt"

// Image is a square, single-channel (grayscale) pixel grid whose side is a
// power of two. It supports wrap-around sampling and the 2x2 box-filtered
// "domain" sample used by both the encoder and the decoder.
type Image struct {
	data     []byte
	size     uint32
	sizeBits uint32
	sizeMask uint32
}

// NewImage allocates a zeroed Image of the given side, which must be a
// power of two no smaller than 16 (2^4).
func NewImage(size uint32) (*Image, error) {
	img := &Image{}
	if err := img.Resize(size); err != nil {
		return nil, err
	}
	return img, nil
}

// Resize resets the image contents to zero and reshapes it to size x size.
func (img *Image) Resize(size uint32) error {
	if size == 0 || (size&(size-1)) != 0 {
		return newError(InputRejected, fmt.Sprintf("image size %d is not a power of two", size))
	}
	if size < 16 {
		return newError(InputRejected, fmt.Sprintf("image size %d is smaller than 16", size))
	}
	img.size = size
	img.sizeBits = bitLength(size) - 1
	img.sizeMask = size - 1
	img.data = make([]byte, size*size)
	return nil
}

// Size returns the image side N.
func (img *Image) Size() uint32 { return img.size }

// SizeBits returns b such that N = 2^b.
func (img *Image) SizeBits() uint32 { return img.sizeBits }

// SizeMask returns N-1, used for wrap-around indexing.
func (img *Image) SizeMask() uint32 { return img.sizeMask }

// Sample reads the pixel at (x, y); both coordinates must be in [0, N).
func (img *Image) Sample(x, y uint32) byte {
	return img.data[y*img.size+x]
}

// SampleWrapped reads the pixel at (x mod N, y mod N).
func (img *Image) SampleWrapped(x, y uint32) byte {
	x &= img.sizeMask
	y &= img.sizeMask
	return img.data[y*img.size+x]
}

// SampleDomain performs the box-filtered 2x2 read that is the only sampler
// ever used to read the domain side during encode and decode. The +1 before
// the /4 is a mandatory rounding bias that must match bit-for-bit between
// encoder and decoder.
func (img *Image) SampleDomain(x, y uint32) byte {
	mask := img.sizeMask
	size := img.size

	xa := x & mask
	xb := (x + 1) & mask
	ya := y & mask
	yb := (y + 1) & mask

	sum := uint32(img.data[ya*size+xa]) +
		uint32(img.data[ya*size+xb]) +
		uint32(img.data[yb*size+xa]) +
		uint32(img.data[yb*size+xb]) + 1

	return byte(sum / 4)
}

// Write sets the pixel at (x, y).
func (img *Image) Write(x, y uint32, v byte) {
	img.data[y*img.size+x] = v
}

// Pixels exposes the backing row-major byte buffer for bulk load/save.
func (img *Image) Pixels() []byte { return img.data }

// bitLength returns 1 + floor(log2(v)) for v > 0 (i.e. the position of the
// highest set bit, 1-indexed) matching the original C++ "while (i >>= 1)
// ++bits" loop used to recover SizeBits from a power-of-two N.
func bitLength(v uint32) uint32 {
	var n uint32
	for v > 0 {
		v >>= 1
		n++
	}
	return n
}
