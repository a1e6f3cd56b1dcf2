package fractal

// DefaultIterations is the fixed iteration budget used when Decompress is
// not given an explicit count. 40 iterations suffices for convergence with
// the default settings; the reference uses 100.
const DefaultIterations = 100

// DecompressOption configures a Decompress call.
type DecompressOption func(*decompressOptions)

type decompressOptions struct {
	iterations int
}

// WithIterations overrides the fixed iteration count the iterative decoder
// replays the quadtree/domain mapping set for.
func WithIterations(n int) DecompressOption {
	return func(o *decompressOptions) { o.iterations = n }
}

// Decompress reconstructs an approximation of the original image from a
// Compressed state by iterating the IFS mapping set from a zeroed seed
// image for a fixed number of iterations. It does not converge-check; the
// fixed iteration budget is the only guarantee.
func Decompress(c *Compressed, opts ...DecompressOption) (*Image, error) {
	if len(c.Domains) == 0 {
		return nil, newError(Empty, "no domains loaded")
	}

	o := decompressOptions{iterations: DefaultIterations}
	for _, opt := range opts {
		opt(&o)
	}

	var images [2]*Image
	for i := range images {
		img, err := NewImage(c.Size)
		if err != nil {
			return nil, err
		}
		images[i] = img
	}

	maxRange := uint32(c.Settings.MaxRange)
	minRange := uint32(c.Settings.MinRange)

	current := 0
	for i := 0; i < o.iterations; i++ {
		current ^= 1
		src := images[current^1]
		dst := images[current]

		c.Quadtree.ResetCursor()
		domainIndex := 0

		for ry0 := uint32(0); ry0 < c.Size; ry0 += maxRange {
			for rx0 := uint32(0); rx0 < c.Size; rx0 += maxRange {
				decodeRange(c, src, dst, rx0, ry0, maxRange, minRange, &domainIndex)
			}
		}
	}

	return images[current], nil
}

// decodeRange mirrors partitionRange's traversal exactly: it reads a
// subdivide bit only where rangeSize > minRange (the encoder only wrote
// one there), recursing TL->TR->BL->BR on a set bit, or consuming the next
// domain in emission order and painting the range from it otherwise.
func decodeRange(c *Compressed, src, dst *Image, rx0, ry0, rangeSize, minRange uint32, domainIndex *int) {
	subdivide := false
	if rangeSize > minRange {
		subdivide = c.Quadtree.Get()
	}

	if subdivide {
		half := rangeSize / 2
		decodeRange(c, src, dst, rx0, ry0, half, minRange, domainIndex)
		decodeRange(c, src, dst, rx0+half, ry0, half, minRange, domainIndex)
		decodeRange(c, src, dst, rx0, ry0+half, half, minRange, domainIndex)
		decodeRange(c, src, dst, rx0+half, ry0+half, half, minRange, domainIndex)
		return
	}

	domain := c.Domains[*domainIndex]
	*domainIndex++

	b := c.SizeBits
	domainScaling := uint32(0)
	if b > domainLocationBits {
		domainScaling = b - domainLocationBits
	}

	for y := uint32(0); y < rangeSize; y++ {
		for x := uint32(0); x < rangeSize; x++ {
			tx, ty := TransformLocation(rangeSize, x, y, domain.Transform)

			dx := (domain.X << domainScaling) + 2*tx
			dy := (domain.Y << domainScaling) + 2*ty

			g := src.SampleDomain(dx, dy)
			dst.Write(rx0+x, ry0+y, domain.TransformColor(g))
		}
	}
}
