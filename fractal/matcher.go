package fractal

// rangeContext bundles a source image and a fixed range-block origin with
// reusable pixel caches, avoiding a per-candidate allocation inside the
// O(locations * transforms) domain search loop (the original
// RangeContext "exists only to cut down argument passing" is flattened to
// explicit parameters here, except for these two scratch buffers, which
// are a genuine hot-loop allocation saving).
type rangeContext struct {
	image *Image
	rx0   uint32
	ry0   uint32

	domainCache []byte
	rangeCache  []byte
}

func newRangeContext(img *Image, maxRangeSize uint32) *rangeContext {
	n := maxRangeSize * maxRangeSize
	return &rangeContext{
		image:       img,
		domainCache: make([]byte, n),
		rangeCache:  make([]byte, n),
	}
}

// matchResult is what matchDomain reports for one (domain location,
// transform) candidate: the quantized scale/offset it settled on and the
// resulting quantized MSE.
type matchResult struct {
	scale  uint32
	offset uint32
	mse    float64
}

// matchDomain computes the optimal quantized brightness scale and offset
// for mapping the domain window at (dx0, dy0) under transform onto the
// fixed range block described by ctx, and returns the resulting MSE
// measured against the *quantized* mapping (quantization
// error must be included in the reported MSE so the encoder's subdivide
// decision matches what the decoder will actually render).
func matchDomain(ctx *rangeContext, rangeSize uint32, dx0, dy0 uint32, transform uint8) matchResult {
	var gh, gSum, gSqrSum, hSum uint64
	index := uint32(0)

	for y := uint32(0); y < rangeSize; y++ {
		for x := uint32(0); x < rangeSize; x++ {
			tx, ty := TransformLocation(rangeSize, x, y, transform)

			g := ctx.image.SampleDomain(dx0+2*tx, dy0+2*ty)
			h := ctx.image.Sample(ctx.rx0+x, ctx.ry0+y)

			gh += uint64(g) * uint64(h)
			gSqrSum += uint64(g) * uint64(g)
			gSum += uint64(g)
			hSum += uint64(h)

			ctx.domainCache[index] = g
			ctx.rangeCache[index] = h
			index++
		}
	}

	k := uint64(rangeSize) * uint64(rangeSize)

	var scale, offset float64
	den := float64(k)*float64(gSqrSum) - float64(gSum)*float64(gSum)
	if absFloat(den) < 1e-4 {
		scale = 0
		offset = float64(hSum) / float64(k)
	} else {
		num := float64(k)*float64(gh) - float64(gSum)*float64(hSum)
		scale = num / den
		offset = (float64(hSum) - scale*float64(gSum)) / float64(k)
	}

	var d Domain
	d.SetScale(scale)
	d.SetOffset(offset)

	var diffSum uint64
	for i := uint32(0); i < uint32(k); i++ {
		g := int32(d.TransformColor(ctx.domainCache[i]))
		h := int32(ctx.rangeCache[i])
		diff := g - h
		diffSum += uint64(diff * diff)
	}

	return matchResult{
		scale:  d.Scale,
		offset: d.Offset,
		mse:    float64(diffSum) / float64(k),
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
