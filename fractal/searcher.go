package fractal

// searchDomain brute-force scans every candidate domain location and every
// D4 transform for the range block fixed in ctx, returning the best
// mapping found and its MSE. Iteration order is y outer, x inner, t
// innermost, and ties keep the first mapping seen — both are required to
// make encoder output deterministic.
func searchDomain(ctx *rangeContext, rangeSize uint32) (Domain, float64) {
	img := ctx.image
	b := img.SizeBits()

	domainScaling := uint32(0)
	if b > domainLocationBits {
		domainScaling = b - domainLocationBits
	}
	maxLoc := img.Size()
	if maxLoc > (1 << domainLocationBits) {
		maxLoc = 1 << domainLocationBits
	}

	var best Domain
	bestMSE := -1.0

	for dy := uint32(0); dy < maxLoc; dy++ {
		dy0 := dy << domainScaling
		for dx := uint32(0); dx < maxLoc; dx++ {
			dx0 := dx << domainScaling
			for t := uint8(0); t < 8; t++ {
				res := matchDomain(ctx, rangeSize, dx0, dy0, t)
				if bestMSE < 0 || res.mse < bestMSE {
					bestMSE = res.mse
					best = Domain{
						X:         dx,
						Y:         dy,
						Transform: t,
						Offset:    res.offset,
						Scale:     res.scale,
					}
				}
			}
		}
	}

	return best, bestMSE
}
