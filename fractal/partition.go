package fractal

// adaptiveThresholdFactor scales the MSE threshold passed to each
// recursion level. Kept flat at 1.0 in the canonical
// design; varying it would change encoder output but the decoder's bit
// must never change which nodes the decoder reads a bit for, since that
// depends only on range-size comparisons, not on the threshold itself.
const adaptiveThresholdFactor = 1.0

// partitionRange is the adaptive quadtree range partitioner. It recursively
// decides whether the range block rooted at (rx0, ry0) with side rangeSize
// is adequately approximated by its best
// domain mapping, or must be subdivided into four quadrants, appending a
// subdivide bit to qc (only when the node could possibly be split) and a
// Domain to domains for every leaf, in pre-order TL->TR->BL->BR traversal.
func partitionRange(ctx *rangeContext, qc *QuadtreeCode, domains *[]Domain, rx0, ry0, rangeSize uint32, threshold float64, minRange uint32) {
	ctx.rx0 = rx0
	ctx.ry0 = ry0

	domain, mse := searchDomain(ctx, rangeSize)

	subdivide := false
	if rangeSize > minRange {
		subdivide = mse > threshold
		qc.Push(subdivide)
	}

	if subdivide {
		half := rangeSize / 2
		childThreshold := threshold * adaptiveThresholdFactor

		partitionRange(ctx, qc, domains, rx0, ry0, half, childThreshold, minRange)
		partitionRange(ctx, qc, domains, rx0+half, ry0, half, childThreshold, minRange)
		partitionRange(ctx, qc, domains, rx0, ry0+half, half, childThreshold, minRange)
		partitionRange(ctx, qc, domains, rx0+half, ry0+half, half, childThreshold, minRange)
		return
	}

	*domains = append(*domains, domain)
}
