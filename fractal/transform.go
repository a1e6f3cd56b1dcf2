package fractal

// TransformLocation maps a position (x, y) inside a range block of side
// rangeSize to the domain-side position under one of the eight dihedral
// (D4) isometries selected by t (0..7). Bit 0 of t selects a horizontal
// flip applied before the rotation selected by bits 1-2. This function is
// identical in the encoder and the decoder — it defines the isometry that
// maps the downsampled domain grid onto the range.
func TransformLocation(rangeSize uint32, x, y uint32, t uint8) (tx, ty uint32) {
	m := rangeSize - 1

	if t&1 != 0 {
		x = m - x
	}

	switch t >> 1 {
	case 0:
		tx, ty = x, y
	case 1:
		tx, ty = m-y, x
	case 2:
		tx, ty = m-x, m-y
	case 3:
		tx, ty = y, m-x
	}
	return
}
