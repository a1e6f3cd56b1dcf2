package fractal

import "testing"

func TestDomain_PackUnpackRoundTrip(t *testing.T) {
	cases := []Domain{
		{X: 0, Y: 0, Transform: 0, Offset: 0, Scale: 0},
		{X: 63, Y: 63, Transform: 7, Offset: domainOffsetMax, Scale: domainScaleMax},
		{X: 17, Y: 41, Transform: 3, Offset: 64, Scale: 9},
	}
	for _, d := range cases {
		w := d.pack()
		got := unpackDomain(w)
		if got != d {
			t.Errorf("pack/unpack round trip: got %+v, want %+v (word=%#x)", got, d, w)
		}
	}
}

func TestDomain_PackReservesTopBit(t *testing.T) {
	d := Domain{X: 63, Y: 63, Transform: 7, Offset: domainOffsetMax, Scale: domainScaleMax}
	w := d.pack()
	if w&(1<<31) != 0 {
		t.Fatalf("pack() set reserved bit 31: word=%#x", w)
	}
}

func TestDomain_ScaleOffsetRoundTrip(t *testing.T) {
	var d Domain
	d.SetScale(0.5)
	d.SetOffset(10)

	if got := d.GetScale(); absFloat(got-0.5) > 0.02 {
		t.Errorf("GetScale() = %f, want ~0.5", got)
	}
	if got := d.GetOffset(); absFloat(got-10) > 4 {
		t.Errorf("GetOffset() = %f, want ~10", got)
	}
}

func TestDomain_TransformColorIdentity(t *testing.T) {
	var d Domain
	d.SetScale(1.0)
	d.SetOffset(0)
	for _, c := range []byte{0, 1, 127, 128, 254, 255} {
		got := d.TransformColor(c)
		if absFloat(float64(got)-float64(c)) > 4 {
			t.Errorf("TransformColor(%d) with identity scale/offset = %d, want ~%d", c, got, c)
		}
	}
}

func TestDomain_TransformColorClamps(t *testing.T) {
	var d Domain
	d.SetScale(1.0)
	d.SetOffset(256) // maximum positive offset, should saturate at 255
	if got := d.TransformColor(255); got != 255 {
		t.Errorf("TransformColor(255) with large positive offset = %d, want 255", got)
	}

	d.SetOffset(-256)
	if got := d.TransformColor(0); got != 0 {
		t.Errorf("TransformColor(0) with large negative offset = %d, want 0", got)
	}
}
