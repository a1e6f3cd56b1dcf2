package fractal

import (
	"bytes"
	"reflect"
	"testing"
)

func compressedFixture(t *testing.T) *Compressed {
	t.Helper()
	img := constantImage(t, 32, 128)
	settings := Settings{MinRange: 8, MaxRange: 32, MSEMultiplier: 1.0}
	c, err := Compress(img, settings)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	return c
}

func TestSaveLoad_RoundTripIsByteIdentical(t *testing.T) {
	c := compressedFixture(t)

	var buf bytes.Buffer
	if err := Save(c, &buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	savedBytes := append([]byte(nil), buf.Bytes()...)

	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Size != c.Size {
		t.Errorf("loaded.Size = %d, want %d", loaded.Size, c.Size)
	}
	if loaded.Quadtree.Len() != c.Quadtree.Len() {
		t.Errorf("loaded.Quadtree.Len() = %d, want %d", loaded.Quadtree.Len(), c.Quadtree.Len())
	}
	if !reflect.DeepEqual(loaded.Domains, c.Domains) {
		t.Errorf("loaded.Domains != c.Domains")
	}
	if loaded.Settings != c.Settings {
		t.Errorf("loaded.Settings = %+v, want %+v", loaded.Settings, c.Settings)
	}

	var buf2 bytes.Buffer
	if err := Save(loaded, &buf2); err != nil {
		t.Fatalf("Save (reload): %v", err)
	}
	if !bytes.Equal(savedBytes, buf2.Bytes()) {
		t.Errorf("save(load(save(x))) did not reproduce the original bytes")
	}
}

func TestLoad_RejectsMagicMismatch(t *testing.T) {
	c := compressedFixture(t)
	var buf bytes.Buffer
	if err := Save(c, &buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	corrupt := buf.Bytes()
	corrupt[0], corrupt[1], corrupt[2], corrupt[3] = 0, 0, 0, 0

	_, err := Load(bytes.NewReader(corrupt))
	if err == nil {
		t.Fatalf("Load: expected error on magic mismatch")
	}
	fe, ok := AsError(err)
	if !ok || fe.Kind != CorruptFile {
		t.Fatalf("Load error = %v, want a CorruptFile *fractal.Error", err)
	}
}

func TestLoad_RejectsZeroDomains(t *testing.T) {
	c := compressedFixture(t)
	c.Domains = nil
	var buf bytes.Buffer
	if err := Save(c, &buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err := Load(&buf)
	if err == nil {
		t.Fatalf("Load: expected error on zero domains")
	}
	fe, ok := AsError(err)
	if !ok || fe.Kind != CorruptFile {
		t.Fatalf("Load error = %v, want a CorruptFile *fractal.Error", err)
	}
}

func TestLoad_RejectsNonPowerOfTwoImageSize(t *testing.T) {
	c := compressedFixture(t)
	c.Size = 33
	var buf bytes.Buffer
	if err := Save(c, &buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err := Load(&buf)
	if err == nil {
		t.Fatalf("Load: expected error on non-power-of-two image size")
	}
	fe, ok := AsError(err)
	if !ok || fe.Kind != CorruptFile {
		t.Fatalf("Load error = %v, want a CorruptFile *fractal.Error", err)
	}
}

func TestLoad_RejectsShortRead(t *testing.T) {
	c := compressedFixture(t)
	var buf bytes.Buffer
	if err := Save(c, &buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	truncated := buf.Bytes()[:10]
	_, err := Load(bytes.NewReader(truncated))
	if err == nil {
		t.Fatalf("Load: expected error on short read")
	}
	fe, ok := AsError(err)
	if !ok || fe.Kind != IoFailure {
		t.Fatalf("Load error = %v, want an IoFailure *fractal.Error", err)
	}
}
