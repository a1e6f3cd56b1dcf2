package fractal

import (
	"encoding/binary"
	"io"
)

// containerMagic is the little-endian packing of the four ASCII bytes
// 'i', 'c', 'f', ' ', matching the original C++ multi-char
// literal HEADER_MAGIC = 'icf '.
const containerMagic uint32 = uint32('i') | uint32('c')<<8 | uint32('f')<<16 | uint32(' ')<<24

// Save writes c's container format to w: the fixed header, the quadtree
// payload as ceil(B/32) little-endian words (LSB-first within each word),
// and the packed domain table, in that order.
func Save(c *Compressed, w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, containerMagic); err != nil {
		return wrapError(IoFailure, "write magic", err)
	}
	if err := binary.Write(w, binary.LittleEndian, c.Size); err != nil {
		return wrapError(IoFailure, "write image_size", err)
	}
	if err := binary.Write(w, binary.LittleEndian, c.Quadtree.Len()); err != nil {
		return wrapError(IoFailure, "write quadtree_bits", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(c.Domains))); err != nil {
		return wrapError(IoFailure, "write num_domains", err)
	}

	if err := binary.Write(w, binary.LittleEndian, c.Settings.MSEMultiplier); err != nil {
		return wrapError(IoFailure, "write mse_multiplier", err)
	}
	settingsTail := [4]byte{c.Settings.MinRange, c.Settings.MaxRange, 0, 0} // min_range, max_range, flags, pad
	if _, err := w.Write(settingsTail[:]); err != nil {
		return wrapError(IoFailure, "write settings tail", err)
	}

	for _, word := range c.Quadtree.Words() {
		if err := binary.Write(w, binary.LittleEndian, word); err != nil {
			return wrapError(IoFailure, "write quadtree payload", err)
		}
	}

	for i := range c.Domains {
		if err := binary.Write(w, binary.LittleEndian, c.Domains[i].pack()); err != nil {
			return wrapError(IoFailure, "write domain table", err)
		}
	}

	return nil
}

// Load reads a container from r, validating the header the way the format
// requires: magic match, a power-of-two image size, a non-zero
// domain count, and sane min/max range bounds. Any validation failure
// leaves no partially-populated Compressed behind — Load either returns a
// complete, valid result or an error and a nil Compressed.
func Load(r io.Reader) (*Compressed, error) {
	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, wrapError(IoFailure, "read magic", err)
	}
	if magic != containerMagic {
		return nil, newError(CorruptFile, "magic mismatch")
	}

	var imageSize, quadtreeBits, numDomains uint32
	if err := binary.Read(r, binary.LittleEndian, &imageSize); err != nil {
		return nil, wrapError(IoFailure, "read image_size", err)
	}
	if !isPowerOfTwo(imageSize) {
		return nil, newError(CorruptFile, "image_size is not a power of two")
	}
	if err := binary.Read(r, binary.LittleEndian, &quadtreeBits); err != nil {
		return nil, wrapError(IoFailure, "read quadtree_bits", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &numDomains); err != nil {
		return nil, wrapError(IoFailure, "read num_domains", err)
	}
	if numDomains == 0 {
		return nil, newError(CorruptFile, "num_domains is zero")
	}

	var mseMultiplier float32
	if err := binary.Read(r, binary.LittleEndian, &mseMultiplier); err != nil {
		return nil, wrapError(IoFailure, "read mse_multiplier", err)
	}
	var settingsTail [4]byte
	if _, err := io.ReadFull(r, settingsTail[:]); err != nil {
		return nil, wrapError(IoFailure, "read settings tail", err)
	}

	settings := Settings{
		MinRange:      settingsTail[0],
		MaxRange:      settingsTail[1],
		MSEMultiplier: mseMultiplier,
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}

	quadtreeWords := (quadtreeBits + 31) / 32
	words := make([]uint32, quadtreeWords)
	for i := range words {
		if err := binary.Read(r, binary.LittleEndian, &words[i]); err != nil {
			return nil, wrapError(IoFailure, "read quadtree payload", err)
		}
	}

	domains := make([]Domain, numDomains)
	for i := range domains {
		var w uint32
		if err := binary.Read(r, binary.LittleEndian, &w); err != nil {
			return nil, wrapError(IoFailure, "read domain table", err)
		}
		domains[i] = unpackDomain(w)
	}

	c := &Compressed{
		Size:     imageSize,
		SizeBits: bitLength(imageSize) - 1,
		SizeMask: imageSize - 1,
		Settings: settings,
		Quadtree: loadQuadtreeCode(words, quadtreeBits),
		Domains:  domains,
	}
	return c, nil
}
