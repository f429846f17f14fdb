package shape

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
)

// Digest is a fixed 256-bit content hash.
type Digest [32]byte

// Combine folds digests into one: H(first || rest...). Callers must feed
// deps in a deterministic order.
func Combine(first Digest, rest ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(first[:])
	for _, d := range rest {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Digest computes the content hash of a shape: identity, flags, case mode,
// members with canonical classification strings, requested traits and
// declared signatures. Identical shapes digest identically across processes,
// so the digest doubles as the memo and disk-cache key.
func (s *TypeShape) Digest(in *Interner) Digest {
	h := sha256.New()
	writeStr(h, s.Ref.Namespace)
	writeStr(h, s.Ref.Name)
	writeByte(h, byte(s.Kind))
	writeByte(h, byte(s.Tag))
	writeByte(h, byte(s.Case))
	writeByte(h, boolByte(s.Abstract))
	writeByte(h, boolByte(s.OpenGeneric))
	writeByte(h, boolByte(s.NonRetargetable))
	writeByte(h, boolByte(s.CollapseAbsent))

	writeLen(h, len(s.Members))
	for _, m := range s.Members {
		writeStr(h, m.Name)
		writeByte(h, byte(m.Storage))
		writeStr(h, in.CanonicalString(m.Class))
	}

	for _, t := range s.Requested.List() {
		writeByte(h, byte(t))
	}
	writeByte(h, 0xff)

	writeLen(h, len(s.Declared))
	for _, d := range s.Declared {
		writeStr(h, d.String())
	}

	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func writeStr(h hash.Hash, s string) {
	writeLen(h, len(s))
	_, _ = h.Write([]byte(s))
}

func writeLen(h hash.Hash, n int) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(n))
	_, _ = h.Write(buf[:])
}

func writeByte(h hash.Hash, b byte) {
	_, _ = h.Write([]byte{b})
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
