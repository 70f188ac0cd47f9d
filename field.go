package vxeddsa

import (
	"crypto/subtle"
	"encoding/binary"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
)

// Sizes of the fixed byte layouts crossing the package boundary.
const (
	ScalarSize    = 32
	PointSize     = 32
	SecretSize    = 32
	PublicKeySize = 32
	NonceSize     = 32
	VRFSize       = 32
	SignatureSize = PointSize + 2*ScalarSize
)

// montgomeryA is the coefficient A of the Montgomery curve v² = u³ + Au² + u.
const montgomeryA = 486662

// a24 = (A - 2) / 4, used by the ladder.
const montgomeryA24 = 121665

var (
	feOne      = new(field.Element).One()
	feA        = feFromUint64(montgomeryA)
	feMinusA   = new(field.Element).Negate(feA)
	scalarZero = edwards25519.NewScalar()

	// minusOneScalar is l - 1. Multiplying by it and adding the point back
	// yields l·P without ever reducing l to zero.
	minusOneScalar = new(edwards25519.Scalar).Negate(mustScalar(1))
)

func feFromUint64(x uint64) *field.Element {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:8], x)
	fe, err := new(field.Element).SetBytes(b[:])
	if err != nil {
		panic(err)
	}
	return fe
}

func mustScalar(x uint64) *edwards25519.Scalar {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:8], x)
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		panic(err)
	}
	return s
}

// feFromCanonicalBytes decodes a field element, rejecting encodings with the
// top bit set and unreduced values in [p, 2^255).
func feFromCanonicalBytes(b []byte) (*field.Element, bool) {
	if len(b) != 32 {
		return nil, false
	}
	fe, err := new(field.Element).SetBytes(b)
	if err != nil {
		return nil, false
	}
	if subtle.ConstantTimeCompare(fe.Bytes(), b) != 1 {
		return nil, false
	}
	return fe, true
}

// feIsSquare returns 1 if x is a square mod p (zero included), else 0.
func feIsSquare(x *field.Element) int {
	_, wasSquare := new(field.Element).SqrtRatio(x, feOne)
	return wasSquare
}

// scalarFromWide reduces a 64-byte hash output modulo l.
func scalarFromWide(wide []byte) *edwards25519.Scalar {
	s, err := edwards25519.NewScalar().SetUniformBytes(wide)
	if err != nil {
		// Only reachable with a wrong input length.
		panic(err)
	}
	return s
}

// scalarIsZero returns 1 if s ≡ 0 mod l, else 0.
func scalarIsZero(s *edwards25519.Scalar) int {
	return s.Equal(scalarZero)
}

// scalarSelect returns a if cond == 1 and b if cond == 0 without branching
// on cond.
func scalarSelect(a, b *edwards25519.Scalar, cond int) *edwards25519.Scalar {
	out := b.Bytes()
	subtle.ConstantTimeCopy(cond, out, a.Bytes())
	s, err := edwards25519.NewScalar().SetCanonicalBytes(out)
	if err != nil {
		panic(err)
	}
	ZeroizeBytes(out)
	return s
}
