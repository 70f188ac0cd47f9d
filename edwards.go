package vxeddsa

import (
	"crypto/subtle"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
)

var identityPoint = edwards25519.NewIdentityPoint()

// decompressPoint decodes a 32-byte Edwards encoding. Unlike
// edwards25519.Point.SetBytes it rejects non-canonical encodings: an
// unreduced y, or x = 0 with the sign bit set.
func decompressPoint(b []byte) (*edwards25519.Point, bool) {
	if len(b) != PointSize {
		return nil, false
	}
	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return nil, false
	}
	if subtle.ConstantTimeCompare(p.Bytes(), b) != 1 {
		return nil, false
	}
	return p, true
}

// decompressPrimeOrderPoint decodes b and additionally requires the point to
// be a non-identity element of the prime-order subgroup.
func decompressPrimeOrderPoint(b []byte) (*edwards25519.Point, bool) {
	p, ok := decompressPoint(b)
	if !ok {
		return nil, false
	}
	if isIdentity(p) || !isTorsionFree(p) {
		return nil, false
	}
	return p, true
}

func isIdentity(p *edwards25519.Point) bool {
	return p.Equal(identityPoint) == 1
}

// isSmallOrder reports whether 8·p is the identity.
func isSmallOrder(p *edwards25519.Point) bool {
	return isIdentity(new(edwards25519.Point).MultByCofactor(p))
}

// isTorsionFree reports whether l·p is the identity, i.e. p lies in the
// prime-order subgroup.
func isTorsionFree(p *edwards25519.Point) bool {
	lp := new(edwards25519.Point).ScalarMult(minusOneScalar, p)
	lp.Add(lp, p)
	return isIdentity(lp)
}

// edwardsYFromMontgomery maps a Montgomery u-coordinate to the Edwards
// y-coordinate y = (u - 1) / (u + 1). u = -1 maps to y = 0.
func edwardsYFromMontgomery(u *field.Element) *field.Element {
	num := new(field.Element).Subtract(u, feOne)
	den := new(field.Element).Add(u, feOne)
	return num.Multiply(num, den.Invert(den))
}

// edwardsFromY builds the point with the given y-coordinate whose x has the
// requested sign bit.
func edwardsFromY(y *field.Element, sign int) (*edwards25519.Point, bool) {
	enc := y.Bytes()
	enc[31] |= byte(sign&1) << 7
	p, err := new(edwards25519.Point).SetBytes(enc)
	if err != nil {
		return nil, false
	}
	return p, true
}

// montgomeryToEdwards applies the birational map to a canonical Montgomery
// u-coordinate and picks the Edwards point whose sign bit equals sign.
func montgomeryToEdwards(u []byte, sign int) (*edwards25519.Point, bool) {
	fe, ok := feFromCanonicalBytes(u)
	if !ok {
		return nil, false
	}
	return edwardsFromY(edwardsYFromMontgomery(fe), sign)
}

// edwardsSignBit returns the sign bit of the compressed encoding of p.
func edwardsSignBit(p *edwards25519.Point) int {
	return int(p.Bytes()[31] >> 7)
}
