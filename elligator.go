package vxeddsa

import (
	"filippo.io/edwards25519/field"
)

// elligator2 maps a field element r, given as 32 little-endian bytes with
// the top bit cleared, to the u-coordinate of a point on Curve25519, using
// the non-square 2:
//
//	u1 = -A / (1 + 2r²)
//	w  = u1³ + A·u1² + u1
//	u  = u1 if w is square, else -A - u1
//
// 1 + 2r² is never zero because -1/2 is not a square mod p. Both branches
// are computed and the result is selected in constant time.
func elligator2(r []byte) *field.Element {
	fr, err := new(field.Element).SetBytes(r)
	if err != nil {
		panic(err)
	}

	den := new(field.Element).Square(fr)
	den.Add(den, den)
	den.Add(den, feOne)

	u1 := new(field.Element).Invert(den)
	u1.Multiply(u1, feMinusA)

	// w = u1 · (u1² + A·u1 + 1)
	w := new(field.Element).Square(u1)
	au := new(field.Element).Multiply(feA, u1)
	w.Add(w, au)
	w.Add(w, feOne)
	w.Multiply(w, u1)

	u2 := new(field.Element).Subtract(feMinusA, u1)

	return new(field.Element).Select(u1, u2, feIsSquare(w))
}

// isMontgomeryU reports whether u is the u-coordinate of a point on
// Curve25519 (rather than its quadratic twist).
func isMontgomeryU(u *field.Element) bool {
	w := new(field.Element).Square(u)
	au := new(field.Element).Multiply(feA, u)
	w.Add(w, au)
	w.Add(w, feOne)
	w.Multiply(w, u)
	return feIsSquare(w) == 1
}
