package vxeddsa

import (
	"filippo.io/edwards25519/field"
)

// montgomeryBasePoint is u = 9.
var montgomeryBasePoint = [32]byte{9}

// clampScalar applies X25519 clamping to a copy of the 32-byte seed: clear
// the three low bits, clear bit 255 and set bit 254.
func clampScalar(secret []byte) [32]byte {
	var k [32]byte
	copy(k[:], secret)
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
	return k
}

// montgomeryScalarMult returns the u-coordinate of scalar·P, where P has
// u-coordinate point. The scalar is used as given (callers clamp first) and
// bit 255 of point is ignored. The ladder runs the same 255 steps and swaps
// for every scalar.
func montgomeryScalarMult(scalar, point *[32]byte) [32]byte {
	x1, err := new(field.Element).SetBytes(point[:])
	if err != nil {
		panic(err)
	}

	x2 := new(field.Element).One()
	z2 := new(field.Element).Zero()
	x3 := new(field.Element).Set(x1)
	z3 := new(field.Element).One()

	var tmp0, tmp1, a, aa, b, bb, e, c, d, da, cb field.Element

	swap := 0
	for t := 254; t >= 0; t-- {
		kt := int(scalar[t/8]>>uint(t%8)) & 1
		swap ^= kt
		x2.Swap(x3, swap)
		z2.Swap(z3, swap)
		swap = kt

		a.Add(x2, z2)
		aa.Square(&a)
		b.Subtract(x2, z2)
		bb.Square(&b)
		e.Subtract(&aa, &bb)
		c.Add(x3, z3)
		d.Subtract(x3, z3)
		da.Multiply(&d, &a)
		cb.Multiply(&c, &b)

		tmp0.Add(&da, &cb)
		x3.Square(&tmp0)
		tmp1.Subtract(&da, &cb)
		tmp1.Square(&tmp1)
		z3.Multiply(x1, &tmp1)
		x2.Multiply(&aa, &bb)
		tmp0.Mult32(&e, montgomeryA24)
		tmp0.Add(&aa, &tmp0)
		z2.Multiply(&e, &tmp0)
	}
	x2.Swap(x3, swap)
	z2.Swap(z3, swap)

	// z2 = 0 for the identity, and Invert maps 0 to 0.
	x2.Multiply(x2, z2.Invert(z2))

	var out [32]byte
	copy(out[:], x2.Bytes())
	return out
}
