package vxeddsa

import (
	"crypto/sha512"

	"filippo.io/edwards25519"
)

// hashTag selects one of the domain-separated hash functions hash_i.
type hashTag byte

const (
	tagHashToPoint hashTag = 2
	tagNonce       hashTag = 3
	tagChallenge   hashTag = 4
	tagVRF         hashTag = 5
)

// hashPrefix is the 32-byte little-endian encoding of 2^256 - 1 - i. No
// curve point or scalar encoding starts with it, so tagged inputs never
// collide with plain Ed25519 hashing.
func hashPrefix(tag hashTag) [32]byte {
	var prefix [32]byte
	for i := range prefix {
		prefix[i] = 0xFF
	}
	prefix[0] = 0xFF - byte(tag)
	return prefix
}

// hashI computes SHA-512(prefix_i || parts...).
func hashI(tag hashTag, parts ...[]byte) [sha512.Size]byte {
	hasher := sha512.New()
	prefix := hashPrefix(tag)
	hasher.Write(prefix[:])
	for _, part := range parts {
		hasher.Write(part)
	}
	var out [sha512.Size]byte
	hasher.Sum(out[:0])
	return out
}

// hashToScalar reduces hash_i(parts...) modulo l.
func hashToScalar(tag hashTag, parts ...[]byte) *edwards25519.Scalar {
	digest := hashI(tag, parts...)
	s := scalarFromWide(digest[:])
	ZeroizeBytes(digest[:])
	return s
}

// hashToPoint derives the VRF base point Bv from the Edwards public key and
// the message. The result is cofactor-cleared, so it lies in the prime-order
// subgroup; it is the identity only with negligible probability and callers
// must reject that case.
func hashToPoint(publicKey, message []byte) (*edwards25519.Point, error) {
	digest := hashI(tagHashToPoint, publicKey, message)

	var r [32]byte
	copy(r[:], digest[:32])
	sign := int(r[31] >> 7)
	r[31] &= 0x7F

	u := elligator2(r[:])
	p, ok := edwardsFromY(edwardsYFromMontgomery(u), sign)
	if !ok {
		return nil, ErrDegenerateBasePoint.WithDetails("elligator output did not decompress")
	}
	return p.MultByCofactor(p), nil
}
