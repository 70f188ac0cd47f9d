package vxeddsa

import (
	"filippo.io/edwards25519"
)

// Signature is a VXEdDSA signature V || h || s. V is the compressed VRF
// point a·Bv, h the Fiat-Shamir challenge and s the response.
type Signature struct {
	V [PointSize]byte
	H [ScalarSize]byte
	S [ScalarSize]byte
}

// ParseSignature splits a 96-byte signature. It checks only the length;
// the fields are validated by verification.
func ParseSignature(b []byte) (*Signature, error) {
	if len(b) != SignatureSize {
		return nil, ErrInvalidSignatureLength.WithContext("length", len(b))
	}
	sig := &Signature{}
	copy(sig.V[:], b[:PointSize])
	copy(sig.H[:], b[PointSize:PointSize+ScalarSize])
	copy(sig.S[:], b[PointSize+ScalarSize:])
	return sig, nil
}

// Bytes returns the 96-byte encoding.
func (s *Signature) Bytes() []byte {
	out := make([]byte, 0, SignatureSize)
	out = append(out, s.V[:]...)
	out = append(out, s.H[:]...)
	return append(out, s.S[:]...)
}

// vrfExtract clears the cofactor of V and hashes it into the VRF output.
func vrfExtract(V *edwards25519.Point) [VRFSize]byte {
	cleared := new(edwards25519.Point).MultByCofactor(V)
	digest := hashI(tagVRF, cleared.Bytes())
	var v [VRFSize]byte
	copy(v[:], digest[:VRFSize])
	return v
}

// computeChallenge is h = hash_4(R || Rv || A || Bv || V || M) mod l.
func computeChallenge(R, Rv, A, Bv, V *edwards25519.Point, message []byte) *edwards25519.Scalar {
	return hashToScalar(tagChallenge, R.Bytes(), Rv.Bytes(), A.Bytes(), Bv.Bytes(), V.Bytes(), message)
}

// checkNonce rejects a nonce that reduced to zero.
func checkNonce(r *edwards25519.Scalar) error {
	if scalarIsZero(r) == 1 {
		return ErrDegenerateNonce
	}
	return nil
}

// signVXEdDSA signs message with the secret seed k and the 32-byte random
// value z, returning the signature and the VRF output.
func signVXEdDSA(k, message, z []byte) ([SignatureSize]byte, [VRFSize]byte, error) {
	var sig [SignatureSize]byte
	var vrf [VRFSize]byte

	if len(z) != NonceSize {
		return sig, vrf, ErrInvalidNonceLength.WithContext("length", len(z))
	}

	kp, err := calculateKeyPair(k)
	if err != nil {
		return sig, vrf, err
	}
	defer kp.zeroize()

	Bv, err := hashToPoint(kp.A.Bytes(), message)
	if err != nil {
		return sig, vrf, err
	}
	if isIdentity(Bv) {
		return sig, vrf, ErrDegenerateBasePoint
	}

	V := new(edwards25519.Point).ScalarMult(kp.a, Bv)
	vrf = vrfExtract(V)

	aBytes := kp.a.Bytes()
	r := hashToScalar(tagNonce, aBytes, z, message)
	ZeroizeBytes(aBytes)
	defer r.Set(scalarZero)
	if err := checkNonce(r); err != nil {
		return sig, [VRFSize]byte{}, err
	}

	R := new(edwards25519.Point).ScalarBaseMult(r)
	Rv := new(edwards25519.Point).ScalarMult(r, Bv)

	h := computeChallenge(R, Rv, kp.A, Bv, V, message)
	s := edwards25519.NewScalar().MultiplyAdd(h, kp.a, r)

	copy(sig[:PointSize], V.Bytes())
	copy(sig[PointSize:PointSize+ScalarSize], h.Bytes())
	copy(sig[PointSize+ScalarSize:], s.Bytes())
	return sig, vrf, nil
}

// verifyVXEdDSA checks signature against the Montgomery public key u and
// message. On success it returns the VRF output; on failure the returned
// error says why, and the output is zero.
func verifyVXEdDSA(u, message, signature []byte) ([VRFSize]byte, error) {
	var vrf [VRFSize]byte

	sig, err := ParseSignature(signature)
	if err != nil {
		return vrf, err
	}

	A, err := edwardsPublicKey(u)
	if err != nil {
		return vrf, err
	}

	V, ok := decompressPrimeOrderPoint(sig.V[:])
	if !ok {
		return vrf, ErrInvalidEncodedPoint
	}

	h, err := edwards25519.NewScalar().SetCanonicalBytes(sig.H[:])
	if err != nil {
		return vrf, ErrMalformedSignature.WithDetails("challenge").WithCause(err)
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(sig.S[:])
	if err != nil {
		return vrf, ErrMalformedSignature.WithDetails("response").WithCause(err)
	}

	Bv, err := hashToPoint(A.Bytes(), message)
	if err != nil {
		return vrf, err
	}
	if isIdentity(Bv) {
		return vrf, ErrDegenerateBasePoint
	}

	// R = s·B - h·A, Rv = s·Bv - h·V. All inputs are public.
	minusH := edwards25519.NewScalar().Negate(h)
	R := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(minusH, A, s)
	Rv := new(edwards25519.Point).VarTimeMultiScalarMult(
		[]*edwards25519.Scalar{s, minusH},
		[]*edwards25519.Point{Bv, V},
	)

	hCheck := computeChallenge(R, Rv, A, Bv, V, message)
	if !SecureCompare(hCheck.Bytes(), sig.H[:]) {
		return vrf, ErrSignatureMismatch
	}

	return vrfExtract(V), nil
}
