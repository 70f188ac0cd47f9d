package vxeddsa

import (
	"encoding/hex"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/curve25519"
)

// PublicKeyTypeDJB is the type byte prepended to a Curve25519 public key in
// its 33-byte transport encoding.
const PublicKeyTypeDJB = 0x05

// EncodedPublicKeySize is the size of an encoded public key.
const EncodedPublicKeySize = PublicKeySize + 1

// KeyPair is a Montgomery-form Curve25519 key pair. Public always equals
// GenPubKey(Secret).
type KeyPair struct {
	Secret [SecretSize]byte
	Public [PublicKeySize]byte
}

// String prints only the public half.
func (kp *KeyPair) String() string {
	return fmt.Sprintf("KeyPair{Public: %s}", hex.EncodeToString(kp.Public[:]))
}

// Zeroize clears the secret seed.
func (kp *KeyPair) Zeroize() {
	ZeroizeBytes(kp.Secret[:])
}

// edwardsKeyPair is the Edwards form of a Montgomery key pair with the sign
// bit of A forced to zero.
type edwardsKeyPair struct {
	a *edwards25519.Scalar
	A *edwards25519.Point
}

// zeroize drops the secret scalar.
func (kp *edwardsKeyPair) zeroize() {
	kp.a.Set(scalarZero)
}

// readRandom fills out from rand. A failing source is fatal for the
// operation; there is no fallback.
func readRandom(rand io.Reader, out []byte) error {
	if rand == nil {
		return ErrRandomSourceUnavailable.WithDetails("no random source configured")
	}
	if _, err := io.ReadFull(rand, out); err != nil {
		ZeroizeBytes(out)
		return ErrRandomSourceUnavailable.WithCause(err)
	}
	return nil
}

func readSecret(rand io.Reader) ([SecretSize]byte, error) {
	var secret [SecretSize]byte
	err := readRandom(rand, secret[:])
	return secret, err
}

// publicFromSecret clamps secret and multiplies the Montgomery base point.
func publicFromSecret(secret []byte) ([PublicKeySize]byte, error) {
	var public [PublicKeySize]byte
	if len(secret) != SecretSize {
		return public, ErrInvalidKeyLength.WithContext("length", len(secret))
	}
	k := clampScalar(secret)
	public = montgomeryScalarMult(&k, &montgomeryBasePoint)
	ZeroizeBytes(k[:])
	return public, nil
}

// calculateKeyPair derives the Edwards key pair (a, A) from a secret seed.
// With a0 the clamped seed and E = a0·B, it returns (a0, E) when E's sign
// bit is 0 and (-a0, -E) otherwise, so A always has sign bit 0 and matches
// what edwardsPublicKey reconstructs from the Montgomery public key.
func calculateKeyPair(secret []byte) (*edwardsKeyPair, error) {
	if len(secret) != SecretSize {
		return nil, ErrInvalidKeyLength.WithContext("length", len(secret))
	}

	a0, err := edwards25519.NewScalar().SetBytesWithClamping(secret)
	if err != nil {
		return nil, ErrInvalidKeyLength.WithCause(err)
	}
	E := new(edwards25519.Point).ScalarBaseMult(a0)
	sign := edwardsSignBit(E)

	negA0 := edwards25519.NewScalar().Negate(a0)
	a := scalarSelect(negA0, a0, sign)
	negA0.Set(scalarZero)
	a0.Set(scalarZero)

	enc := E.Bytes()
	enc[31] &= 0x7F
	A, err := new(edwards25519.Point).SetBytes(enc)
	if err != nil {
		return nil, ErrInvalidPublicKey.WithCause(err)
	}

	return &edwardsKeyPair{a: a, A: A}, nil
}

// edwardsPublicKey reconstructs A from a Montgomery public key u with the
// sign bit forced to 0. It rejects non-canonical u, u on the twist, and
// small-order points.
func edwardsPublicKey(u []byte) (*edwards25519.Point, error) {
	if len(u) != PublicKeySize {
		return nil, ErrInvalidKeyLength.WithContext("length", len(u))
	}
	A, ok := montgomeryToEdwards(u, 0)
	if !ok {
		return nil, ErrInvalidPublicKey.WithDetails("u-coordinate is not canonical or not on the curve")
	}
	if isSmallOrder(A) {
		return nil, ErrInvalidPublicKey.WithDetails("small-order public key")
	}
	return A, nil
}

// EncodePublicKey prepends the key type byte to a 32-byte public key.
func EncodePublicKey(public []byte) ([]byte, error) {
	if len(public) != PublicKeySize {
		return nil, ErrInvalidKeyLength.WithContext("length", len(public))
	}
	out := make([]byte, EncodedPublicKeySize)
	out[0] = PublicKeyTypeDJB
	copy(out[1:], public)
	return out, nil
}

// DecodePublicKey strips and checks the key type byte.
func DecodePublicKey(encoded []byte) ([PublicKeySize]byte, error) {
	var public [PublicKeySize]byte
	if len(encoded) != EncodedPublicKeySize || encoded[0] != PublicKeyTypeDJB {
		return public, ErrInvalidPublicKeyEncoding.WithContext("length", len(encoded))
	}
	copy(public[:], encoded[1:])
	return public, nil
}

// SharedSecret computes the X25519 agreement between a secret seed and a
// peer's Montgomery public key. It fails on low-order peer keys.
func SharedSecret(secret, peerPublic []byte) ([32]byte, error) {
	var shared [32]byte
	if len(secret) != SecretSize || len(peerPublic) != PublicKeySize {
		return shared, ErrInvalidKeyLength
	}
	out, err := curve25519.X25519(secret, peerPublic)
	if err != nil {
		return shared, ErrLowOrderPoint.WithCause(err)
	}
	copy(shared[:], out)
	ZeroizeBytes(out)
	return shared, nil
}
