package vxeddsa

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// HashAlgorithm specifies how DeriveSecret expands input key material
type HashAlgorithm int

const (
	// SHA256_HKDF uses HKDF-SHA256
	SHA256_HKDF HashAlgorithm = iota
	// BLAKE2B uses unkeyed Blake2b-256 with domain separation
	BLAKE2B
	// SHAKE256 uses the SHAKE256 XOF
	SHAKE256
)

const (
	seedDomainHKDF     = "VXEDDSA_SEED_HKDF_v1"
	seedDomainBlake2b  = "VXEDDSA_SEED_BLAKE2B_v1"
	seedDomainShake256 = "VXEDDSA_SEED_SHAKE256_v1"
)

// String returns the name used in configuration files.
func (h HashAlgorithm) String() string {
	switch h {
	case SHA256_HKDF:
		return "sha256-hkdf"
	case BLAKE2B:
		return "blake2b"
	case SHAKE256:
		return "shake256"
	default:
		return fmt.Sprintf("HashAlgorithm(%d)", int(h))
	}
}

// ParseHashAlgorithm is the inverse of HashAlgorithm.String.
func ParseHashAlgorithm(name string) (HashAlgorithm, error) {
	switch name {
	case "sha256-hkdf", "":
		return SHA256_HKDF, nil
	case "blake2b":
		return BLAKE2B, nil
	case "shake256":
		return SHAKE256, nil
	default:
		return 0, ErrUnsupportedHashAlgorithm.WithDetails("%q", name)
	}
}

// DeriveSecret deterministically maps input key material to a 32-byte
// secret seed. info binds the seed to a usage context; different
// algorithms, contexts or material give unrelated seeds. The seed is
// clamped on use like any other secret.
func DeriveSecret(ikm, info []byte, algorithm HashAlgorithm) ([SecretSize]byte, error) {
	var secret [SecretSize]byte
	if len(ikm) < SecretSize {
		return secret, ErrInvalidKeyLength.WithDetails("input key material must be at least %d bytes", SecretSize)
	}

	switch algorithm {
	case SHA256_HKDF:
		reader := hkdf.New(sha256.New, ikm, []byte(seedDomainHKDF), info)
		if _, err := io.ReadFull(reader, secret[:]); err != nil {
			return secret, fmt.Errorf("failed to derive bytes from HKDF: %w", err)
		}
	case BLAKE2B:
		hasher, err := blake2b.New256(nil)
		if err != nil {
			return secret, fmt.Errorf("failed to create Blake2b hasher: %w", err)
		}
		hasher.Write([]byte(seedDomainBlake2b))
		writeLengthPrefixed(hasher, info)
		hasher.Write(ikm)
		hasher.Sum(secret[:0])
	case SHAKE256:
		shake := sha3.NewShake256()
		shake.Write([]byte(seedDomainShake256))
		writeLengthPrefixed(shake, info)
		shake.Write(ikm)
		if _, err := io.ReadFull(shake, secret[:]); err != nil {
			return secret, fmt.Errorf("SHAKE256 read failed: %w", err)
		}
	default:
		return secret, ErrUnsupportedHashAlgorithm.WithContext("algorithm", int(algorithm))
	}

	return secret, nil
}

// DeriveKeyPair derives a secret seed with DeriveSecret and completes it
// into a key pair.
func DeriveKeyPair(ikm, info []byte, algorithm HashAlgorithm) (*KeyPair, error) {
	secret, err := DeriveSecret(ikm, info, algorithm)
	if err != nil {
		return nil, err
	}
	public, err := publicFromSecret(secret[:])
	if err != nil {
		return nil, err
	}
	return &KeyPair{Secret: secret, Public: public}, nil
}
