// Package vxeddsa implements VXEdDSA: EdDSA-style signatures over
// Curve25519 that are produced with a Montgomery-form (X25519) key pair and
// double as a verifiable random function.
//
// A signature over a message is 96 bytes, V || h || s. Signing also yields a
// 32-byte VRF output that depends only on the key pair and the message:
// signing the same message twice with different random values gives
// different signatures but the same VRF output. Verification needs only the
// Montgomery public key, the message and the signature, and returns the same
// VRF output when the signature is valid.
//
// Basic usage:
//
//	kp, err := vxeddsa.GenKeyPair()
//	if err != nil {
//	    return err
//	}
//	defer kp.Zeroize()
//
//	sig, vrf, err := vxeddsa.SignRandom(kp.Secret[:], message)
//	if err != nil {
//	    return err
//	}
//
//	out, ok := vxeddsa.Verify(kp.Public[:], message, sig)
//	// ok == true, bytes.Equal(out, vrf) == true
//
// Hashing uses SHA-512 with a distinct 32-byte prefix per purpose
// (hash-to-point, nonce, challenge, VRF output). The VRF base point is
// derived from the Edwards public key and the message with Elligator 2 and
// cofactor clearing. The Edwards key always has sign bit 0: the signer
// negates its scalar when needed, and the verifier reconstructs the point
// from the Montgomery u-coordinate with sign 0.
//
// All operations on secret data run in constant time. Verification works on
// public data only and uses variable-time multi-scalar multiplication.
package vxeddsa
