package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/canopy-network/canopy/lib/vxeddsa"
)

// errRejected is returned by verify for an invalid signature.
var errRejected = errors.New("signature rejected")

type keyPairOutput struct {
	Secret        string `json:"secret"`
	Public        string `json:"public"`
	EncodedPublic string `json:"encoded_public"`
}

type publicKeyOutput struct {
	Public        string `json:"public"`
	EncodedPublic string `json:"encoded_public"`
}

type signOutput struct {
	Signature string `json:"signature"`
	VRF       string `json:"vrf"`
}

type verifyOutput struct {
	Valid bool   `json:"valid"`
	VRF   string `json:"vrf,omitempty"`
}

type sharedOutput struct {
	Shared string `json:"shared"`
}

func newKeyPairOutput(kp *vxeddsa.KeyPair) (*keyPairOutput, error) {
	encoded, err := vxeddsa.EncodePublicKey(kp.Public[:])
	if err != nil {
		return nil, err
	}
	return &keyPairOutput{
		Secret:        hex.EncodeToString(kp.Secret[:]),
		Public:        hex.EncodeToString(kp.Public[:]),
		EncodedPublic: hex.EncodeToString(encoded),
	}, nil
}

func cmdKeygen(s *vxeddsa.Signer, args []string, out *json.Encoder) error {
	fs := newFlagSet("keygen")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	kp, err := s.GenKeyPair()
	if err != nil {
		return err
	}
	defer kp.Zeroize()

	result, err := newKeyPairOutput(kp)
	if err != nil {
		return err
	}
	return out.Encode(result)
}

func cmdPubkey(s *vxeddsa.Signer, args []string, out *json.Encoder) error {
	fs := newFlagSet("pubkey")
	secretHex := fs.String("secret", "", "32-byte secret seed (hex)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	secret, err := decodeHexFlag("secret", *secretHex, false)
	if err != nil {
		return err
	}
	defer vxeddsa.ZeroizeBytes(secret)

	public, err := s.GenPubKey(secret)
	if err != nil {
		return err
	}
	encoded, err := vxeddsa.EncodePublicKey(public[:])
	if err != nil {
		return err
	}
	return out.Encode(&publicKeyOutput{
		Public:        hex.EncodeToString(public[:]),
		EncodedPublic: hex.EncodeToString(encoded),
	})
}

func cmdDerive(s *vxeddsa.Signer, args []string, out *json.Encoder) error {
	fs := newFlagSet("derive")
	ikmHex := fs.String("ikm", "", "Input key material, at least 32 bytes (hex)")
	info := fs.String("info", "", "Context string bound into the derived key")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	ikm, err := decodeHexFlag("ikm", *ikmHex, false)
	if err != nil {
		return err
	}
	defer vxeddsa.ZeroizeBytes(ikm)

	kp, err := s.DeriveKeyPair(ikm, []byte(*info))
	if err != nil {
		return err
	}
	defer kp.Zeroize()

	result, err := newKeyPairOutput(kp)
	if err != nil {
		return err
	}
	return out.Encode(result)
}

func cmdSign(s *vxeddsa.Signer, args []string, out *json.Encoder) error {
	fs := newFlagSet("sign")
	secretHex := fs.String("secret", "", "32-byte secret seed (hex)")
	messageHex := fs.String("message", "", "Message (hex, may be empty)")
	nonceHex := fs.String("nonce", "", "32-byte random value Z (hex, drawn from crypto/rand if empty)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	secret, err := decodeHexFlag("secret", *secretHex, false)
	if err != nil {
		return err
	}
	defer vxeddsa.ZeroizeBytes(secret)
	message, err := decodeHexFlag("message", *messageHex, true)
	if err != nil {
		return err
	}
	nonce, err := decodeHexFlag("nonce", *nonceHex, true)
	if err != nil {
		return err
	}

	var sig, vrf []byte
	if nonce == nil {
		sig, vrf, err = s.SignRandom(secret, message)
	} else {
		sig, vrf, err = s.Sign(secret, message, nonce)
	}
	if err != nil {
		return err
	}
	return out.Encode(&signOutput{
		Signature: hex.EncodeToString(sig),
		VRF:       hex.EncodeToString(vrf),
	})
}

func cmdVerify(s *vxeddsa.Signer, args []string, out *json.Encoder) error {
	fs := newFlagSet("verify")
	publicHex := fs.String("public", "", "32-byte Montgomery public key, or 33 bytes with type byte (hex)")
	messageHex := fs.String("message", "", "Message (hex, may be empty)")
	signatureHex := fs.String("signature", "", "96-byte signature (hex)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	public, err := decodeHexFlag("public", *publicHex, false)
	if err != nil {
		return err
	}
	if len(public) == vxeddsa.EncodedPublicKeySize {
		decoded, err := vxeddsa.DecodePublicKey(public)
		if err != nil {
			return err
		}
		public = decoded[:]
	}
	message, err := decodeHexFlag("message", *messageHex, true)
	if err != nil {
		return err
	}
	signature, err := decodeHexFlag("signature", *signatureHex, false)
	if err != nil {
		return err
	}

	vrf, ok := s.Verify(public, message, signature)
	if !ok {
		if err := out.Encode(&verifyOutput{Valid: false}); err != nil {
			return err
		}
		return errRejected
	}
	return out.Encode(&verifyOutput{Valid: true, VRF: hex.EncodeToString(vrf)})
}

func cmdShared(s *vxeddsa.Signer, args []string, out *json.Encoder) error {
	fs := newFlagSet("shared")
	secretHex := fs.String("secret", "", "32-byte secret seed (hex)")
	peerHex := fs.String("peer", "", "Peer's 32-byte Montgomery public key (hex)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	secret, err := decodeHexFlag("secret", *secretHex, false)
	if err != nil {
		return err
	}
	defer vxeddsa.ZeroizeBytes(secret)
	peer, err := decodeHexFlag("peer", *peerHex, false)
	if err != nil {
		return err
	}

	shared, err := vxeddsa.SharedSecret(secret, peer)
	if err != nil {
		return err
	}
	defer vxeddsa.ZeroizeBytes(shared[:])
	return out.Encode(&sharedOutput{Shared: hex.EncodeToString(shared[:])})
}
