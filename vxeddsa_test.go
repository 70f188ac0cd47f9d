package vxeddsa

import (
	"bytes"
	"crypto/rand"
	"errors"
	"sync"
	"testing"

	"filippo.io/edwards25519"
)

func TestSignVectors(t *testing.T) {
	for _, v := range signingVectors {
		t.Run(v.name, func(t *testing.T) {
			secret := decodeHex(t, v.secret)
			message := decodeHex(t, v.message)

			sig, vrf, err := Sign(secret, message, decodeHex(t, v.z))
			if err != nil {
				t.Fatalf("Sign failed: %v", err)
			}
			if want := decodeHex(t, v.signature); !bytes.Equal(sig, want) {
				t.Fatalf("signature = %x\nwant        %x", sig, want)
			}
			if want := decodeHex(t, v.vrf); !bytes.Equal(vrf, want) {
				t.Fatalf("vrf = %x, want %x", vrf, want)
			}

			out, err := VerifyDetailed(decodeHex(t, v.public), message, sig)
			if err != nil {
				t.Fatalf("VerifyDetailed failed: %v", err)
			}
			if !bytes.Equal(out, vrf) {
				t.Fatalf("verifier VRF %x, signer VRF %x", out, vrf)
			}
		})
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	kp, err := GenKeyPair()
	if err != nil {
		t.Fatalf("GenKeyPair failed: %v", err)
	}

	for _, size := range []int{0, 1, 32, 100, 4096} {
		message := make([]byte, size)
		if _, err := rand.Read(message); err != nil {
			t.Fatal(err)
		}

		sig, vrf, err := SignRandom(kp.Secret[:], message)
		if err != nil {
			t.Fatalf("size %d: SignRandom failed: %v", size, err)
		}
		if len(sig) != SignatureSize || len(vrf) != VRFSize {
			t.Fatalf("size %d: unexpected output sizes %d, %d", size, len(sig), len(vrf))
		}

		out, ok := Verify(kp.Public[:], message, sig)
		if !ok {
			t.Fatalf("size %d: valid signature rejected", size)
		}
		if !bytes.Equal(out, vrf) {
			t.Fatalf("size %d: VRF mismatch", size)
		}
	}
}

func TestVRFIndependentOfNonce(t *testing.T) {
	secret, err := GenSecret()
	if err != nil {
		t.Fatal(err)
	}
	message := []byte("same message")

	sig1, vrf1, err := Sign(secret[:], message, bytes.Repeat([]byte{1}, NonceSize))
	if err != nil {
		t.Fatal(err)
	}
	sig2, vrf2, err := Sign(secret[:], message, bytes.Repeat([]byte{2}, NonceSize))
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(sig1, sig2) {
		t.Error("different z should give different signatures")
	}
	if !bytes.Equal(sig1[:PointSize], sig2[:PointSize]) {
		t.Error("V should depend only on the key and message")
	}
	if !bytes.Equal(vrf1, vrf2) {
		t.Error("VRF output should not depend on z")
	}

	_, vrf3, err := Sign(secret[:], []byte("other message"), bytes.Repeat([]byte{1}, NonceSize))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(vrf1, vrf3) {
		t.Error("different messages should give different VRF outputs")
	}
}

func TestSignDeterministicForFixedNonce(t *testing.T) {
	v := signingVectors[1]
	a, _, err := Sign(decodeHex(t, v.secret), decodeHex(t, v.message), decodeHex(t, v.z))
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := Sign(decodeHex(t, v.secret), decodeHex(t, v.message), decodeHex(t, v.z))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("signing with the same z should be deterministic")
	}
}

func TestSignRejectsBadInput(t *testing.T) {
	secret := bytes.Repeat([]byte{3}, SecretSize)
	z := make([]byte, NonceSize)

	if _, _, err := Sign(secret[:31], nil, z); !errors.Is(err, ErrInvalidKeyLength) {
		t.Errorf("short secret: got %v", err)
	}
	if _, _, err := Sign(secret, nil, z[:16]); !errors.Is(err, ErrInvalidNonceLength) {
		t.Errorf("short z: got %v", err)
	}
	if _, _, err := Sign(secret, nil, make([]byte, 64)); !errors.Is(err, ErrInvalidNonceLength) {
		t.Errorf("long z: got %v", err)
	}
}

func TestCheckNonce(t *testing.T) {
	if err := checkNonce(edwards25519.NewScalar()); !errors.Is(err, ErrDegenerateNonce) {
		t.Errorf("zero nonce: got %v, want ErrDegenerateNonce", err)
	}
	if err := checkNonce(mustScalar(1)); err != nil {
		t.Errorf("nonzero nonce: got %v", err)
	}
	if IsRecoverableError(ErrDegenerateNonce) {
		t.Error("a degenerate nonce must not be recoverable")
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	v := signingVectors[1]
	public := decodeHex(t, v.public)
	message := decodeHex(t, v.message)
	sig := decodeHex(t, v.signature)

	t.Run("signature bits", func(t *testing.T) {
		for i := 0; i < len(sig)*8; i++ {
			tampered := append([]byte{}, sig...)
			tampered[i/8] ^= 1 << (i % 8)
			if out, ok := Verify(public, message, tampered); ok || out != nil {
				t.Fatalf("flipping bit %d was accepted", i)
			}
		}
	})

	t.Run("message bits", func(t *testing.T) {
		for i := 0; i < len(message)*8; i++ {
			tampered := append([]byte{}, message...)
			tampered[i/8] ^= 1 << (i % 8)
			if _, ok := Verify(public, tampered, sig); ok {
				t.Fatalf("flipping message bit %d was accepted", i)
			}
		}
		if _, ok := Verify(public, append(message, 0), sig); ok {
			t.Fatal("extended message was accepted")
		}
		if _, ok := Verify(public, message[:len(message)-1], sig); ok {
			t.Fatal("truncated message was accepted")
		}
	})

	t.Run("public key bits", func(t *testing.T) {
		for i := 0; i < len(public)*8; i++ {
			tampered := append([]byte{}, public...)
			tampered[i/8] ^= 1 << (i % 8)
			if _, ok := Verify(tampered, message, sig); ok {
				t.Fatalf("flipping public key bit %d was accepted", i)
			}
		}
	})

	t.Run("other key", func(t *testing.T) {
		if _, ok := Verify(decodeHex(t, signingVectors[0].public), message, sig); ok {
			t.Fatal("signature verified under another key")
		}
	})
}

func TestVerifyRejectionReasons(t *testing.T) {
	v := signingVectors[0]
	public := decodeHex(t, v.public)
	message := decodeHex(t, v.message)
	sig := decodeHex(t, v.signature)

	withV := func(V []byte) []byte {
		out := append([]byte{}, sig...)
		copy(out[:PointSize], V)
		return out
	}
	withH := func(h []byte) []byte {
		out := append([]byte{}, sig...)
		copy(out[PointSize:PointSize+ScalarSize], h)
		return out
	}
	withS := func(s []byte) []byte {
		out := append([]byte{}, sig...)
		copy(out[PointSize+ScalarSize:], s)
		return out
	}

	origV, err := new(edwards25519.Point).SetBytes(sig[:PointSize])
	if err != nil {
		t.Fatal(err)
	}
	mixedV := new(edwards25519.Point).Add(origV, orderTwoPoint(t))
	notL := bytes.Repeat([]byte{0xFF}, 32)

	tests := []struct {
		name      string
		public    []byte
		signature []byte
		err       error
	}{
		{"short signature", public, sig[:95], ErrInvalidSignatureLength},
		{"long signature", public, append(append([]byte{}, sig...), 0), ErrInvalidSignatureLength},
		{"short public key", public[:31], sig, ErrInvalidKeyLength},
		{"zero public key", make([]byte, 32), sig, ErrInvalidPublicKey},
		{"identity V", public, withV(edwards25519.NewIdentityPoint().Bytes()), ErrInvalidEncodedPoint},
		{"order two V", public, withV(orderTwoEncoding()), ErrInvalidEncodedPoint},
		{"mixed order V", public, withV(mixedV.Bytes()), ErrInvalidEncodedPoint},
		{"non-canonical h", public, withH(notL), ErrMalformedSignature},
		{"non-canonical s", public, withS(notL), ErrMalformedSignature},
		{"zero s", public, withS(make([]byte, 32)), ErrSignatureMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := VerifyDetailed(tt.public, message, tt.signature)
			if !errors.Is(err, tt.err) {
				t.Fatalf("got %v, want %v", err, tt.err)
			}
			if out != nil {
				t.Fatal("rejected signature returned a VRF output")
			}
		})
	}
}

// TestRandomizedSignVerify signs random messages under random keys, checks
// that every signature verifies with a consistent VRF output, and that a
// single random bit flip is always rejected.
func TestRandomizedSignVerify(t *testing.T) {
	trials := 10000
	if testing.Short() {
		trials = 200
	}

	var lengthByte [1]byte
	for i := 0; i < trials; i++ {
		kp, err := GenKeyPair()
		if err != nil {
			t.Fatalf("trial %d: GenKeyPair failed: %v", i, err)
		}
		if _, err := rand.Read(lengthByte[:]); err != nil {
			t.Fatal(err)
		}
		message := make([]byte, int(lengthByte[0]))
		if _, err := rand.Read(message); err != nil {
			t.Fatal(err)
		}

		sig, vrf, err := SignRandom(kp.Secret[:], message)
		if err != nil {
			t.Fatalf("trial %d: SignRandom failed: %v", i, err)
		}
		out, ok := Verify(kp.Public[:], message, sig)
		if !ok {
			t.Fatalf("trial %d: valid signature rejected (secret %x, message %x)", i, kp.Secret, message)
		}
		if !bytes.Equal(out, vrf) {
			t.Fatalf("trial %d: VRF mismatch", i)
		}

		var pick [2]byte
		if _, err := rand.Read(pick[:]); err != nil {
			t.Fatal(err)
		}
		bit := (int(pick[0])<<8 | int(pick[1])) % (SignatureSize * 8)
		sig[bit/8] ^= 1 << (bit % 8)
		if _, ok := Verify(kp.Public[:], message, sig); ok {
			t.Fatalf("trial %d: signature with bit %d flipped was accepted", i, bit)
		}
	}
	t.Logf("%d sign/verify trials passed", trials)
}

func TestConcurrentSigning(t *testing.T) {
	kp, err := GenKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	message := []byte("shared message")
	_, want, err := SignRandom(kp.Secret[:], message)
	if err != nil {
		t.Fatal(err)
	}

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				sig, vrf, err := SignRandom(kp.Secret[:], message)
				if err != nil {
					errs <- err
					return
				}
				if !bytes.Equal(vrf, want) {
					errs <- errors.New("VRF output changed under concurrency")
					return
				}
				if _, ok := Verify(kp.Public[:], message, sig); !ok {
					errs <- errors.New("concurrent signature rejected")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestParseSignature(t *testing.T) {
	raw := decodeHex(t, signingVectors[2].signature)
	sig, err := ParseSignature(raw)
	if err != nil {
		t.Fatalf("ParseSignature failed: %v", err)
	}
	if !bytes.Equal(sig.Bytes(), raw) {
		t.Error("Bytes() does not reproduce the input")
	}
	if !bytes.Equal(sig.V[:], raw[:32]) || !bytes.Equal(sig.H[:], raw[32:64]) || !bytes.Equal(sig.S[:], raw[64:]) {
		t.Error("fields split at the wrong offsets")
	}
	if _, err := ParseSignature(raw[:64]); !errors.Is(err, ErrInvalidSignatureLength) {
		t.Errorf("short input: got %v", err)
	}
}

func FuzzVerify(f *testing.F) {
	for _, v := range signingVectors {
		f.Add(decodeHex(f, v.public), decodeHex(f, v.message), decodeHex(f, v.signature))
	}
	f.Add(make([]byte, 32), []byte{}, make([]byte, 96))

	f.Fuzz(func(t *testing.T, public, message, signature []byte) {
		out, ok := Verify(public, message, signature)
		if ok != (out != nil) {
			t.Fatalf("ok = %v but output = %x", ok, out)
		}
		if ok && len(out) != VRFSize {
			t.Fatalf("VRF output has %d bytes", len(out))
		}
	})
}
