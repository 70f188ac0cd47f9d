package vxeddsa

import (
	"bytes"
	"crypto/rand"
	"testing"

	"golang.org/x/crypto/curve25519"
)

func TestClampScalar(t *testing.T) {
	in := bytes.Repeat([]byte{0xFF}, 32)
	k := clampScalar(in)
	if k[0]&7 != 0 {
		t.Errorf("low bits not cleared: %08b", k[0])
	}
	if k[31]&0x80 != 0 {
		t.Errorf("bit 255 not cleared: %08b", k[31])
	}
	if k[31]&0x40 == 0 {
		t.Errorf("bit 254 not set: %08b", k[31])
	}
	if in[0] != 0xFF {
		t.Error("clampScalar modified its input")
	}

	zero := clampScalar(make([]byte, 32))
	if zero[31] != 0x40 {
		t.Errorf("clamping zero should set bit 254, got %x", zero[31])
	}
}

// TestMontgomeryRFC7748 uses the test vectors of RFC 7748 sections 5.2 and 6.1.
func TestMontgomeryRFC7748(t *testing.T) {
	tests := []struct {
		name   string
		scalar string
		point  string
		want   string
	}{
		{
			name:   "section 5.2 vector 1",
			scalar: "a546e36bf0527c9d3b16154b82465edd62144c0ac1fc5a18506a2244ba449ac4",
			point:  "e6db6867583030db3594c1a424b15f7c726624ec26b3353b10a903a6d0ab1c4c",
			want:   "c3da55379de9c6908e94ea4df28d084f32eccf03491c71f754b4075577a28552",
		},
		{
			name:   "alice public key",
			scalar: "77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a",
			point:  "0900000000000000000000000000000000000000000000000000000000000000",
			want:   "8520f0098930a754748b7ddcb43ef75a0dbf3a0d26381af4eba4a98eaa9b4e6a",
		},
		{
			name:   "bob public key",
			scalar: "5dab087e624a8a4b79e17f8b83800ee66f3bb1292618b6fd1c2f8b27ff88e0eb",
			point:  "0900000000000000000000000000000000000000000000000000000000000000",
			want:   "de9edb7d7b7dc1b4d35b61c2ece435373f8343c85b78674dadfc7e146f882b4f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := clampScalar(decodeHex(t, tt.scalar))
			var u [32]byte
			copy(u[:], decodeHex(t, tt.point))

			got := montgomeryScalarMult(&k, &u)
			if want := decodeHex(t, tt.want); !bytes.Equal(got[:], want) {
				t.Fatalf("got %x, want %x", got, want)
			}
		})
	}
}

func TestMontgomeryMatchesX25519(t *testing.T) {
	for i := 0; i < 64; i++ {
		secret := make([]byte, 32)
		peer := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			t.Fatal(err)
		}
		if _, err := rand.Read(peer); err != nil {
			t.Fatal(err)
		}
		peer[31] &= 0x7F

		k := clampScalar(secret)
		var u [32]byte
		copy(u[:], peer)
		got := montgomeryScalarMult(&k, &u)

		// ScalarMult accepts low-order and twist points where X25519 does not.
		var want [32]byte
		curve25519.ScalarMult(&want, (*[32]byte)(secret), &u)
		if got != want {
			t.Fatalf("iteration %d: ladder %x, x/crypto %x", i, got, want)
		}
	}
}

func TestMontgomeryIgnoresHighBitOfPoint(t *testing.T) {
	k := clampScalar(bytes.Repeat([]byte{0x42}, 32))
	u := montgomeryBasePoint
	a := montgomeryScalarMult(&k, &u)
	u[31] |= 0x80
	b := montgomeryScalarMult(&k, &u)
	if a != b {
		t.Fatalf("bit 255 of the u-coordinate changed the result")
	}
}

func TestMontgomeryZeroPoint(t *testing.T) {
	k := clampScalar(bytes.Repeat([]byte{0x42}, 32))
	var zero [32]byte
	if got := montgomeryScalarMult(&k, &zero); got != zero {
		t.Fatalf("k·(0,0) should be 0, got %x", got)
	}
}
