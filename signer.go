package vxeddsa

// Signer exposes the VXEdDSA operations bound to a Config. It keeps no
// state between calls and is safe for concurrent use as long as its random
// source and audit handler are.
type Signer struct {
	config Config
}

// NewSigner validates cfg and returns a Signer. A nil cfg means
// DefaultConfig().
func NewSigner(cfg *Config) (*Signer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate().Err(); err != nil {
		return nil, err
	}
	s := &Signer{config: *cfg}
	if s.config.Audit == nil {
		s.config.Audit = &NullAuditHandler{}
	}
	return s, nil
}

var defaultSigner = &Signer{config: *DefaultConfig()}

// GenSecret draws a fresh 32-byte secret seed.
func (s *Signer) GenSecret() ([SecretSize]byte, error) {
	event := NewAuditEventBuilder(AuditEventKeyGeneration)
	secret, err := readSecret(s.config.Rand)
	if err != nil {
		s.config.Audit.OnError(event.WithError(err).Build())
		return secret, err
	}
	s.config.Audit.OnKeyGeneration(event.WithMetadata("kind", "secret").Build())
	return secret, nil
}

// GenPubKey derives the Montgomery public key of a secret seed.
func (s *Signer) GenPubKey(secret []byte) ([PublicKeySize]byte, error) {
	return publicFromSecret(secret)
}

// GenKeyPair draws a secret seed and derives its public key.
func (s *Signer) GenKeyPair() (*KeyPair, error) {
	event := NewAuditEventBuilder(AuditEventKeyGeneration)
	secret, err := readSecret(s.config.Rand)
	if err != nil {
		s.config.Audit.OnError(event.WithError(err).Build())
		return nil, err
	}
	public, err := publicFromSecret(secret[:])
	if err != nil {
		ZeroizeBytes(secret[:])
		return nil, err
	}
	s.config.Audit.OnKeyGeneration(event.WithPublicKey(public[:]).WithMetadata("kind", "keypair").Build())
	return &KeyPair{Secret: secret, Public: public}, nil
}

// DeriveKeyPair derives a key pair from external key material using the
// configured seed hash.
func (s *Signer) DeriveKeyPair(ikm, info []byte) (*KeyPair, error) {
	event := NewAuditEventBuilder(AuditEventKeyGeneration).WithMetadata("kind", "derived")
	kp, err := DeriveKeyPair(ikm, info, s.config.SeedHash)
	if err != nil {
		s.config.Audit.OnError(event.WithError(err).Build())
		return nil, err
	}
	s.config.Audit.OnKeyGeneration(event.WithPublicKey(kp.Public[:]).
		WithMetadata("seed_hash", s.config.SeedHash.String()).Build())
	return kp, nil
}

// Sign produces a 96-byte signature over message and the 32-byte VRF
// output, using the caller-supplied 32-byte random value z. The VRF output
// depends only on the key and the message, never on z.
func (s *Signer) Sign(secret, message, z []byte) (signature, vrf []byte, err error) {
	event := NewAuditEventBuilder(AuditEventSign).WithMessage(message)
	sig, v, err := signVXEdDSA(secret, message, z)
	if err != nil {
		s.config.Audit.OnError(event.WithError(err).Build())
		return nil, nil, err
	}
	s.config.Audit.OnSign(event.Build())
	return sig[:], v[:], nil
}

// SignRandom is Sign with z drawn from the configured random source.
func (s *Signer) SignRandom(secret, message []byte) (signature, vrf []byte, err error) {
	var z [NonceSize]byte
	if err := readRandom(s.config.Rand, z[:]); err != nil {
		s.config.Audit.OnError(NewAuditEventBuilder(AuditEventSign).WithMessage(message).WithError(err).Build())
		return nil, nil, err
	}
	defer ZeroizeBytes(z[:])
	return s.Sign(secret, message, z[:])
}

// VerifyDetailed checks a signature against a Montgomery public key. It
// returns the VRF output on success and the specific rejection reason
// otherwise. Callers at a trust boundary should treat every error the same.
func (s *Signer) VerifyDetailed(public, message, signature []byte) ([]byte, error) {
	event := NewAuditEventBuilder(AuditEventVerify).WithPublicKey(public).WithMessage(message)
	v, err := verifyVXEdDSA(public, message, signature)
	if err != nil {
		s.config.Audit.OnVerify(event.WithError(err).Build())
		return nil, err
	}
	s.config.Audit.OnVerify(event.Build())
	return v[:], nil
}

// Verify reports whether signature is valid for public and message, and
// returns the VRF output if it is. The output is nil when ok is false.
func (s *Signer) Verify(public, message, signature []byte) (vrf []byte, ok bool) {
	v, err := s.VerifyDetailed(public, message, signature)
	if err != nil {
		return nil, false
	}
	return v, true
}

// GenSecret draws a fresh 32-byte secret seed from crypto/rand.
func GenSecret() ([SecretSize]byte, error) {
	return defaultSigner.GenSecret()
}

// GenPubKey derives the Montgomery public key of a secret seed:
// X25519(clamp(secret), 9).
func GenPubKey(secret []byte) ([PublicKeySize]byte, error) {
	return defaultSigner.GenPubKey(secret)
}

// GenKeyPair generates a fresh key pair.
func GenKeyPair() (*KeyPair, error) {
	return defaultSigner.GenKeyPair()
}

// Sign signs message with secret and the 32-byte random value z.
func Sign(secret, message, z []byte) (signature, vrf []byte, err error) {
	return defaultSigner.Sign(secret, message, z)
}

// SignRandom signs message with z drawn from crypto/rand.
func SignRandom(secret, message []byte) (signature, vrf []byte, err error) {
	return defaultSigner.SignRandom(secret, message)
}

// Verify checks signature and returns the VRF output when it is valid.
func Verify(public, message, signature []byte) (vrf []byte, ok bool) {
	return defaultSigner.Verify(public, message, signature)
}

// VerifyDetailed is Verify with the rejection reason.
func VerifyDetailed(public, message, signature []byte) ([]byte, error) {
	return defaultSigner.VerifyDetailed(public, message, signature)
}
