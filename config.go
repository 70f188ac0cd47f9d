package vxeddsa

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
)

// Config holds the collaborators a Signer depends on. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// Rand is the entropy source for GenSecret, GenKeyPair and SignRandom.
	Rand io.Reader

	// SeedHash selects the expansion used by Signer.DeriveKeyPair.
	SeedHash HashAlgorithm

	// Audit receives one event per operation.
	Audit AuditEventHandler
}

// DefaultConfig returns a configuration backed by crypto/rand with auditing
// disabled.
func DefaultConfig() *Config {
	return &Config{
		Rand:     rand.Reader,
		SeedHash: SHA256_HKDF,
		Audit:    &NullAuditHandler{},
	}
}

// ValidationResult contains the result of configuration validation
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// Validate checks the configuration and collects every problem it finds.
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Warnings: []string{},
		Errors:   []string{},
	}

	if c == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "config cannot be nil")
		return result
	}

	if c.Rand == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "random source cannot be nil")
	}

	switch c.SeedHash {
	case SHA256_HKDF, BLAKE2B, SHAKE256:
	default:
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("unsupported seed hash algorithm: %s", c.SeedHash))
	}

	if c.Audit == nil {
		result.Warnings = append(result.Warnings, "no audit handler, events are dropped")
	}

	return result
}

// Err converts an invalid result into an ErrInvalidConfiguration.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return ErrInvalidConfiguration.WithDetails("%s", strings.Join(r.Errors, "; "))
}
