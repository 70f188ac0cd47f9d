package vxeddsa

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// AuditEventType represents the type of audit event
type AuditEventType string

const (
	AuditEventKeyGeneration AuditEventType = "key_generation"
	AuditEventSign          AuditEventType = "sign"
	AuditEventVerify        AuditEventType = "verify"
	AuditEventError         AuditEventType = "error"
)

// AuditEvent describes one library operation. It never carries secret
// material: keys appear as public keys only, messages as their length.
type AuditEvent struct {
	EventID   string         `json:"event_id"`
	Timestamp time.Time      `json:"timestamp"`
	EventType AuditEventType `json:"event_type"`

	PublicKey     string `json:"public_key,omitempty"`
	MessageLength int    `json:"message_length"`

	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error,omitempty"`

	Duration time.Duration          `json:"duration"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// AuditEventHandler receives audit events. Implementations must be safe for
// concurrent use if the Signer is shared between goroutines.
type AuditEventHandler interface {
	// OnKeyGeneration is called after a secret or key pair is generated
	OnKeyGeneration(event *AuditEvent)

	// OnSign is called after a successful signature
	OnSign(event *AuditEvent)

	// OnVerify is called after every verification, accepted or not
	OnVerify(event *AuditEvent)

	// OnError is called when key generation or signing fails, including
	// the fatal random-source and degenerate-nonce conditions
	OnError(event *AuditEvent)
}

// NullAuditHandler is a no-op implementation of AuditEventHandler
type NullAuditHandler struct{}

func (n *NullAuditHandler) OnKeyGeneration(event *AuditEvent) {}
func (n *NullAuditHandler) OnSign(event *AuditEvent)          {}
func (n *NullAuditHandler) OnVerify(event *AuditEvent)        {}
func (n *NullAuditHandler) OnError(event *AuditEvent)         {}

// AuditEventBuilder helps construct audit events with proper defaults
type AuditEventBuilder struct {
	event *AuditEvent
	start time.Time
}

// NewAuditEventBuilder creates a new audit event builder
func NewAuditEventBuilder(eventType AuditEventType) *AuditEventBuilder {
	now := time.Now()
	return &AuditEventBuilder{
		event: &AuditEvent{
			EventID:   generateEventID(),
			Timestamp: now,
			EventType: eventType,
			Success:   true,
			Metadata:  make(map[string]interface{}),
		},
		start: now,
	}
}

// WithPublicKey records the public key involved
func (b *AuditEventBuilder) WithPublicKey(public []byte) *AuditEventBuilder {
	b.event.PublicKey = hex.EncodeToString(public)
	return b
}

// WithMessage records the message length
func (b *AuditEventBuilder) WithMessage(message []byte) *AuditEventBuilder {
	b.event.MessageLength = len(message)
	return b
}

// WithError marks the event as failed and sets error information
func (b *AuditEventBuilder) WithError(err error) *AuditEventBuilder {
	b.event.Success = false
	if err == nil {
		return b
	}
	b.event.Error = err.Error()
	var e *Error
	if errors.As(err, &e) {
		b.event.Code = e.Code
	}
	return b
}

// WithMetadata adds metadata to the event
func (b *AuditEventBuilder) WithMetadata(key string, value interface{}) *AuditEventBuilder {
	b.event.Metadata[key] = value
	return b
}

// Build stamps the duration and returns the constructed audit event
func (b *AuditEventBuilder) Build() *AuditEvent {
	b.event.Duration = time.Since(b.start)
	return b.event
}

// generateEventID combines a timestamp with 4 random bytes.
func generateEventID() string {
	timestamp := time.Now().Format("20060102150405.000000")

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Sprintf("%s.%d", timestamp, time.Now().UnixNano()%10000)
	}

	return fmt.Sprintf("%s.%x", timestamp, randomBytes)
}
