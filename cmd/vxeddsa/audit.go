package main

import (
	"log/slog"

	"github.com/canopy-network/canopy/lib/vxeddsa"
)

// slogAuditHandler writes audit events as structured log records.
type slogAuditHandler struct {
	logger *slog.Logger
}

func newSlogAuditHandler(logger *slog.Logger) *slogAuditHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogAuditHandler{logger: logger.With("component", "audit")}
}

func (h *slogAuditHandler) attrs(event *vxeddsa.AuditEvent) []any {
	args := []any{
		"event_id", event.EventID,
		"event_type", string(event.EventType),
		"success", event.Success,
		"duration", event.Duration,
	}
	if event.PublicKey != "" {
		args = append(args, "public_key", event.PublicKey)
	}
	if event.EventType != vxeddsa.AuditEventKeyGeneration {
		args = append(args, "message_length", event.MessageLength)
	}
	if event.Code != "" {
		args = append(args, "code", event.Code)
	}
	for k, v := range event.Metadata {
		args = append(args, k, v)
	}
	return args
}

func (h *slogAuditHandler) OnKeyGeneration(event *vxeddsa.AuditEvent) {
	h.logger.Info("key generated", h.attrs(event)...)
}

func (h *slogAuditHandler) OnSign(event *vxeddsa.AuditEvent) {
	h.logger.Info("message signed", h.attrs(event)...)
}

func (h *slogAuditHandler) OnVerify(event *vxeddsa.AuditEvent) {
	if event.Success {
		h.logger.Info("signature verified", h.attrs(event)...)
		return
	}
	h.logger.Warn("signature rejected", h.attrs(event)...)
}

func (h *slogAuditHandler) OnError(event *vxeddsa.AuditEvent) {
	h.logger.Error("operation failed", append(h.attrs(event), "error", event.Error)...)
}
