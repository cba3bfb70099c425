package logger

import (
	"context"
	"log/slog"
	"time"
)

// AuditEvent represents an account lifecycle audit event
type AuditEvent struct {
	EventType     string
	Username      string
	Success       bool
	FailureReason string
}

// AuditLogger provides audit logging for account lifecycle operations
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates a new audit logger
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{
		logger: logger,
	}
}

// LogLifecycleEvent logs registration, verification, login and reset outcomes
func (al *AuditLogger) LogLifecycleEvent(event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("audit_type", "account_lifecycle"),
		slog.String("event_type", event.EventType),
		slog.Bool("success", event.Success),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}

	if event.Username != "" {
		attrs = append(attrs, slog.String("username", event.Username))
	}
	if event.FailureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", event.FailureReason))
	}

	if event.Success {
		al.logger.LogAttrs(context.Background(), slog.LevelInfo, "audit", attrs...)
	} else {
		al.logger.LogAttrs(context.Background(), slog.LevelWarn, "audit", attrs...)
	}
}
