package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/greenstrikas/platform/internal/models"
	pkglogger "github.com/greenstrikas/platform/pkg/logger"
)

// Notifier delivers a token to a user's email address. The lifecycle
// manager only cares about the outcome, not the transport.
type Notifier interface {
	Deliver(ctx context.Context, email, token string, purpose models.TokenKind) error
}

// LogNotifier is the simulated transport. It logs each delivery and keeps
// the last token per email so it can be retrieved out-of-band during
// development and tests.
type LogNotifier struct {
	mu     sync.Mutex
	logger *slog.Logger
	last   map[string]string
}

// NewLogNotifier creates a simulated notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger,
		last:   make(map[string]string),
	}
}

// Deliver records the token and logs the delivery. It never fails.
func (n *LogNotifier) Deliver(ctx context.Context, email, token string, purpose models.TokenKind) error {
	n.mu.Lock()
	n.last[email] = token
	n.mu.Unlock()

	n.logger.Info("simulated email delivery",
		slog.String("email", pkglogger.SanitizedEmail(email)),
		slog.String("purpose", string(purpose)))

	return nil
}

// LastToken returns the most recently delivered token for an email address.
func (n *LogNotifier) LastToken(email string) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	token, ok := n.last[email]
	return token, ok
}
