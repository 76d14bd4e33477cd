package mail

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogMailer is the development transport used when no SMTP host is
// configured. Instead of delivering, it logs the message with a generated
// preview reference so the rendered mail can be inspected in the logs.
type LogMailer struct {
	log *slog.Logger
}

// NewLogMailer constructs a LogMailer writing to the given logger.
func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send logs the message instead of delivering it. It never fails.
func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.log.InfoContext(ctx, "mail preview",
		"preview_id", uuid.NewString(),
		"to", msg.To.Email,
		"subject", msg.Subject,
		"body", msg.HTML,
	)
	return nil
}
