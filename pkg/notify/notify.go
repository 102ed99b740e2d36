package notify

import (
	"context"

	"go.uber.org/zap"
)

type Message struct {
	ToEmail   string
	ToName    string
	Subject   string
	PlainText string
	HTML      string
}

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// LogNotifier records messages in the log instead of sending them.
// Used when no SendGrid key is configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.With(zap.String("notifier", "log"))}
}

func (n *LogNotifier) Send(_ context.Context, msg Message) error {
	n.log.Info("Email not sent, no provider configured",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
	)
	return nil
}
