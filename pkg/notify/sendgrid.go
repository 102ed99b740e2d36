package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type SendGridNotifier struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	log       *zap.Logger
}

func NewSendGridNotifier(apiKey, fromEmail, fromName string, log *zap.Logger) *SendGridNotifier {
	return &SendGridNotifier{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		log:       log.With(zap.String("notifier", "sendgrid")),
	}
}

func (n *SendGridNotifier) Send(ctx context.Context, msg Message) error {
	message := buildMail(n.fromEmail, n.fromName, msg)

	resp, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		n.log.Error("Failed to send email", zap.Error(err), zap.String("to", msg.ToEmail))
		return fmt.Errorf("send email: %w", err)
	}

	if resp.StatusCode >= 400 {
		n.log.Error("SendGrid rejected email",
			zap.Int("status", resp.StatusCode),
			zap.String("body", resp.Body),
			zap.String("to", msg.ToEmail),
		)
		return fmt.Errorf("sendgrid error: status %d", resp.StatusCode)
	}

	return nil
}

func buildMail(fromEmail, fromName string, msg Message) *mail.SGMailV3 {
	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	return mail.NewSingleEmail(from, msg.Subject, to, msg.PlainText, msg.HTML)
}
