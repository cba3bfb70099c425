package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/greenstrikas/platform/internal/models"
	pkglogger "github.com/greenstrikas/platform/pkg/logger"
)

// SESNotifier sends verification and reset emails through AWS SES.
type SESNotifier struct {
	sesClient   *ses.Client
	fromAddress string
	baseURL     string
	logger      *slog.Logger
}

// NewSESNotifier creates a notifier backed by AWS SES.
func NewSESNotifier(region, fromAddress, baseURL string, logger *slog.Logger) (*SESNotifier, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SESNotifier{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		baseURL:     baseURL,
		logger:      logger,
	}, nil
}

// Deliver sends the token to the address for the given purpose.
func (n *SESNotifier) Deliver(ctx context.Context, email, token string, purpose models.TokenKind) error {
	var subject, link, intro, expiry string
	switch purpose {
	case models.TokenKindReset:
		subject = "Reset your Greenstrikas password"
		link = fmt.Sprintf("%s/reset-password?token=%s", n.baseURL, token)
		intro = "We received a request to reset the password for your Greenstrikas account. Use the link below to choose a new password:"
		expiry = "1 hour"
	default:
		subject = "Verify your email address"
		link = fmt.Sprintf("%s/verify-email?token=%s", n.baseURL, token)
		intro = "Thank you for creating a Greenstrikas account. To complete your registration, please verify your email address using the link below:"
		expiry = "24 hours"
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .button { display: inline-block; background-color: #1B5E20; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; margin: 20px 0; }
        .footer { color: #666; font-size: 12px; margin-top: 20px; padding-top: 20px; border-top: 1px solid #eee; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
        <p><a href="%s" class="button">%s</a></p>
        <p>Or copy and paste this link in your browser:<br><code>%s</code></p>
        <p><strong>This link will expire in %s.</strong></p>
        <p>If you didn't request this email, you can safely ignore it.</p>
        <div class="footer">
            <p>This is an automated message from the Greenstrikas climate finance platform. Please do not reply.</p>
        </div>
    </div>
</body>
</html>
`, subject, intro, link, subject, link, expiry)

	textBody := fmt.Sprintf(`%s

%s

%s

This link will expire in %s.

If you didn't request this email, you can safely ignore it.

This is an automated message from the Greenstrikas climate finance platform. Please do not reply.
`, subject, intro, link, expiry)

	input := &ses.SendEmailInput{
		Source: aws.String(n.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{email},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(htmlBody),
				},
				Text: &types.Content{
					Data: aws.String(textBody),
				},
			},
		},
	}

	result, err := n.sesClient.SendEmail(ctx, input)
	if err != nil {
		n.logger.Error("failed to send email via SES",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.String("purpose", string(purpose)),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Info("email sent",
		slog.String("email", pkglogger.SanitizedEmail(email)),
		slog.String("purpose", string(purpose)),
		slog.String("message_id", *result.MessageId))

	return nil
}
