package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	pkglogger "github.com/samuel890456/HogarPeludo-sub001/pkg/logger"
)

// EmailSender is the send contract for the email collaborator. Delivery is
// best-effort: callers log failures and never surface them to clients.
type EmailSender interface {
	SendPasswordResetEmail(ctx context.Context, email, token string) error
	SendAdoptionRequestEmail(ctx context.Context, email, ownerName, requesterName, petName, comment string) error
}

// AWSSESEmailSender sends platform emails using AWS SES
type AWSSESEmailSender struct {
	sesClient   *ses.Client
	fromAddress string
	frontendURL string
	logger      *slog.Logger
}

// NewAWSSESEmailSender creates a new AWS SES email sender
func NewAWSSESEmailSender(region, fromAddress, frontendURL string, logger *slog.Logger) (*AWSSESEmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSESEmailSender{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		frontendURL: frontendURL,
		logger:      logger,
	}, nil
}

// SendPasswordResetEmail sends the reset link for a forgotten password.
func (s *AWSSESEmailSender) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, token)

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body>
    <div style="max-width: 600px; margin: 0 auto; font-family: Arial, sans-serif;">
        <h1>Restablecer tu contraseña</h1>
        <p>Recibimos una solicitud para restablecer la contraseña de tu cuenta de Hogar Peludo.</p>
        <p><a href="%s" style="display: inline-block; background-color: #e8734a; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px;">Restablecer contraseña</a></p>
        <p>O copia y pega este enlace en tu navegador:<br><code>%s</code></p>
        <p>El enlace expira en 1 hora. Si no solicitaste el cambio, ignora este correo.</p>
    </div>
</body>
</html>
`, resetLink, resetLink)

	textBody := fmt.Sprintf(`Restablecer tu contraseña

Recibimos una solicitud para restablecer la contraseña de tu cuenta de Hogar Peludo.

%s

El enlace expira en 1 hora. Si no solicitaste el cambio, ignora este correo.
`, resetLink)

	return s.send(ctx, email, "Restablecer tu contraseña - Hogar Peludo", htmlBody, textBody)
}

// SendAdoptionRequestEmail notifies a pet owner about a new adoption request.
func (s *AWSSESEmailSender) SendAdoptionRequestEmail(ctx context.Context, email, ownerName, requesterName, petName, comment string) error {
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body>
    <div style="max-width: 600px; margin: 0 auto; font-family: Arial, sans-serif;">
        <h1>Nueva solicitud de adopción</h1>
        <p>Hola %s,</p>
        <p><strong>%s</strong> quiere adoptar a <strong>%s</strong>.</p>
        <p>Mensaje del solicitante:</p>
        <blockquote style="border-left: 4px solid #e8734a; padding-left: 12px;">%s</blockquote>
        <p>Entra a la plataforma para revisar la solicitud.</p>
    </div>
</body>
</html>
`, ownerName, requesterName, petName, comment)

	textBody := fmt.Sprintf(`Nueva solicitud de adopción

Hola %s,

%s quiere adoptar a %s.

Mensaje del solicitante:
%s

Entra a la plataforma para revisar la solicitud.
`, ownerName, requesterName, petName, comment)

	return s.send(ctx, email, fmt.Sprintf("Nueva solicitud de adopción para %s", petName), htmlBody, textBody)
}

func (s *AWSSESEmailSender) send(ctx context.Context, email, subject, htmlBody, textBody string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromAddress),
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

	result, err := s.sesClient.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("failed to send email via SES",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.String("subject", subject),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("email sent",
		slog.String("email", pkglogger.SanitizedEmail(email)),
		slog.String("message_id", *result.MessageId))

	return nil
}
