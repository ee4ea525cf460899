package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

//go:generate mockgen -source=mailer.go -destination=mock/mailer_mock.go -package=mock
type Mailer interface {
	SendPasswordReset(ctx context.Context, toEmail, toName, resetURL string) error
}

type smtpMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	logger   *zap.Logger
}

// NewSMTP builds the mailer. With no host configured it degrades to a
// logger-only mailer so development setups work without a relay.
func NewSMTP(host, port, username, password, from string, logger ...*zap.Logger) Mailer {
	l := zap.L().Named("mail")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mail")
	}
	return &smtpMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		logger:   l,
	}
}

func (m *smtpMailer) SendPasswordReset(ctx context.Context, toEmail, toName, resetURL string) error {
	if m.host == "" {
		m.logger.Info("smtp not configured, reset link logged instead",
			zap.String("to", toEmail),
			zap.String("url", resetURL),
		)
		return nil
	}

	subject := "Redefinição de senha"
	body := fmt.Sprintf(
		"Olá %s,\r\n\r\nRecebemos um pedido para redefinir a sua senha.\r\nAcesse o link abaixo para criar uma nova senha (válido por 1 hora):\r\n\r\n%s\r\n\r\nSe você não pediu a redefinição, ignore este e-mail.\r\n",
		toName, resetURL,
	)

	msg := []byte(
		"From: " + m.from + "\r\n" +
			"To: " + toEmail + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" + body,
	)

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.from, []string{toEmail}, msg); err != nil {
		m.logger.Error("send password reset mail failed",
			zap.String("to", toEmail),
			zap.Error(err),
		)
		return err
	}
	return nil
}
