package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"github.com/lumiere-atelier/storefront/internal/config"
	"github.com/lumiere-atelier/storefront/internal/log"
	"github.com/lumiere-atelier/storefront/internal/notification/otel"
	commonOtel "github.com/lumiere-atelier/storefront/internal/otel"
)

type Mailer interface {
	SendHTML(c context.Context, to string, subject string, body string) error
}

type SMTPMailer struct {
	host     string
	port     uint16
	username string
	password string
	from     string
}

func NewSMTPMailer(cfg config.Mailer) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.AtelierEmail,
	}
}

func (s *SMTPMailer) SendHTML(
	c context.Context,
	to string,
	subject string,
	body string,
) error {
	c, span := otel.Tracer.Start(c, "SMTPMailer SendHTML")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SMTPMailer SendHTML").
		Str(log.KeyEmail, to).
		Logger()

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	msg := []byte(
		"From: \"LUMIÈRE\" <" + s.from + ">\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			body,
	)

	logger.Info().Msg("sending mail")
	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg); err != nil {
		err = fmt.Errorf("failed sending mail with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("sent mail")

	return nil
}
