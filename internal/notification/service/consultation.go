package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lumiere-atelier/storefront/internal/log"
	"github.com/lumiere-atelier/storefront/internal/notification/mailer"
	"github.com/lumiere-atelier/storefront/internal/notification/otel"
	commonOtel "github.com/lumiere-atelier/storefront/internal/otel"
	"github.com/lumiere-atelier/storefront/notification/pkg/request"
)

type ConsultationService struct {
	mail         mailer.Mailer
	atelierEmail string
}

func NewConsultationService(mail mailer.Mailer, atelierEmail string) ConsultationService {
	return ConsultationService{mail: mail, atelierEmail: atelierEmail}
}

// RequestConsultation forwards a private-consultation inquiry to the atelier
// inbox. Unlike order confirmations, a delivery failure here fails the
// request, since the mail is the whole point of the operation.
func (s ConsultationService) RequestConsultation(
	c context.Context,
	req request.Consultation,
) error {
	c, span := otel.Tracer.Start(c, "ConsultationService RequestConsultation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ConsultationService RequestConsultation").
		Str(log.KeyEmail, req.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "rendering inquiry").Logger()
	logger.Info().Msg("rendering inquiry")
	body, err := mailer.ConsultationBody(req.Name, req.Email, req.Preferences)
	if err != nil {
		err = fmt.Errorf("failed rendering inquiry with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("rendered inquiry")

	logger = logger.With().Str(log.KeyProcess, "sending inquiry").Logger()
	logger.Info().Msg("sending inquiry")
	c = logger.WithContext(c)
	err = s.mail.SendHTML(c, s.atelierEmail, mailer.ConsultationSubject(req.Name), body)
	if err != nil {
		err = fmt.Errorf("failed sending inquiry with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("sent inquiry")

	return nil
}
