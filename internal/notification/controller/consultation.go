package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	commonErrors "github.com/lumiere-atelier/storefront/internal/errors"
	commonHttp "github.com/lumiere-atelier/storefront/internal/http"
	"github.com/lumiere-atelier/storefront/internal/log"
	"github.com/lumiere-atelier/storefront/internal/notification/otel"
	"github.com/lumiere-atelier/storefront/internal/notification/service"
	"github.com/lumiere-atelier/storefront/notification/pkg/request"
)

type ConsultationController struct {
	service *service.ConsultationService
}

func AttachConsultationController(mux *mux.Router, service *service.ConsultationService) {
	controller := ConsultationController{service: service}

	router := mux.PathPrefix("/api/consultation").Subrouter()
	router.HandleFunc("", controller.RequestConsultation).Methods(http.MethodPost)
}

func (t ConsultationController) RequestConsultation(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ConsultationController RequestConsultation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ConsultationController RequestConsultation").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.Consultation{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "requesting consultation").Logger()
	logger.Info().Msg("requesting consultation")
	c = logger.WithContext(c)
	if err := t.service.RequestConsultation(c, reqBody); err != nil {
		err = fmt.Errorf("failed requesting consultation with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("requested consultation")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "consultation requested",
	})
}
