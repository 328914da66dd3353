package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	cartRepository "github.com/lumiere-atelier/storefront/internal/cart/repository"
	cartService "github.com/lumiere-atelier/storefront/internal/cart/service"
	commonErrors "github.com/lumiere-atelier/storefront/internal/errors"
	commonHttp "github.com/lumiere-atelier/storefront/internal/http"
	"github.com/lumiere-atelier/storefront/internal/log"
	"github.com/lumiere-atelier/storefront/internal/session"
	"github.com/lumiere-atelier/storefront/internal/user/otel"
	"github.com/lumiere-atelier/storefront/internal/user/service"
	"github.com/lumiere-atelier/storefront/user/pkg/request"
)

type UserController struct {
	users service.UserService
	carts cartService.CartService
}

func AttachUserController(
	mux *mux.Router,
	users service.UserService,
	carts cartService.CartService,
) {
	controller := UserController{users: users, carts: carts}

	router := mux.PathPrefix("/api/auth").Subrouter()
	router.HandleFunc("/signup", controller.Signup).Methods(http.MethodPost)
	router.HandleFunc("/login", controller.Login).Methods(http.MethodPost)
	router.HandleFunc("/logout", controller.Logout).Methods(http.MethodPost)
	router.HandleFunc("/me", controller.Me).Methods(http.MethodGet)
}

func (t UserController) Signup(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController Signup")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController Signup").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.Register{}
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

	logger = logger.With().Str(log.KeyProcess, "registering account").Logger()
	logger.Info().Msg("registering account")
	c = logger.WithContext(c)
	account, token, err := t.users.Register(c, reqBody)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusInternalServerError
		if errors.Is(err, commonErrors.ErrEmailInUse) {
			statusCode = http.StatusConflict
		}
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyAccountID, account.ID).Logger()
	logger.Info().Msg("registered account")

	if err := t.adoptGuestCart(c, account.ID); err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}

	setAccountTokenCookie(w, token)
	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "account created",
		"data":       map[string]interface{}{"user": account},
	})
}

func (t UserController) Login(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController Login").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.Login{}
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

	logger = logger.With().Str(log.KeyProcess, "logging in").Logger()
	logger.Info().Msg("logging in")
	c = logger.WithContext(c)
	account, token, err := t.users.Login(c, reqBody)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusInternalServerError
		if errors.Is(err, commonErrors.ErrInvalidCredentials) {
			statusCode = http.StatusUnauthorized
		}
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyAccountID, account.ID).Logger()
	logger.Info().Msg("logged in")

	if err := t.adoptGuestCart(c, account.ID); err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}

	setAccountTokenCookie(w, token)
	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "logged in",
		"data":       map[string]interface{}{"user": account},
	})
}

func (t UserController) Logout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController Logout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController Logout").
		Logger()

	identity := session.IdentityFromContext(c)
	if identity.IsAccount() {
		logger = logger.With().
			Str(log.KeyProcess, "clearing account cart").
			Str(log.KeyAccountID, identity.Account.ID).
			Logger()
		logger.Info().Msg("clearing account cart")
		c = logger.WithContext(c)
		err := t.carts.ClearCart(c, cartRepository.AccountOwner(identity.Account.ID))
		if err != nil {
			err = fmt.Errorf("failed clearing account cart with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     "failed",
				"statusCode": http.StatusInternalServerError,
				"message":    err.Error(),
			})
			return
		}
		logger.Info().Msg("cleared account cart")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     commonHttp.CookieAccountToken,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "logged out",
	})
}

func (t UserController) Me(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController Me")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController Me").
		Logger()

	identity := session.IdentityFromContext(c)
	if !identity.IsAccount() {
		commonErrors.HandleError(commonErrors.ErrNotAuthenticated, span)
		logger.Info().Msg("request is not authenticated")
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    commonErrors.ErrNotAuthenticated.Error(),
		})
		return
	}

	logger = logger.With().
		Str(log.KeyProcess, "finding account").
		Str(log.KeyAccountID, identity.Account.ID).
		Logger()
	logger.Info().Msg("finding account")
	c = logger.WithContext(c)
	account, err := t.users.FindAccount(c, identity.Account.ID)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found account")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found account",
		"data":       map[string]interface{}{"user": account},
	})
}

// adoptGuestCart hands a guest's cart to the account they just authenticated
// as; a non-empty guest cart wins over the account's stored cart.
func (t UserController) adoptGuestCart(c context.Context, accountID string) error {
	identity := session.IdentityFromContext(c)
	if identity.GuestID == "" {
		return nil
	}
	err := t.carts.MergeGuestIntoAccount(c, identity.GuestID, accountID)
	if err != nil {
		return fmt.Errorf("failed merging guest cart into account with error=%w", err)
	}
	return nil
}

func setAccountTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     commonHttp.CookieAccountToken,
		Value:    token,
		Path:     "/",
		MaxAge:   int(session.AccountTokenLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
