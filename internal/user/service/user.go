package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	inErrors "github.com/lumiere-atelier/storefront/internal/errors"
	"github.com/lumiere-atelier/storefront/internal/log"
	commonOtel "github.com/lumiere-atelier/storefront/internal/otel"
	"github.com/lumiere-atelier/storefront/internal/session"
	"github.com/lumiere-atelier/storefront/internal/user/otel"
	"github.com/lumiere-atelier/storefront/internal/user/repository"
	"github.com/lumiere-atelier/storefront/user/pkg/request"
	"github.com/lumiere-atelier/storefront/user/pkg/response"
)

type UserService struct {
	repo     repository.AccountRepository
	resolver *session.Resolver
}

func NewUserService(repo repository.AccountRepository, resolver *session.Resolver) UserService {
	return UserService{repo: repo, resolver: resolver}
}

func (s UserService) Register(
	c context.Context,
	req request.Register,
) (response.Account, string, error) {
	c, span := otel.Tracer.Start(c, "UserService Register")
	defer span.End()

	email := strings.ToLower(strings.TrimSpace(req.Email))

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str(log.KeyEmail, email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "checking existing email").Logger()
	logger.Info().Msg("checking existing email")
	_, err := s.repo.FindByEmail(c, email)
	if err == nil {
		commonOtel.RecordError(inErrors.ErrEmailInUse, span)
		logger.Info().Msg("email already in use")
		return response.Account{}, "", inErrors.ErrEmailInUse
	}
	if !errors.Is(err, inErrors.ErrAccountNotFound) {
		err = fmt.Errorf("failed checking existing email with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Account{}, "", err
	}
	logger.Info().Msg("email is available")

	logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
	logger.Info().Msg("hashing password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Account{}, "", err
	}
	logger.Info().Msg("hashed password")

	logger = logger.With().Str(log.KeyProcess, "inserting account").Logger()
	logger.Info().Msg("inserting account")
	account, err := s.repo.Insert(c, repository.Account{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashed),
	})
	if err != nil {
		err = fmt.Errorf("failed inserting account with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		if errors.Is(err, inErrors.ErrEmailInUse) {
			return response.Account{}, "", inErrors.ErrEmailInUse
		}
		return response.Account{}, "", err
	}
	logger = logger.With().Str(log.KeyAccountID, account.ID).Logger()
	logger.Info().Msg("inserted account")

	logger = logger.With().Str(log.KeyProcess, "issuing account token").Logger()
	logger.Info().Msg("issuing account token")
	token, err := s.resolver.IssueAccountToken(c, account.ID)
	if err != nil {
		err = fmt.Errorf("failed issuing account token with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Account{}, "", err
	}
	logger.Info().Msg("issued account token")

	return toResponse(account), token, nil
}

func (s UserService) Login(
	c context.Context,
	req request.Login,
) (response.Account, string, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	email := strings.ToLower(strings.TrimSpace(req.Email))

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyEmail, email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding account").Logger()
	logger.Info().Msg("finding account")
	account, err := s.repo.FindByEmail(c, email)
	if err != nil {
		// Credential failures collapse to one error so callers cannot probe
		// which emails exist.
		if errors.Is(err, inErrors.ErrAccountNotFound) {
			commonOtel.RecordError(inErrors.ErrInvalidCredentials, span)
			logger.Info().Msg("account not found")
			return response.Account{}, "", inErrors.ErrInvalidCredentials
		}
		err = fmt.Errorf("failed finding account with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Account{}, "", err
	}
	logger = logger.With().Str(log.KeyAccountID, account.ID).Logger()
	logger.Info().Msg("found account")

	logger = logger.With().Str(log.KeyProcess, "comparing password").Logger()
	logger.Info().Msg("comparing password")
	err = bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password))
	if err != nil {
		commonOtel.RecordError(inErrors.ErrInvalidCredentials, span)
		logger.Info().Msg("password mismatch")
		return response.Account{}, "", inErrors.ErrInvalidCredentials
	}
	logger.Info().Msg("compared password")

	logger = logger.With().Str(log.KeyProcess, "issuing account token").Logger()
	logger.Info().Msg("issuing account token")
	token, err := s.resolver.IssueAccountToken(c, account.ID)
	if err != nil {
		err = fmt.Errorf("failed issuing account token with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Account{}, "", err
	}
	logger.Info().Msg("issued account token")

	return toResponse(account), token, nil
}

func (s UserService) FindAccount(c context.Context, id string) (response.Account, error) {
	c, span := otel.Tracer.Start(c, "UserService FindAccount")
	defer span.End()

	account, err := s.repo.FindByID(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding account with error=%w", err)
		commonOtel.RecordError(err, span)
		return response.Account{}, err
	}
	return toResponse(account), nil
}

func toResponse(account repository.Account) response.Account {
	return response.Account{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
	}
}
