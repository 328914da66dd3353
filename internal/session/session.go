package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/lumiere-atelier/storefront/internal/common"
	inErrors "github.com/lumiere-atelier/storefront/internal/errors"
	"github.com/lumiere-atelier/storefront/internal/log"
	"github.com/lumiere-atelier/storefront/internal/otel"
)

const (
	// Guest identities outlive any realistic browsing gap; the cookie and the
	// redis record share this lifetime.
	GuestLifetime = 365 * 24 * time.Hour

	AccountTokenLifetime = 7 * 24 * time.Hour

	guestKeyFormat = "guest_session:%s"
)

// Account is the slice of an account the resolver needs to hand to handlers.
type Account struct {
	ID    string
	Name  string
	Email string
}

type AccountSource interface {
	FindSessionAccount(c context.Context, id string) (Account, error)
}

// Identity is the single resolved caller identity for a request: either an
// account or a guest, never both.
type Identity struct {
	Account     *Account
	GuestID     string
	MintedGuest bool
	// DiscardAccountToken instructs the transport layer to clear a presented
	// account token that failed verification or references a gone account.
	DiscardAccountToken bool
}

func (i Identity) IsAccount() bool {
	return i.Account != nil
}

type Resolver struct {
	secretKey  string
	accounts   AccountSource
	sessions   *redis.Client
	downgrades metric.Int64Counter
}

func NewResolver(secretKey string, accounts AccountSource, sessions *redis.Client) *Resolver {
	downgrades, err := otel.Meter.Int64Counter("session.credential_downgrades")
	if err != nil {
		downgrades = nil
	}
	return &Resolver{
		secretKey:  secretKey,
		accounts:   accounts,
		sessions:   sessions,
		downgrades: downgrades,
	}
}

// Resolve never fails the request: a bad account token silently downgrades to
// guest identity, recorded on the span and the downgrade counter only.
func (r *Resolver) Resolve(c context.Context, accountToken string, guestToken string) Identity {
	c, span := otel.Tracer.Start(c, "Resolver Resolve")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Resolver Resolve").
		Logger()

	if accountToken != "" {
		logger = logger.With().Str(log.KeyProcess, "verifying account token").Logger()
		logger.Trace().Msg("verifying account token")
		account, err := r.verifyAccountToken(c, accountToken)
		if err == nil {
			logger = logger.With().Str(log.KeyAccountID, account.ID).Logger()
			logger.Info().Msg("verified account token")
			return Identity{Account: &account}
		}
		err = fmt.Errorf("failed verifying presented account token with error=%w", err)
		otel.RecordError(err, span)
		if r.downgrades != nil {
			r.downgrades.Add(c, 1)
		}
		logger.Warn().Err(err).Msg("downgrading to guest identity")
		return r.resolveGuest(c, guestToken, true)
	}

	return r.resolveGuest(c, guestToken, false)
}

func (r *Resolver) resolveGuest(c context.Context, guestToken string, discard bool) Identity {
	c, span := otel.Tracer.Start(c, "Resolver resolveGuest")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Resolver resolveGuest").
		Logger()

	if guestToken != "" {
		// Reused as-is, never rotated; refresh the redis record so an active
		// guest never expires mid-browse.
		if r.sessions != nil {
			err := r.sessions.Set(c, fmt.Sprintf(guestKeyFormat, guestToken), time.Now().Unix(), GuestLifetime).
				Err()
			if err != nil {
				err = fmt.Errorf("failed refreshing guest session with error=%w", err)
				otel.RecordError(err, span)
				logger.Warn().Err(err).Msg(err.Error())
			}
		}
		return Identity{GuestID: guestToken, DiscardAccountToken: discard}
	}

	logger = logger.With().Str(log.KeyProcess, "minting guest identity").Logger()
	guestID := uuid.NewString()
	logger = logger.With().Str(log.KeyGuestID, guestID).Logger()
	logger.Info().Msg("minting guest identity")
	if r.sessions != nil {
		err := r.sessions.Set(c, fmt.Sprintf(guestKeyFormat, guestID), time.Now().Unix(), GuestLifetime).
			Err()
		if err != nil {
			err = fmt.Errorf("failed recording guest session with error=%w", err)
			otel.RecordError(err, span)
			logger.Warn().Err(err).Msg(err.Error())
		}
	}
	logger.Info().Msg("minted guest identity")

	return Identity{GuestID: guestID, MintedGuest: true, DiscardAccountToken: discard}
}

func (r *Resolver) verifyAccountToken(c context.Context, token string) (Account, error) {
	c, span := otel.Tracer.Start(c, "Resolver verifyAccountToken")
	defer span.End()

	jwtToken, err := jwt.ParseWithClaims(token,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(r.secretKey), nil
		},
		jwt.WithAudience(common.AudienceShopper),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(common.TokenIssuer),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing claims with error=%w", err)
		otel.RecordError(err, span)
		return Account{}, err
	}
	if !jwtToken.Valid {
		otel.RecordError(inErrors.ErrTokenInvalid, span)
		return Account{}, inErrors.ErrTokenInvalid
	}

	subject, err := jwtToken.Claims.GetSubject()
	if err != nil {
		err = fmt.Errorf("failed getting subject from token with error=%w", err)
		otel.RecordError(err, span)
		return Account{}, err
	}

	account, err := r.accounts.FindSessionAccount(c, subject)
	if err != nil {
		err = fmt.Errorf("failed finding account for subject=%s with error=%w", subject, err)
		otel.RecordError(err, span)
		return Account{}, err
	}

	return account, nil
}

func (r *Resolver) IssueAccountToken(c context.Context, accountID string) (string, error) {
	_, span := otel.Tracer.Start(c, "Resolver IssueAccountToken")
	defer span.End()

	now := time.Now()
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{common.AudienceShopper},
			Issuer:    common.TokenIssuer,
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(now.Add(AccountTokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	)

	signed, err := token.SignedString([]byte(r.secretKey))
	if err != nil {
		err = fmt.Errorf("failed signing account token with error=%w", err)
		otel.RecordError(err, span)
		return "", err
	}
	return signed, nil
}

type identityKey struct{}

func AttachIdentity(c context.Context, identity Identity) context.Context {
	return context.WithValue(c, identityKey{}, identity)
}

func IdentityFromContext(c context.Context) Identity {
	identity, ok := c.Value(identityKey{}).(Identity)
	if !ok {
		return Identity{}
	}
	return identity
}
