package middleware

import (
	"net/http"

	"github.com/rs/zerolog"

	inHttp "github.com/lumiere-atelier/storefront/internal/http"
	"github.com/lumiere-atelier/storefront/internal/log"
	"github.com/lumiere-atelier/storefront/internal/otel"
	"github.com/lumiere-atelier/storefront/internal/session"
)

// Sessionize resolves the caller identity for every request. It never rejects:
// a missing or bad account token downgrades to guest identity, and a fresh
// guest identity is minted and persisted on the caller when none is presented.
func Sessionize(resolver *session.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, span := otel.Tracer.Start(r.Context(), "middleware Sessionize")
			defer span.End()

			logger := zerolog.Ctx(c).
				With().
				Str(log.KeyTag, "middleware Sessionize").
				Logger()
			c = logger.WithContext(c)

			accountToken := ""
			if cookie, err := r.Cookie(inHttp.CookieAccountToken); err == nil {
				accountToken = cookie.Value
			}
			guestToken := ""
			if cookie, err := r.Cookie(inHttp.CookieGuestSession); err == nil {
				guestToken = cookie.Value
			}

			identity := resolver.Resolve(c, accountToken, guestToken)

			if identity.DiscardAccountToken {
				logger.Warn().Msg("discarding presented account token")
				http.SetCookie(w, &http.Cookie{
					Name:     inHttp.CookieAccountToken,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					HttpOnly: true,
				})
			}
			if identity.MintedGuest {
				http.SetCookie(w, &http.Cookie{
					Name:     inHttp.CookieGuestSession,
					Value:    identity.GuestID,
					Path:     "/",
					MaxAge:   int(session.GuestLifetime.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c = session.AttachIdentity(c, identity)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
