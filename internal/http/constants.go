package http

const (
	KeyHeaderContentType = "Content-Type"
	KeyHeaderRequestID   = "X-Request-Id"

	ValueHeaderApplicationJson = "application/json"
)

const (
	CookieAccountToken = "token"
	CookieGuestSession = "sessionId"
)
