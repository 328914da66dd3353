package log

const (
	KeyAppName            = "app"
	KeyRequestID          = "requestId"
	KeyProcess            = "process"
	KeyTag                = "tag"
	KeyConfig             = "config"
	KeyEmail              = "email"
	KeyToken              = "token"
	KeyAccountID          = "accountId"
	KeyGuestID            = "guestId"
	KeyOrderID            = "orderId"
	KeyProductID          = "productId"
	KeyCart               = "cart"
	KeyCartItems          = "cartItems"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestIp          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyRequestProcessedAt = "requestProcessedAt"
)
