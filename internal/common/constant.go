package common

const (
	// APIKeyHeaderName carries the gateway API key on every request.
	APIKeyHeaderName = "apikey"

	// RequestIDHeaderName is echoed back by the gateway for log correlation.
	RequestIDHeaderName = "X-Request-Id"
)
