package constvars

const (
	HeaderContentType = "Content-Type"
	HeaderXRequestID  = "X-Request-Id"

	MIMEApplicationJSON = "application/json"
)
