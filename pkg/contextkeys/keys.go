package contextkeys

type contextKey string

const (
	ClaimsKey    contextKey = "Claims"
	AuthErrorKey contextKey = "AuthError"
	RequestIDKey contextKey = "RequestID"
)

// LoggerKey - ключ echo.Context, а не context.Context.
const LoggerKey = "logger"
