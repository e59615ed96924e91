package llm

// Error format strings.
const (
	errRateLimiter       = "rate limiter: %w"
	errFmtMarshalRequest = "marshal request: %w"
	errFmtCreateRequest  = "create request: %w"
	errFmtReadResponse   = "read response: %w"
	errFmtAPIWithMessage = "%w (%d): %s"
	errFmtAPIStatusOnly  = "%w: status %d"
)

// HTTP header values.
const (
	contentTypeJSON     = "application/json"
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
)

// Log field keys.
const (
	logKeyProvider = "provider"
	logKeyTask     = "task"
	logKeyAttempt  = "attempt"
	logKeyAttempts = "attempts"
)

// Request status for metrics.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Rate limiter settings.
const (
	rateLimiterBurst = 5
)
