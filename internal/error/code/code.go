package code

// HTTP status codes.
const (
	// StatusOK - 200: success.
	StatusOK = 200
	// StatusBadRequest - 400: malformed request.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: unauthorized.
	StatusUnauthorized = 401
	// StatusForbidden - 403: forbidden.
	StatusForbidden = 403
	// StatusNotFound - 404: resource not found.
	StatusNotFound = 404
	// StatusConflict - 409: conflicting resource state.
	StatusConflict = 409
	// StatusPayloadTooLarge - 413: request entity too large.
	StatusPayloadTooLarge = 413
	// StatusTooManyRequests - 429: too many requests.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: internal server error.
	StatusInternalServerError = 500
)

// Generic error codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request body binding error.
	ErrBind
	// ErrValidation - 400: request validation error.
	ErrValidation
	// ErrTokenInvalid - 401: invalid token.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: request rate too high.
	ErrTooManyRequests
)

// Authentication error codes (101xxx).
const (
	// ErrInvalidCredentials - 401: wrong username/email or password.
	ErrInvalidCredentials int = iota + 101000
	// ErrAdminNotFound - 404: administrator does not exist.
	ErrAdminNotFound
	// ErrAdminInactive - 401: administrator account disabled.
	ErrAdminInactive
	// ErrRefreshTokenInvalid - 401: refresh token expired or malformed.
	ErrRefreshTokenInvalid
)

// Employee error codes (102xxx).
const (
	// ErrEmployeeNotFound - 404: employee does not exist.
	ErrEmployeeNotFound int = iota + 102000
	// ErrDuplicateEmail - 409: another active employee holds the email.
	ErrDuplicateEmail
	// ErrEmployeeNotDeleted - 404: restore target is not soft-deleted.
	ErrEmployeeNotDeleted
)

// Upload error codes (103xxx).
const (
	// ErrInvalidFile - 400: upload rejected (type or content).
	ErrInvalidFile int = iota + 103000
	// ErrFileTooLarge - 413: upload exceeds the size limit.
	ErrFileTooLarge
	// ErrPictureNotFound - 404: no profile picture stored.
	ErrPictureNotFound
)

// Database error codes (105xxx).
const (
	// ErrDatabase - 500: database error.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: record does not exist.
	ErrRecordNotFound
)
