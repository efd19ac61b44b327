package code

// Error code to message mapping.
var codeMessageMap = map[int]string{
	// Generic
	ErrSuccess:         "Success",
	ErrUnknown:         "An unexpected error occurred",
	ErrBind:            "Invalid request body",
	ErrValidation:      "Request validation failed",
	ErrTokenInvalid:    "Invalid or expired token",
	ErrTooManyRequests: "Rate limit exceeded. Please try again later",

	// Authentication
	ErrInvalidCredentials:  "Invalid username or password",
	ErrAdminNotFound:       "Administrator not found",
	ErrAdminInactive:       "Administrator account is not active",
	ErrRefreshTokenInvalid: "Invalid or expired refresh token",

	// Employees
	ErrEmployeeNotFound:   "Employee not found",
	ErrDuplicateEmail:     "Employee with this email already exists",
	ErrEmployeeNotDeleted: "Deleted employee not found",

	// Uploads
	ErrInvalidFile:     "Invalid file",
	ErrFileTooLarge:    "File too large",
	ErrPictureNotFound: "Profile picture not found",

	// Database
	ErrDatabase:       "Database error",
	ErrRecordNotFound: "Record not found",
}

// Error code to HTTP status mapping.
var codeStatusMap = map[int]int{
	// Generic
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	// Authentication
	ErrInvalidCredentials:  StatusUnauthorized,
	ErrAdminNotFound:       StatusNotFound,
	ErrAdminInactive:       StatusUnauthorized,
	ErrRefreshTokenInvalid: StatusUnauthorized,

	// Employees
	ErrEmployeeNotFound:   StatusNotFound,
	ErrDuplicateEmail:     StatusConflict,
	ErrEmployeeNotDeleted: StatusNotFound,

	// Uploads
	ErrInvalidFile:     StatusBadRequest,
	ErrFileTooLarge:    StatusPayloadTooLarge,
	ErrPictureNotFound: StatusNotFound,

	// Database
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage returns the message for an error code.
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Unknown error"
}

// GetStatus returns the HTTP status for an error code.
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
