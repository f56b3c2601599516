package response

// ErrCode is a typed error code enum for consistent error identification.
// The wire carries only the message; codes drive logging and tests.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrAuthRequired    ErrCode = "AUTH_REQUIRED"
	ErrInvalidSecret   ErrCode = "INVALID_SECRET"
	ErrStudentNotFound ErrCode = "STUDENT_NOT_FOUND"
	ErrConfig          ErrCode = "CONFIG_ERROR"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "VALIDATION_ERROR"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Dispatch ──────────────────────────────────────────────────────
	ErrUnknownAction ErrCode = "UNKNOWN_ACTION"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// AppError is a domain error with a stable code and a client-facing
// message.
type AppError struct {
	Code    ErrCode
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// New creates an AppError with an explicit message.
func New(code ErrCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewCode creates an AppError with the code's default message.
func NewCode(code ErrCode) *AppError {
	return &AppError{Code: code, Message: GetMessage(code)}
}

// GetMessage returns the default human-readable message for a code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrAuthRequired:
		return "Unauthorized"
	case ErrInvalidSecret:
		return "Invalid Teacher Secret"
	case ErrStudentNotFound:
		return "Student not found or inactive"
	case ErrConfig:
		return "Teacher secret is not configured"
	case ErrValidation:
		return "Validation failed"
	case ErrNotFound:
		return "Resource not found"
	case ErrConflict:
		return "Resource already exists"
	case ErrUnknownAction:
		return "Unknown action"
	default:
		return "Internal server error"
	}
}
