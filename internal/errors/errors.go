package errors

import "fmt"

// ErrorCode represents a PyCodeOptimizer error code.
type ErrorCode string

const (
	ErrParseError     ErrorCode = "PARSE_ERROR"     // 422
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrIOError        ErrorCode = "IO_ERROR"        // 500
	ErrExecutionFault ErrorCode = "EXECUTION_FAULT" // 500
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// OptError represents a structured error with code, status, and details.
type OptError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *OptError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewParseError creates a 422 error for a compacted source that failed
// syntax validation. The diagnostic is the parser's message; line and
// column are included in details when the parser reported a location.
func NewParseError(diagnostic string, line, column int) *OptError {
	e := &OptError{
		Code:    ErrParseError,
		Status:  422,
		Message: fmt.Sprintf("optimization produced invalid code: %s", diagnostic),
		Details: map[string]any{"diagnostic": diagnostic},
	}
	if line > 0 {
		e.Details["line"] = line
		e.Details["column"] = column
	}
	return e
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *OptError {
	return &OptError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a run cannot be found.
func NewNotFound(identifier string) *OptError {
	return &OptError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("run not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewIOError creates a 500 error for a failed artifact read or write.
// Persistence failures are surfaced immediately, never retried.
func NewIOError(path string, err error) *OptError {
	return &OptError{
		Code:    ErrIOError,
		Status:  500,
		Message: fmt.Sprintf("artifact I/O failed for %s: %v", path, err),
		Details: map[string]any{"path": path},
	}
}

// NewExecutionFault creates a 500 error for when executing the compacted
// code failed or was cut off by the sandbox timeout. The stderr tail is
// included so callers can see why the measurement run died.
func NewExecutionFault(exitCode int, stderrTail string) *OptError {
	return &OptError{
		Code:    ErrExecutionFault,
		Status:  500,
		Message: fmt.Sprintf("execution of compacted code failed (exit %d)", exitCode),
		Details: map[string]any{"exit_code": exitCode, "stderr": stderrTail},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *OptError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &OptError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is an OptError with the given code.
func Is(err error, code ErrorCode) bool {
	if oErr, ok := err.(*OptError); ok {
		return oErr.Code == code
	}
	return false
}
