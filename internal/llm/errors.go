package llm

import "fmt"

// ErrorCode classifies provider failures.
type ErrorCode string

const (
	ErrCodeAuthentication ErrorCode = "authentication"
	ErrCodeTimeout        ErrorCode = "timeout"
	ErrCodeInvalidRequest ErrorCode = "invalid_request"
	ErrCodeRateLimited    ErrorCode = "rate_limited"
	ErrCodeModelNotFound  ErrorCode = "model_not_found"
	ErrCodeServerError    ErrorCode = "server_error"
)

// ProviderError is a typed failure from a model provider.
type ProviderError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm: %s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("llm: %s: %s", e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError builds a ProviderError.
func NewProviderError(code ErrorCode, message string, err error) *ProviderError {
	return &ProviderError{Code: code, Message: message, Err: err}
}
