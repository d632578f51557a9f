package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/HerbHall/fleetadvisor/internal/llm"
)

// mapError translates Gemini SDK and network errors into typed
// llm.ProviderError values.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	// Context errors.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return llm.NewProviderError(llm.ErrCodeTimeout, "request timed out or cancelled", err)
	}

	// Gemini API error responses.
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
			return llm.NewProviderError(llm.ErrCodeAuthentication, apiErr.Message, err)
		case apiErr.Code == http.StatusNotFound && strings.Contains(strings.ToLower(apiErr.Message), "model"):
			return llm.NewProviderError(llm.ErrCodeModelNotFound, apiErr.Message, err)
		case apiErr.Code == http.StatusTooManyRequests:
			return llm.NewProviderError(llm.ErrCodeRateLimited, apiErr.Message, err)
		case apiErr.Code >= 500:
			return llm.NewProviderError(llm.ErrCodeServerError, apiErr.Message, err)
		case apiErr.Code >= 400:
			return llm.NewProviderError(llm.ErrCodeInvalidRequest, apiErr.Message, err)
		}
	}

	// Connection refused, DNS errors, etc.
	msg := err.Error()
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "dial tcp") {
		return llm.NewProviderError(llm.ErrCodeServerError, "gemini endpoint unreachable", err)
	}

	return llm.NewProviderError(llm.ErrCodeServerError, "gemini error", err)
}
