package jamf

import "fmt"

// ConfigError reports invalid client configuration or invalid pagination
// parameters. It is always returned before any network I/O happens.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "jamf: invalid configuration: " + e.Reason
}

// AuthError reports a credential failure: the token endpoint rejected the
// client credentials, or an inventory request came back unauthorized twice
// in a row. It is fatal and never retried further.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("jamf: authentication failed: %s: %v", e.Reason, e.Err)
	}
	return "jamf: authentication failed: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

// APIError reports a non-success, non-401 response from the Jamf Pro API,
// or a transport failure (timeout, connection error) reaching it.
type APIError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("jamf: request to %s failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("jamf: %s returned status %d", e.Endpoint, e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Err }
