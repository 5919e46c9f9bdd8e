package lookup

import "fmt"

// ValidationError reports malformed lookup input. It is terminal: no
// network call is made for a request that fails validation.
type ValidationError struct {
	FundCode string
	Reason   string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ConfigurationError reports a missing required credential. The credential
// name stays internal; callers surface a generic message.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("required credential %s is not configured", e.Key)
}
