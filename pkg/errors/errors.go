package errors

import "fmt"

var (
	// ErrInvalidLoggerInstance is returned when logger instance is not supported.
	ErrInvalidLoggerInstance = New("Invalid logger instance")
	// ErrInvalidEnvironemt is returned when the env is incorrect.
	ErrInvalidEnvironemt = New("Invalid Environment")
	// ErrMissingMetricsEndpoint is returned when a remote metrics fetch is requested without an endpoint.
	ErrMissingMetricsEndpoint = New("Missing test metrics endpoint in config")
	// ErrUnsupportedCIProvider is returned when the configured CI provider has no matrix renderer.
	ErrUnsupportedCIProvider = New("unsupported CI provider")
	// ErrEmptyShardPlan is returned when a CI matrix is rendered from a plan with no shards.
	ErrEmptyShardPlan = New("shard plan contains no shards")
)

// Error represents a json-encoded error.
type Error struct {
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// New returns a new error message.
func New(text string) error {
	return &Error{Message: text}
}

// MissingCapabilityImageErr is a error function corresponding to capabilities with no service image mapping.
func MissingCapabilityImageErr(capability string) error {
	return New(fmt.Sprintf("No service image configured for capability %s.", capability))
}

// InvalidSpecPatternErr is a error function corresponding to malformed spec glob patterns.
func InvalidSpecPatternErr(pattern string) error {
	return New(fmt.Sprintf("Invalid spec pattern %s.", pattern))
}
