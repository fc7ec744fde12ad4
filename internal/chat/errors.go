package chat

import "fmt"

// EmptyInputError reports a send attempt with empty or whitespace-only text.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "message is empty"
}

// ConcurrentSendError reports a send attempt while another send for the
// same conversation is still in flight.
type ConcurrentSendError struct {
	ConversationID string
}

func (e *ConcurrentSendError) Error() string {
	return fmt.Sprintf("a request is already in flight for conversation %s", e.ConversationID)
}

// MissingAPIKeyError reports that no API key is configured for the
// resolved provider.
type MissingAPIKeyError struct {
	Provider string
}

func (e *MissingAPIKeyError) Error() string {
	if e.Provider == "" {
		return "no API key configured"
	}
	return fmt.Sprintf("no API key configured for provider %s", e.Provider)
}

// UnknownModelError reports a model identifier no registered provider
// supports.
type UnknownModelError struct {
	Model string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown model: %s", e.Model)
}

// NotFoundError reports an operation on a conversation id absent from
// the store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("conversation not found: %s", e.ID)
}

// NetworkError reports a transport failure with no HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError reports a non-2xx response, or a 2xx response whose body
// could not be decoded. ProviderMessage is extracted from the provider's
// error envelope, falling back to a generic "HTTP status N" message.
type HTTPError struct {
	Status          int
	ProviderMessage string
}

func (e *HTTPError) Error() string {
	return e.ProviderMessage
}

// PersistenceError reports a failed durable write. The in-memory mutation
// that triggered the write remains applied; callers log and continue.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
