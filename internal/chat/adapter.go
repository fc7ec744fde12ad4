// Package chat provides the core abstractions of the chat client: the
// conversation model, the provider adapter contract, the error taxonomy,
// and the orchestrator that ties them together.
package chat

// Request carries everything an adapter needs to encode one provider call.
// Messages holds the policy-assembled history (user/assistant turns only);
// each adapter places the system prompt wherever its wire format wants it.
type Request struct {
	Endpoint     string
	APIKey       string
	Model        string
	SystemPrompt string
	Messages     []Message
	MaxTokens    int
	Temperature  float64
}

// WireRequest is a fully encoded provider request ready for one HTTP POST.
type WireRequest struct {
	URL     string
	Headers map[string]string
	Body    []byte
}

// Adapter translates between the internal conversation model and one
// provider's wire format.
type Adapter interface {
	// Encode produces the provider-specific URL, headers, and body.
	Encode(req Request) (*WireRequest, error)

	// Decode extracts the assistant's reply text from a success response
	// body.
	Decode(body []byte) (string, error)

	// DecodeError extracts a human-readable message from an error response
	// body. It never fails: when the body does not match the provider's
	// error envelope it falls back to a generic "HTTP status N" message.
	DecodeError(status int, body []byte) string
}

// Descriptor is the static metadata identifying a provider: its endpoint,
// wire-format adapter, and the model identifiers it serves. Descriptors
// are defined at startup and never mutated.
type Descriptor struct {
	Key      string
	Endpoint string
	Adapter  Adapter
	Models   []string
}

// Supports reports whether the descriptor serves the given model
// identifier. Matching is case-sensitive and exact.
func (d *Descriptor) Supports(modelID string) bool {
	for _, m := range d.Models {
		if m == modelID {
			return true
		}
	}
	return false
}

// Resolver maps a model identifier to its provider descriptor.
type Resolver interface {
	// Resolve returns the descriptor serving modelID, or an
	// *UnknownModelError when none does.
	Resolve(modelID string) (*Descriptor, error)
}
