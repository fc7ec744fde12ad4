package chat

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ConversationStore is the slice of the store the orchestrator depends on.
// The orchestrator never writes to storage directly; every mutation goes
// through these methods.
type ConversationStore interface {
	// Get returns a copy of the conversation, or a *NotFoundError.
	Get(id string) (*Conversation, error)

	// Append appends a message and persists. A *PersistenceError means the
	// in-memory append succeeded but the durable write did not.
	Append(id string, role Role, content string) error

	// BeginSend atomically marks the conversation pending. It fails with
	// a *ConcurrentSendError when a send is already in flight, or a
	// *NotFoundError when the id is absent.
	BeginSend(id string) error

	// EndSend clears the pending flag.
	EndSend(id string)

	// DropLastAssistant removes the trailing assistant message, if any.
	DropLastAssistant(id string) error
}

// Settings is the configuration snapshot a single send operates under.
// APIKeys maps provider keys to credentials.
type Settings struct {
	Model        string
	Policy       ContextPolicy
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
	APIKeys      map[string]string
}

// Orchestrator coordinates a send: precondition checks, adapter resolution,
// context assembly, the network call, and reconciling the result into the
// store.
type Orchestrator struct {
	store    ConversationStore
	resolver Resolver
	settings func() Settings
	client   *http.Client
	logger   *zap.Logger
}

// NewOrchestrator creates an orchestrator. The settings function is called
// once per send so saved configuration takes effect without a restart.
func NewOrchestrator(store ConversationStore, resolver Resolver, settings func() Settings, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		store:    store,
		resolver: resolver,
		settings: settings,
		client:   &http.Client{Timeout: 120 * time.Second},
		logger:   logger,
	}
}

// SetHTTPClient replaces the HTTP client used for provider calls.
func (o *Orchestrator) SetHTTPClient(client *http.Client) {
	o.client = client
}

// SendMessage sends rawText on the given conversation and returns the
// assistant's reply. Preconditions are checked in order before any message
// mutation: empty input, concurrent send, missing API key, unknown model.
//
// Network, HTTP, and decode failures are recovered into an assistant
// message of the form "Error: <message>"; the same normalized error is
// returned so the caller can report status. Cancelling ctx discards the
// eventual response without touching the store beyond the already-appended
// user message.
func (o *Orchestrator) SendMessage(ctx context.Context, conversationID, rawText string) (string, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return "", &EmptyInputError{}
	}
	return o.send(ctx, conversationID, text, false)
}

// Retry strips exactly one trailing assistant message (error or success
// alike) and resends the last user message without appending it again.
func (o *Orchestrator) Retry(ctx context.Context, conversationID string) (string, error) {
	conv, err := o.store.Get(conversationID)
	if err != nil {
		return "", err
	}
	last := conv.LastUserMessage()
	if last == nil {
		return "", &EmptyInputError{}
	}
	return o.send(ctx, conversationID, last.Content, true)
}

func (o *Orchestrator) send(ctx context.Context, id, text string, retry bool) (string, error) {
	if err := o.store.BeginSend(id); err != nil {
		return "", err
	}
	defer o.store.EndSend(id)

	settings := o.settings()
	desc, err := o.resolver.Resolve(settings.Model)
	if err != nil {
		return "", err
	}
	apiKey := strings.TrimSpace(settings.APIKeys[desc.Key])
	if apiKey == "" {
		return "", &MissingAPIKeyError{Provider: desc.Key}
	}

	if retry {
		if err := o.appendOrLog(id, "dropping assistant message", o.store.DropLastAssistant(id)); err != nil {
			return "", err
		}
	} else {
		if err := o.appendOrLog(id, "persisting user message", o.store.Append(id, RoleUser, text)); err != nil {
			return "", err
		}
	}

	// Re-fetch: the store owns the conversation; never reuse state across
	// the suspension point below.
	conv, err := o.store.Get(id)
	if err != nil {
		return "", err
	}

	wire, err := desc.Adapter.Encode(Request{
		Endpoint:     desc.Endpoint,
		APIKey:       apiKey,
		Model:        settings.Model,
		SystemPrompt: settings.SystemPrompt,
		Messages:     AssembleContext(settings.Policy, conv.Messages),
		MaxTokens:    settings.MaxTokens,
		Temperature:  settings.Temperature,
	})
	if err != nil {
		return o.fail(id, &HTTPError{Status: 0, ProviderMessage: "encoding request: " + err.Error()})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wire.URL, bytes.NewReader(wire.Body))
	if err != nil {
		return o.fail(id, &NetworkError{Err: err})
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range wire.Headers {
		req.Header.Set(k, v)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			o.logger.Debug("send cancelled", zap.String("conversation_id", id))
			return "", ctx.Err()
		}
		return o.fail(id, &NetworkError{Err: err})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return o.fail(id, &NetworkError{Err: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return o.fail(id, &HTTPError{
			Status:          resp.StatusCode,
			ProviderMessage: desc.Adapter.DecodeError(resp.StatusCode, body),
		})
	}

	reply, err := desc.Adapter.Decode(body)
	if err != nil {
		return o.fail(id, &HTTPError{Status: resp.StatusCode, ProviderMessage: err.Error()})
	}

	if err := o.appendOrLog(id, "persisting assistant message", o.store.Append(id, RoleAssistant, reply)); err != nil {
		return "", err
	}
	return reply, nil
}

// fail reconciles a recoverable send failure: the transcript gets an
// assistant message carrying the error text, and the caller gets the same
// normalized error for status reporting.
func (o *Orchestrator) fail(id string, sendErr error) (string, error) {
	content := "Error: " + sendErr.Error()
	if err := o.appendOrLog(id, "persisting error message", o.store.Append(id, RoleAssistant, content)); err != nil {
		return "", err
	}
	return content, sendErr
}

// appendOrLog swallows persistence failures (the in-memory mutation stands)
// and propagates everything else.
func (o *Orchestrator) appendOrLog(id, op string, err error) error {
	if err == nil {
		return nil
	}
	var perr *PersistenceError
	if errors.As(err, &perr) {
		o.logger.Warn(op+" failed", zap.String("conversation_id", id), zap.Error(perr))
		return nil
	}
	return err
}
