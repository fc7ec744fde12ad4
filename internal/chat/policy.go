package chat

// ContextPolicy chooses how much conversation history accompanies each
// outgoing request. This is a user-configurable trade-off between cost and
// continuity, not a provider property.
type ContextPolicy string

const (
	// PolicyFullHistory sends the entire ordered message history.
	PolicyFullHistory ContextPolicy = "full-history"

	// PolicyLastTurn sends only the most recent user message. The system
	// prompt is still included.
	PolicyLastTurn ContextPolicy = "last-turn-only"
)

// Valid reports whether the policy is one of the supported values.
func (p ContextPolicy) Valid() bool {
	return p == PolicyFullHistory || p == PolicyLastTurn
}

// AssembleContext applies the policy to a conversation's message history,
// producing the turns passed to the adapter. System messages never appear
// in the result; the system prompt travels separately on the Request.
func AssembleContext(policy ContextPolicy, messages []Message) []Message {
	if policy == PolicyLastTurn {
		for i := len(messages) - 1; i >= 0; i-- {
			if messages[i].Role == RoleUser {
				return []Message{messages[i]}
			}
		}
		return nil
	}

	out := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			continue
		}
		out = append(out, m)
	}
	return out
}
