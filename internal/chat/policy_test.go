package chat

import (
	"testing"
	"time"
)

func TestContextPolicyValid(t *testing.T) {
	tests := []struct {
		policy ContextPolicy
		want   bool
	}{
		{PolicyFullHistory, true},
		{PolicyLastTurn, true},
		{ContextPolicy(""), false},
		{ContextPolicy("everything"), false},
	}
	for _, tt := range tests {
		if got := tt.policy.Valid(); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.policy, got, tt.want)
		}
	}
}

func TestAssembleContext(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	history := []Message{
		{Role: RoleUser, Content: "one", Timestamp: now},
		{Role: RoleAssistant, Content: "reply one", Timestamp: now},
		{Role: RoleUser, Content: "two", Timestamp: now},
		{Role: RoleAssistant, Content: "reply two", Timestamp: now},
		{Role: RoleUser, Content: "three", Timestamp: now},
	}

	t.Run("full history keeps every turn in order", func(t *testing.T) {
		got := AssembleContext(PolicyFullHistory, history)
		if len(got) != 5 {
			t.Fatalf("len = %d, want 5", len(got))
		}
		if got[0].Content != "one" || got[4].Content != "three" {
			t.Errorf("ordering broken: first %q last %q", got[0].Content, got[4].Content)
		}
	})

	t.Run("full history strips system messages", func(t *testing.T) {
		withSystem := append([]Message{{Role: RoleSystem, Content: "be brief", Timestamp: now}}, history...)
		got := AssembleContext(PolicyFullHistory, withSystem)
		for _, m := range got {
			if m.Role == RoleSystem {
				t.Fatal("system message leaked into assembled context")
			}
		}
	})

	t.Run("last turn only yields exactly the final user message", func(t *testing.T) {
		got := AssembleContext(PolicyLastTurn, history)
		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
		if got[0].Role != RoleUser || got[0].Content != "three" {
			t.Errorf("got %s %q, want user %q", got[0].Role, got[0].Content, "three")
		}
	})

	t.Run("last turn on empty history yields nothing", func(t *testing.T) {
		if got := AssembleContext(PolicyLastTurn, nil); len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})
}
