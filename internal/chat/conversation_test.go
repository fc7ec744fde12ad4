package chat

import (
	"strings"
	"testing"
	"time"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "short message verbatim",
			content: "hello world",
			want:    "hello world",
		},
		{
			name:    "exactly fifty runes verbatim",
			content: strings.Repeat("a", 50),
			want:    strings.Repeat("a", 50),
		},
		{
			name:    "long message truncated with ellipsis",
			content: strings.Repeat("a", 80),
			want:    strings.Repeat("a", 50) + "...",
		},
		{
			name:    "multibyte runes counted as runes",
			content: strings.Repeat("あ", 60),
			want:    strings.Repeat("あ", 50) + "...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveTitle(tt.content); got != tt.want {
				t.Errorf("deriveTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConversationTitleDerivation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("first user message sets the title", func(t *testing.T) {
		conv := NewConversation(now)
		conv.AddMessage(RoleUser, "explain goroutines", now)
		if conv.Title != "explain goroutines" {
			t.Errorf("Title = %q, want %q", conv.Title, "explain goroutines")
		}
	})

	t.Run("second user message does not change the title", func(t *testing.T) {
		conv := NewConversation(now)
		conv.AddMessage(RoleUser, "first", now)
		conv.AddMessage(RoleAssistant, "sure", now)
		conv.AddMessage(RoleUser, "second", now)
		if conv.Title != "first" {
			t.Errorf("Title = %q, want %q", conv.Title, "first")
		}
	})

	t.Run("assistant message never sets the title", func(t *testing.T) {
		conv := NewConversation(now)
		conv.AddMessage(RoleAssistant, "unprompted", now)
		if conv.Title != DefaultTitle {
			t.Errorf("Title = %q, want %q", conv.Title, DefaultTitle)
		}
	})

	t.Run("rename locks the title against derivation", func(t *testing.T) {
		conv := NewConversation(now)
		conv.Rename("my project", now)
		conv.AddMessage(RoleUser, "hello", now)
		if conv.Title != "my project" {
			t.Errorf("Title = %q, want %q", conv.Title, "my project")
		}
	})

	t.Run("rename survives a reset-then-rename ordering", func(t *testing.T) {
		conv := NewConversation(now)
		conv.AddMessage(RoleUser, "original", now)
		conv.Rename("kept", now)
		conv.AddMessage(RoleUser, "later", now)
		if conv.Title != "kept" {
			t.Errorf("Title = %q, want %q", conv.Title, "kept")
		}
	})
}

func TestConversationReset(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)

	conv := NewConversation(now)
	conv.AddMessage(RoleUser, "hello", now)
	conv.Rename("pinned", now)
	conv.Reset(later)

	if len(conv.Messages) != 0 {
		t.Errorf("Messages = %d, want 0", len(conv.Messages))
	}
	if conv.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", conv.Title, DefaultTitle)
	}
	if conv.ID == "" {
		t.Error("Reset must keep the conversation identity")
	}
	if !conv.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", conv.UpdatedAt, later)
	}

	// A cleared conversation derives its title again.
	conv.AddMessage(RoleUser, "fresh start", later)
	if conv.Title != "fresh start" {
		t.Errorf("Title = %q, want %q", conv.Title, "fresh start")
	}
}

func TestDropLastAssistant(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(c *Conversation)
		want    bool
		wantLen int
	}{
		{
			name:    "empty conversation",
			setup:   func(c *Conversation) {},
			want:    false,
			wantLen: 0,
		},
		{
			name: "trailing user message untouched",
			setup: func(c *Conversation) {
				c.AddMessage(RoleUser, "hi", now)
			},
			want:    false,
			wantLen: 1,
		},
		{
			name: "trailing assistant message removed",
			setup: func(c *Conversation) {
				c.AddMessage(RoleUser, "hi", now)
				c.AddMessage(RoleAssistant, "hello", now)
			},
			want:    true,
			wantLen: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := NewConversation(now)
			tt.setup(conv)
			if got := conv.DropLastAssistant(); got != tt.want {
				t.Errorf("DropLastAssistant() = %v, want %v", got, tt.want)
			}
			if len(conv.Messages) != tt.wantLen {
				t.Errorf("len(Messages) = %d, want %d", len(conv.Messages), tt.wantLen)
			}
		})
	}
}

func TestLastUserMessage(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	conv := NewConversation(now)
	if conv.LastUserMessage() != nil {
		t.Fatal("LastUserMessage() on empty conversation must be nil")
	}

	conv.AddMessage(RoleUser, "first", now)
	conv.AddMessage(RoleAssistant, "reply", now)
	conv.AddMessage(RoleUser, "second", now)
	conv.AddMessage(RoleAssistant, "reply two", now)

	last := conv.LastUserMessage()
	if last == nil || last.Content != "second" {
		t.Errorf("LastUserMessage() = %v, want content %q", last, "second")
	}
}
