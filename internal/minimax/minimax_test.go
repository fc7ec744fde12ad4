package minimax

import (
	"encoding/json"
	"testing"

	"github.com/prochat/prochat/internal/chat"
)

func TestEncode(t *testing.T) {
	adapter := New()
	wire, err := adapter.Encode(chat.Request{
		Endpoint:     "https://api.minimax.chat/v1/text/chatcompletion_v2",
		APIKey:       "mm-test",
		Model:        "MiniMax-Text-01",
		SystemPrompt: "be brief",
		Messages: []chat.Message{
			{Role: chat.RoleUser, Content: "hello"},
		},
		MaxTokens:   1024,
		Temperature: 0.6,
	})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if got := wire.Headers["Authorization"]; got != "Bearer mm-test" {
		t.Errorf("Authorization = %q", got)
	}

	var body ChatRequest
	if err := json.Unmarshal(wire.Body, &body); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if body.Model != "MiniMax-Text-01" {
		t.Errorf("Model = %q", body.Model)
	}
	if len(body.Messages) != 2 || body.Messages[0].Role != "system" {
		t.Errorf("Messages = %+v, want inline system prompt first", body.Messages)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "success with zero status code",
			body: `{"choices": [{"message": {"role": "assistant", "content": "hello there"}}], "base_resp": {"status_code": 0, "status_msg": ""}}`,
			want: "hello there",
		},
		{
			name:    "HTTP 200 with non-zero status code is an error",
			body:    `{"base_resp": {"status_code": 1004, "status_msg": "authentication failed"}}`,
			wantErr: true,
		},
		{
			name:    "no choices",
			body:    `{"choices": []}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Decode([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeError(t *testing.T) {
	adapter := New()
	got := adapter.DecodeError(200, []byte(`{"base_resp": {"status_code": 1008, "status_msg": "insufficient balance"}}`))
	if got != "insufficient balance" {
		t.Errorf("DecodeError() = %q", got)
	}

	got = adapter.DecodeError(502, []byte("bad gateway"))
	if got != "HTTP status 502" {
		t.Errorf("DecodeError() fallback = %q", got)
	}
}
