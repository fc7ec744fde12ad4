package dashscope

import (
	"encoding/json"
	"testing"

	"github.com/prochat/prochat/internal/chat"
)

func TestEncode(t *testing.T) {
	adapter := New()
	wire, err := adapter.Encode(chat.Request{
		Endpoint:     "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation",
		APIKey:       "sk-ds-test",
		Model:        "qwen-max",
		SystemPrompt: "be brief",
		Messages: []chat.Message{
			{Role: chat.RoleUser, Content: "hello"},
		},
		MaxTokens:   1024,
		Temperature: 0.8,
	})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if got := wire.Headers["Authorization"]; got != "Bearer sk-ds-test" {
		t.Errorf("Authorization = %q", got)
	}

	var body GenerationRequest
	if err := json.Unmarshal(wire.Body, &body); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if body.Model != "qwen-max" {
		t.Errorf("Model = %q", body.Model)
	}
	if len(body.Input.Messages) != 2 {
		t.Fatalf("len(input.messages) = %d, want 2 (system + user)", len(body.Input.Messages))
	}
	if body.Input.Messages[0].Role != "system" || body.Input.Messages[0].Content != "be brief" {
		t.Errorf("input.messages[0] = %+v", body.Input.Messages[0])
	}
	if body.Parameters.MaxTokens != 1024 || body.Parameters.Temperature != 0.8 {
		t.Errorf("parameters = %+v, want sampling in the parameters object", body.Parameters)
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
			name: "output text",
			body: `{"output": {"text": "hello there"}, "request_id": "abc"}`,
			want: "hello there",
		},
		{
			name:    "error shape",
			body:    `{"code": "InvalidApiKey", "message": "Invalid API-key provided."}`,
			wantErr: true,
		},
		{
			name:    "missing output",
			body:    `{}`,
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
	got := adapter.DecodeError(401, []byte(`{"code": "InvalidApiKey", "message": "Invalid API-key provided."}`))
	if got != "Invalid API-key provided." {
		t.Errorf("DecodeError() = %q", got)
	}

	got = adapter.DecodeError(500, []byte(`{}`))
	if got != "HTTP status 500" {
		t.Errorf("DecodeError() fallback = %q", got)
	}
}
