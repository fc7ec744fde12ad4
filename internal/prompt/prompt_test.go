package prompt

import (
	"os"
	"path/filepath"
	"testing"
)

func writePrompt(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFind(t *testing.T) {
	early := t.TempDir()
	late := t.TempDir()

	writePrompt(t, early, "review.toml", `system = "early"`)
	writePrompt(t, late, "review.toml", `system = "late"`)
	writePrompt(t, early, "only-early.toml", `system = "just here"`)

	t.Run("later directory wins", func(t *testing.T) {
		p, err := Find("review", []string{early, late})
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if p.System != "late" {
			t.Errorf("System = %q, want the later directory's template", p.System)
		}
	})

	t.Run("name without extension", func(t *testing.T) {
		if _, err := Find("only-early", []string{early, late}); err != nil {
			t.Errorf("Find() error = %v", err)
		}
	})

	t.Run("missing template", func(t *testing.T) {
		if _, err := Find("nope", []string{early, late}); err == nil {
			t.Error("Find() expected an error for a missing template")
		}
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name       string
		prompt     Prompt
		input      string
		wantSystem string
		wantUser   string
	}{
		{
			name:       "placeholder in user text",
			prompt:     Prompt{System: "You review code.", User: "Review this:\n{{input}}"},
			input:      "func main() {}",
			wantSystem: "You review code.",
			wantUser:   "Review this:\nfunc main() {}",
		},
		{
			name:       "placeholder in system text",
			prompt:     Prompt{System: "Answer about {{input}} only."},
			input:      "networking",
			wantSystem: "Answer about networking only.",
			wantUser:   "networking",
		},
		{
			name:       "empty user template passes input through",
			prompt:     Prompt{System: "Be brief."},
			input:      "hello",
			wantSystem: "Be brief.",
			wantUser:   "hello",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system, user := tt.prompt.Format(tt.input)
			if system != tt.wantSystem {
				t.Errorf("system = %q, want %q", system, tt.wantSystem)
			}
			if user != tt.wantUser {
				t.Errorf("user = %q, want %q", user, tt.wantUser)
			}
		})
	}
}

func TestLoadPromptWithModelOverride(t *testing.T) {
	dir := t.TempDir()
	writePrompt(t, dir, "translate.toml", "system = \"You translate.\"\nuser = \"Translate: {{input}}\"\nmodel = \"qwen-max\"\n")

	p, err := LoadPrompt(filepath.Join(dir, "translate.toml"))
	if err != nil {
		t.Fatalf("LoadPrompt() error = %v", err)
	}
	if p.Model == nil || *p.Model != "qwen-max" {
		t.Errorf("Model = %v, want qwen-max", p.Model)
	}
}
