// Package prompt loads TOML prompt templates. A template can override the
// system prompt and pre-format the user message with an {{input}}
// placeholder.
package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Prompt represents the structure of a TOML prompt file.
type Prompt struct {
	System string  `toml:"system"`
	User   string  `toml:"user"`
	Model  *string `toml:"model,omitempty"`
}

// LoadPrompt loads a prompt file and returns its contents.
func LoadPrompt(filePath string) (*Prompt, error) {
	var prompt Prompt
	if _, err := toml.DecodeFile(filePath, &prompt); err != nil {
		return nil, fmt.Errorf("decoding prompt file: %w", err)
	}
	return &prompt, nil
}

// Find locates a prompt template by name in the given directories. Later
// directories take precedence over earlier ones.
func Find(name string, promptDirs []string) (*Prompt, error) {
	file := name
	if !strings.HasSuffix(file, ".toml") {
		file += ".toml"
	}

	var path string
	var found bool
	for _, dir := range promptDirs {
		candidate := filepath.Join(dir, file)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("prompt %q not found in any of the prompt directories: %v", name, promptDirs)
	}
	return LoadPrompt(path)
}

// Format substitutes the input message into the template's system and user
// texts. An empty user template passes the input through unchanged.
func (p *Prompt) Format(input string) (system, user string) {
	system = strings.ReplaceAll(p.System, "{{input}}", input)
	if p.User == "" {
		return system, input
	}
	return system, strings.ReplaceAll(p.User, "{{input}}", input)
}
