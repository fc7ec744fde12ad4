package config

import (
	"os"
	"strings"
)

// expandEnvVar expands an environment variable reference in the given
// value. Supports both $VAR and ${VAR} syntax. Values that are not
// references pass through unchanged; references to unset variables expand
// to the empty string.
func expandEnvVar(value string) string {
	if !strings.HasPrefix(value, "$") {
		return value
	}

	var name string
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		name = value[2 : len(value)-1]
	} else {
		name = strings.TrimPrefix(value, "$")
	}
	return os.Getenv(name)
}
