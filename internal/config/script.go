package config

import (
	"fmt"
	"strings"

	"github.com/example/go-brahmi-lipi/internal/script"
)

var scriptAliases = map[string]string{
	"devanagari": script.Devanagari,
	"hi":         script.Devanagari,
	"te":         script.Telugu,
}

// NormalizeScript resolves raw to a registered script name. Matching is
// case-insensitive and an empty value selects telugu.
func NormalizeScript(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		name = script.Telugu
	}

	if alias, ok := scriptAliases[name]; ok {
		name = alias
	}

	if _, err := script.Lookup(name); err != nil {
		return "", fmt.Errorf(
			"invalid script %q (expected %s): %w",
			raw,
			strings.Join(script.Names(), "|"),
			err,
		)
	}

	return name, nil
}
