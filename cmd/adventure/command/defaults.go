package command

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed default_config.json
var defaultConfig []byte

// WithDefaultConfig appends -config pointing at the built-in defaults when
// args carry no config flag, so the server starts on :8000 with no arguments.
// The returned cleanup removes the written file once the config is loaded.
func WithDefaultConfig(args []string) ([]string, func(), error) {
	for _, a := range args[min(1, len(args)):] {
		name, _, _ := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if strings.HasPrefix(a, "-") && name == "config" {
			return args, func() {}, nil
		}
	}

	f, err := os.CreateTemp("", "adventure-config-*.json")
	if err != nil {
		return nil, nil, fmt.Errorf("creating default config: %w", err)
	}
	defer func() { _ = f.Close() }()

	cleanup := func() { _ = os.Remove(f.Name()) }
	if _, err := f.Write(defaultConfig); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("writing default config: %w", err)
	}

	return append(args, "-config", f.Name()), cleanup, nil
}
