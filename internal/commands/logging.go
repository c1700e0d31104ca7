package commands

import (
	"strings"

	"github.com/goliatone/go-workload/internal/logging"
	"github.com/goliatone/go-workload/pkg/interfaces"
)

// CommandLogger returns the logger for a command module, tagged so command
// entries can be filtered apart from the rest of the run.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.CommandLogger(provider, name), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
