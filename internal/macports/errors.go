package macports

import (
	"fmt"
	"strings"
)

// CommandError reports a failed port(1) invocation.
type CommandError struct {
	Subcommand string
	Args       []string
	Stderr     string
	Err        error
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("port %s: %v", e.Subcommand, e.Err)
	}
	return fmt.Sprintf("port %s: %v: %s", e.Subcommand, e.Err, msg)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
