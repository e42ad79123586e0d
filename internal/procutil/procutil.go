// Package procutil runs the external tools the launcher depends on
// (the package manager, the base interpreter, pip).
//
// Children inherit the caller's environment. Their stderr is always passed
// through so the tool's own diagnostics reach the user unchanged; stdout is
// either streamed (Run) or captured as the command's result (Output).
package procutil

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/shinji-kodama/weatherdash/internal/logging"
)

// Run executes name with args, streaming the child's stdout and stderr to
// the given writers. A nil writer discards that stream.
func Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error {
	log := logging.Component(ctx, "procutil")
	log.Debug().Str("cmd", CommandLine(name, args...)).Msg("running")

	// #nosec G204 -- name and args come from launcher configuration, not remote input
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Output executes name with args and returns its stdout with surrounding
// whitespace trimmed. The child's stderr goes to stderr.
func Output(ctx context.Context, stderr io.Writer, name string, args ...string) (string, error) {
	var stdout bytes.Buffer
	if err := Run(ctx, &stdout, stderr, name, args...); err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

// CommandLine renders a command for log and error messages. Arguments
// containing shell metacharacters are single-quoted so the line can be
// pasted into a shell.
func CommandLine(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	for _, s := range append([]string{name}, args...) {
		parts = append(parts, quote(s))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`<>|&;()*?[]{}!~#") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
