// Package picker asks the user to choose one option from a list, either
// through an external fuzzy finder or an in-process Bubble Tea list.
package picker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	"github.com/rs/zerolog"
)

// BuiltinName selects the in-process picker.
const BuiltinName = "builtin"

// Selection is the outcome of one prompt. Cancelled covers every
// non-success status; Value may be empty on success.
type Selection struct {
	Value     string
	Cancelled bool
}

// Picker presents options and returns the user's choice.
type Picker interface {
	Pick(ctx context.Context, prompt string, options []string) (Selection, error)
}

// Ensure both implementations satisfy Picker at compile time.
var (
	_ Picker = (*Command)(nil)
	_ Picker = (*Builtin)(nil)
)

// New resolves the configured finder command. An empty command, "builtin",
// or a binary missing from PATH falls back to the builtin picker.
func New(command string, builtin *Builtin, logger zerolog.Logger) (Picker, error) {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" || trimmed == BuiltinName {
		return builtin, nil
	}
	cmd, err := NewCommand(trimmed)
	if err != nil {
		return nil, err
	}
	if _, err := exec.LookPath(cmd.argv[0]); err != nil {
		logger.Warn().Str("finder", cmd.argv[0]).Msg("fuzzy finder not found, using builtin picker")
		return builtin, nil
	}
	return cmd, nil
}

// Command runs an external finder (fzf, skim, dmenu, rofi -dmenu ...) that
// reads options on stdin and prints the choice on stdout.
type Command struct {
	argv []string
}

// NewCommand splits command into argv using shell quoting rules.
func NewCommand(command string) (*Command, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse finder command: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("finder command is empty")
	}
	return &Command{argv: argv}, nil
}

// Pick runs the finder once. A non-zero exit status is a cancellation.
func (c *Command) Pick(ctx context.Context, prompt string, options []string) (Selection, error) {
	args := append([]string(nil), c.argv[1:]...)
	if filepath.Base(c.argv[0]) == "fzf" && prompt != "" {
		args = append(args, "--prompt="+prompt+" ")
	}
	cmd := exec.CommandContext(ctx, c.argv[0], args...)
	cmd.Stdin = strings.NewReader(strings.Join(options, "\n") + "\n")
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Selection{Cancelled: true}, nil
		}
		return Selection{}, fmt.Errorf("run finder: %w", err)
	}
	return Selection{Value: strings.TrimRight(string(out), "\r\n")}, nil
}
