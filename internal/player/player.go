// Package player launches the external video player, resume player and
// downloader. Every launch is synchronous and reports how the tool exited.
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/google/shlex"
)

// Result reports how an external tool exited.
type Result struct {
	Tool     string
	ExitCode int
	Err      error
}

// OK reports whether the tool ran and exited zero.
func (r Result) OK() bool { return r.Err == nil && r.ExitCode == 0 }

// Launcher runs configured external tools.
type Launcher interface {
	Play(ctx context.Context, playlistPath string) Result
	Resume(ctx context.Context, playlistPath string) Result
	Download(ctx context.Context, locators []string) Result
}

// Ensure Exec implements Launcher at compile time.
var _ Launcher = (*Exec)(nil)

// Exec runs tools as child processes attached to the terminal.
type Exec struct {
	player     []string
	resume     []string
	downloader []string
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
}

// Commands names the configured command lines.
type Commands struct {
	Player     string
	Resume     string
	Downloader string
}

// NewExec splits each command line into argv.
func NewExec(cmds Commands) (*Exec, error) {
	player, err := split("video player", cmds.Player)
	if err != nil {
		return nil, err
	}
	resume, err := split("resume player", cmds.Resume)
	if err != nil {
		return nil, err
	}
	downloader, err := split("download tool", cmds.Downloader)
	if err != nil {
		return nil, err
	}
	return &Exec{
		player:     player,
		resume:     resume,
		downloader: downloader,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}, nil
}

func split(what, command string) ([]string, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse %s command: %w", what, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%s command is empty", what)
	}
	return argv, nil
}

// Play opens the playback queue artifact in the video player.
func (e *Exec) Play(ctx context.Context, playlistPath string) Result {
	return e.run(ctx, e.player, playlistPath)
}

// Resume opens a resume cache slot in the resume player.
func (e *Exec) Resume(ctx context.Context, playlistPath string) Result {
	return e.run(ctx, e.resume, playlistPath)
}

// Download passes every locator to the download tool.
func (e *Exec) Download(ctx context.Context, locators []string) Result {
	return e.run(ctx, e.downloader, locators...)
}

func (e *Exec) run(ctx context.Context, argv []string, extra ...string) Result {
	args := append(append([]string(nil), argv[1:]...), extra...)
	cmd := exec.CommandContext(ctx, argv[0], args...)
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	res := Result{Tool: argv[0]}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res
		}
		res.ExitCode = -1
		res.Err = fmt.Errorf("run %s: %w", argv[0], err)
	}
	return res
}
