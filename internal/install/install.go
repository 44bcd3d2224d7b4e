// Package install runs the dependency installer in a freshly scaffolded
// project.
package install

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/tpaseed/cli/internal/output"
)

// Runner executes argv in dir, sending the command's output to w.
type Runner interface {
	Run(ctx context.Context, dir string, argv []string, w io.Writer) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir string, argv []string, w io.Writer) error {
	if _, err := exec.LookPath(argv[0]); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = w
	cmd.Stderr = w
	return cmd.Run()
}

// Options controls one installer run.
type Options struct {
	// Command is the installer command line, e.g. "bower install".
	Command string
	// Dir is the project directory the command runs in.
	Dir string
	// SkipInstall prints how to install instead of running the command.
	SkipInstall bool
	// SkipMessage suppresses the status messages.
	SkipMessage bool
}

// Result describes what the installer did.
type Result struct {
	Ran bool
	// Err is the installer failure, if any. It is logged, never fatal.
	Err error
}

// Installer runs the configured dependency installer.
type Installer struct {
	runner Runner
}

// New returns an Installer. A nil runner means ExecRunner.
func New(runner Runner) *Installer {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Installer{runner: runner}
}

// SkippedMessage is printed when installation is skipped.
func SkippedMessage(command string) string {
	return fmt.Sprintf("I'm all done. Just run `%s` to install the required dependencies.", command)
}

// RunningMessage is printed before the installer runs.
func RunningMessage(command string) string {
	return fmt.Sprintf("I'm all done. Running `%s` for you to install the required dependencies. If this fails, try running the command yourself.", command)
}

// Install runs the installer according to opts. Failures are logged and
// reported in Result, never returned, so a broken installer does not fail
// the scaffold.
func (i *Installer) Install(ctx context.Context, opts Options) Result {
	command := strings.TrimSpace(opts.Command)

	if opts.SkipInstall {
		if !opts.SkipMessage {
			output.Println(SkippedMessage(command))
		}
		return Result{}
	}

	argv, err := shellquote.Split(command)
	if err == nil && len(argv) == 0 {
		err = errors.New("empty command")
	}
	if err != nil {
		err = fmt.Errorf("parsing install command %q: %w", command, err)
		output.Error("dependency installation skipped", "err", err)
		return Result{Err: err}
	}

	if !opts.SkipMessage {
		output.Println(RunningMessage(command))
	}

	output.Debug("running installer", "command", argv, "dir", opts.Dir)

	var buf bytes.Buffer
	err = output.RunWithSpinner(ctx, func() error {
		return i.runner.Run(ctx, opts.Dir, argv, &buf)
	}, output.WithTitle(fmt.Sprintf("Running %s...", command)))

	if err != nil {
		hint := fmt.Sprintf("run `%s` yourself in %s", command, opts.Dir)
		if errors.Is(err, exec.ErrNotFound) {
			hint = fmt.Sprintf("%s is not on PATH; install it and run `%s` in %s", argv[0], command, opts.Dir)
		}
		output.Error("dependency installation failed", "err", err, "hint", hint)
		if buf.Len() > 0 {
			output.Debug("installer output", "output", strings.TrimSpace(buf.String()))
		}
		return Result{Ran: true, Err: err}
	}

	output.Debug("installer finished", "output", strings.TrimSpace(buf.String()))
	return Result{Ran: true}
}
