package cmd

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/tpaseed/cli/internal/output"
	"github.com/tpaseed/cli/internal/testutil"
)

type fakePrompter struct {
	user    string
	harness bool
	asked   []string
}

func (f *fakePrompter) Input(label, def string) (string, error) {
	f.asked = append(f.asked, label)
	return f.user, nil
}

func (f *fakePrompter) Confirm(label string, _ bool) (bool, error) {
	f.asked = append(f.asked, label)
	return f.harness, nil
}

type fakeRunner struct {
	calls [][]string
	dirs  []string
	err   error
}

func (f *fakeRunner) Run(_ context.Context, dir string, argv []string, _ io.Writer) error {
	f.calls = append(f.calls, argv)
	f.dirs = append(f.dirs, dir)
	return f.err
}

// isolate keeps tests away from the real user configuration and returns the
// default config file path.
func isolate(t *testing.T) string {
	t.Helper()
	return testutil.IsolateHome(t)
}

// captureStdout collects user-facing output for the duration of the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	restore := output.SetOutput(&buf)
	t.Cleanup(restore)
	return &buf
}

// execute runs the root command with args.
func execute(t *testing.T, args []string, opts ...Option) error {
	t.Helper()

	cmd := NewRootCmd(opts...)
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.Execute()
}
