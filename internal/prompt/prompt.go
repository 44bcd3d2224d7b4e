// Package prompt asks the user questions on the terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrInterrupted is returned when the user cancels a prompt with Ctrl+C.
var ErrInterrupted = errors.New("prompt interrupted")

// Prompter asks questions. Implementations must return the default when the
// user just presses enter.
type Prompter interface {
	Input(label, def string) (string, error)
	Confirm(label string, def bool) (bool, error)
}

// Terminal prompts through promptui. Nil streams mean the process stdio.
type Terminal struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// Input asks a free text question.
func (t *Terminal) Input(label, def string) (string, error) {
	p := promptui.Prompt{
		Label:   label,
		Default: def,
		Stdin:   t.Stdin,
		Stdout:  t.Stdout,
	}

	answer, err := p.Run()
	if err != nil {
		return "", mapError(err)
	}
	return answer, nil
}

// Confirm asks a yes/no question.
func (t *Terminal) Confirm(label string, def bool) (bool, error) {
	p := promptui.Prompt{
		Label:     confirmLabel(label),
		IsConfirm: true,
		Stdin:     t.Stdin,
		Stdout:    t.Stdout,
	}
	if def {
		p.Default = "y"
	}

	_, err := p.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	default:
		return false, mapError(err)
	}
}

// confirmLabel drops a trailing question mark; the confirm template adds its own.
func confirmLabel(label string) string {
	return strings.TrimSuffix(strings.TrimSpace(label), "?")
}

func mapError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrInterrupted
	}
	return err
}

// Lines prompts by reading one line per question. It is used when stdin is
// not a terminal, so answers can be piped in.
type Lines struct {
	r   *bufio.Reader
	out io.Writer
}

// NewLines returns a line based prompter reading from r and echoing
// questions to out.
func NewLines(r io.Reader, out io.Writer) *Lines {
	return &Lines{r: bufio.NewReader(r), out: out}
}

func (l *Lines) readLine() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrInterrupted
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Input asks a free text question.
func (l *Lines) Input(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(l.out, "%s (%s): ", label, def)
	} else {
		fmt.Fprintf(l.out, "%s: ", label)
	}

	answer, err := l.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question.
func (l *Lines) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(l.out, "%s [%s]: ", label, hint)

	answer, err := l.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
