// Package prompt provides the confirmation capability used by every
// decision point that would otherwise block on an operator. Exactly one
// implementation is selected at startup: Auto when the run is automatic,
// the controlling terminal otherwise.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mvaneijk/tidycat/pkg/models"
)

// ErrInvalidResponse is returned when an interactive answer is not one of
// the recognized responses. Callers treat it as a usage error that aborts
// the whole run; the tool does not re-prompt and does not fall back to the
// default.
var ErrInvalidResponse = errors.New("unrecognized response")

// ErrNoTerminal is returned when interactive input is required but no
// controlling terminal is available.
var ErrNoTerminal = errors.New("no controlling terminal available")

// Confirmer answers the interactive decision points of a run.
type Confirmer interface {
	// Confirm asks a yes/no question. The automatic answer and the
	// empty-response default are passed separately because they may
	// differ: removing a duplicate set proceeds unprompted in automatic
	// mode, yet an interactive operator who just presses enter declines.
	Confirm(msg string, auto, def bool) (bool, error)

	// Decide asks for a conflict decision. An empty response selects def;
	// the recognized responses are r, k, and s (case-insensitive).
	Decide(msg string, def models.ConflictDecision) (models.ConflictDecision, error)

	// ReadLine reads one raw line of input. An empty line means "no
	// change" to the caller.
	ReadLine(msg string) (string, error)
}

// Auto answers every question with its computed default without blocking.
type Auto struct{}

// Confirm returns the automatic answer
func (Auto) Confirm(msg string, auto, def bool) (bool, error) {
	return auto, nil
}

// Decide returns the default decision
func (Auto) Decide(msg string, def models.ConflictDecision) (models.ConflictDecision, error) {
	return def, nil
}

// ReadLine returns an empty line, meaning no change
func (Auto) ReadLine(msg string) (string, error) {
	return "", nil
}

// Terminal prompts on the controlling terminal. It deliberately avoids
// standard input and output, which may be carrying piped file lists.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal opens the controlling terminal device. The open is lazy so
// that a run which never reaches a decision point does not require a
// terminal; the first prompt fails with ErrNoTerminal when none is
// attached.
func NewTerminal() Confirmer {
	return &lazyTerminal{}
}

// NewTerminalWithStreams creates a terminal prompter over arbitrary
// streams, used by tests.
func NewTerminalWithStreams(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question; an empty response selects def
func (t *Terminal) Confirm(msg string, auto, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(t.out, "%s [%s] ", msg, hint)

	answer, err := t.readAnswer()
	if err != nil {
		return false, err
	}

	switch answer {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidResponse, answer)
	}
}

// Decide asks for a conflict decision
func (t *Terminal) Decide(msg string, def models.ConflictDecision) (models.ConflictDecision, error) {
	fmt.Fprintf(t.out, "%s [r]eplace/[k]eep/[s]kip (default: %s) ", msg, def)

	answer, err := t.readAnswer()
	if err != nil {
		return "", err
	}

	switch answer {
	case "":
		return def, nil
	case "r":
		return models.DecisionReplace, nil
	case "k":
		return models.DecisionKeep, nil
	case "s":
		return models.DecisionSkip, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidResponse, answer)
	}
}

// ReadLine reads one raw line of input
func (t *Terminal) ReadLine(msg string) (string, error) {
	fmt.Fprintf(t.out, "%s ", msg)

	line, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", fmt.Errorf("%w: input closed", ErrNoTerminal)
		}
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *Terminal) readAnswer() (string, error) {
	line, err := t.ReadLine("")
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

// lazyTerminal defers opening /dev/tty until a prompt is actually needed.
type lazyTerminal struct {
	terminal *Terminal
	tty      *os.File
	err      error
}

func (l *lazyTerminal) open() (*Terminal, error) {
	if l.terminal != nil || l.err != nil {
		return l.terminal, l.err
	}

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		l.err = fmt.Errorf("%w: %v", ErrNoTerminal, err)
		return nil, l.err
	}
	if !term.IsTerminal(int(tty.Fd())) {
		tty.Close()
		l.err = ErrNoTerminal
		return nil, l.err
	}

	l.tty = tty
	l.terminal = NewTerminalWithStreams(tty, tty)
	return l.terminal, nil
}

func (l *lazyTerminal) Confirm(msg string, auto, def bool) (bool, error) {
	t, err := l.open()
	if err != nil {
		return false, err
	}
	return t.Confirm(msg, auto, def)
}

func (l *lazyTerminal) Decide(msg string, def models.ConflictDecision) (models.ConflictDecision, error) {
	t, err := l.open()
	if err != nil {
		return "", err
	}
	return t.Decide(msg, def)
}

func (l *lazyTerminal) ReadLine(msg string) (string, error) {
	t, err := l.open()
	if err != nil {
		return "", err
	}
	return t.ReadLine(msg)
}
