package setup

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/huh"
	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
)

// ErrCancelled is returned when the user aborts a prompt or the run is
// interrupted.
var ErrCancelled = errors.New("setup cancelled by user")

// Prompter blocks until the user answers prompt. Answers come back as typed,
// without the line terminator.
type Prompter interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// NewPrompter returns a TerminalPrompter when in is a terminal and a
// LinePrompter otherwise.
func NewPrompter(in *os.File, out io.Writer) Prompter {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return TerminalPrompter{}
	}
	return NewLinePrompter(in, out)
}

// TerminalPrompter renders each prompt as a huh input form.
type TerminalPrompter struct{}

func (TerminalPrompter) Ask(ctx context.Context, prompt string) (string, error) {
	var answer string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(strings.TrimSpace(prompt)).
				Value(&answer),
		),
	).WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || ctx.Err() != nil {
			return "", ErrCancelled
		}
		return "", errors.Wrap(err, "prompt")
	}
	return answer, nil
}

type lineResult struct {
	line string
	err  error
}

// LinePrompter reads answers line by line. The reader runs in its own
// goroutine so a blocked read can be abandoned when ctx is cancelled.
type LinePrompter struct {
	in    *bufio.Reader
	out   io.Writer
	lines chan lineResult
	start sync.Once
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:    bufio.NewReader(in),
		out:   out,
		lines: make(chan lineResult),
	}
}

func (p *LinePrompter) Ask(ctx context.Context, prompt string) (string, error) {
	if ctx.Err() != nil {
		return "", ErrCancelled
	}
	fmt.Fprint(p.out, prompt)
	p.start.Do(func() { go p.read() })

	select {
	case <-ctx.Done():
		return "", ErrCancelled
	case res, ok := <-p.lines:
		if !ok || errors.Is(res.err, io.EOF) {
			return "", ErrCancelled
		}
		if res.err != nil {
			return "", errors.Wrap(res.err, "read answer")
		}
		return strings.TrimRight(res.line, "\r\n"), nil
	}
}

func (p *LinePrompter) read() {
	defer close(p.lines)
	for {
		line, err := p.in.ReadString('\n')
		if line != "" {
			p.lines <- lineResult{line: line}
		}
		if err != nil {
			p.lines <- lineResult{err: err}
			return
		}
	}
}
