package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/stratusctl/stratus/internal/ui"
)

// Prompter reads line-oriented answers from an input stream. Reads go
// through a pump goroutine so a blocked read can be abandoned when the
// context is cancelled; the underlying stream is consumed by at most
// one reader for the lifetime of the Prompter.
type Prompter struct {
	in    io.Reader
	out   io.Writer
	once  sync.Once
	lines chan string
}

// NewPrompter creates a prompter reading from in and echoing prompts to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:    in,
		out:   out,
		lines: make(chan string),
	}
}

func (p *Prompter) pump() {
	go func() {
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			p.lines <- scanner.Text()
		}
		close(p.lines)
	}()
}

// ReadLine prints a prompt and blocks until a line arrives, the input
// stream ends (io.EOF), or the context is cancelled.
func (p *Prompter) ReadLine(ctx context.Context, label string) (string, error) {
	fmt.Fprint(p.out, ui.RenderPrompt(label))
	p.once.Do(p.pump)

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// ReadLineDefault is ReadLine with a fallback used when the answer is empty
func (p *Prompter) ReadLineDefault(ctx context.Context, label, fallback string) (string, error) {
	line, err := p.ReadLine(ctx, fmt.Sprintf("%s [%s]", label, fallback))
	if err != nil {
		return "", err
	}
	if line == "" {
		return fallback, nil
	}
	return line, nil
}
