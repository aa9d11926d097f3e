package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mselser95/cowtrader/pkg/types"
)

// Prompter asks the user a yes/no question. It is injected into the
// submission flow so tests can script answers instead of reading the
// process's stdin.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// ConsolePrompter reads answers line by line from a reader, stdin in
// production.
type ConsolePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsolePrompter creates a prompter over the given streams.
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm asks until it gets a y or n, case-insensitive. Anything else
// re-prompts.
func (p *ConsolePrompter) Confirm(question string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s (y/n): ", question)

		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return false, fmt.Errorf("read answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
	}
}

// Gate runs the prompt and converts a negative answer into the
// distinguished user-declined termination.
func Gate(p Prompter, question string) error {
	ok, err := p.Confirm(question)
	if err != nil {
		return err
	}

	if !ok {
		return types.ErrUserDeclined
	}

	return nil
}
