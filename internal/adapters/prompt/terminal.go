package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/bnema/doctowatch/internal/ports"
)

// Terminal prompts on stdin/stdout. Interactive reports false when stdin is
// not a TTY, which callers must check before prompting.
type Terminal struct {
	in       *bufio.Reader
	out      io.Writer
	inFD     int
	isTTY    func(fd int) bool
	readPass func(fd int) ([]byte, error)
}

var _ ports.Prompter = (*Terminal)(nil)

func NewTerminal() *Terminal {
	return &Terminal{
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		inFD:     int(os.Stdin.Fd()),
		isTTY:    term.IsTerminal,
		readPass: term.ReadPassword,
	}
}

func (t *Terminal) Interactive() bool {
	return t.isTTY(t.inFD)
}

// ChooseIndex prints the options as a numbered list and reads an index back,
// reprompting until the answer is in range.
func (t *Terminal) ChooseIndex(label string, options []string) (int, error) {
	fmt.Fprintln(t.out, label)
	for i, option := range options {
		fmt.Fprintf(t.out, "* [%d] %s\n", i, option)
	}

	for {
		answer, err := t.ReadLine("Your choice: ")
		if err != nil {
			return 0, err
		}

		index, err := strconv.Atoi(answer)
		if err != nil || index < 0 || index >= len(options) {
			fmt.Fprintf(t.out, "Pick a number between 0 and %d.\n", len(options)-1)
			continue
		}

		return index, nil
	}
}

func (t *Terminal) ReadLine(label string) (string, error) {
	fmt.Fprint(t.out, label)

	line, err := t.in.ReadString('\n')
	if err != nil && (line == "" || err != io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// ReadSecret reads a line without echoing it back to the terminal.
func (t *Terminal) ReadSecret(label string) (string, error) {
	fmt.Fprint(t.out, label)

	secret, err := t.readPass(t.inFD)
	fmt.Fprintln(t.out)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}

	return string(secret), nil
}
