package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

// ErrSelectionCancelled is returned when the user aborts the selection prompt.
var ErrSelectionCancelled = errors.New("selection cancelled")

// ParseSelection validates a 1-based choice among n options and returns the
// 0-based index.
func ParseSelection(input string, n int) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, errors.New("enter a number")
	}
	choice, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", input)
	}
	if choice < 1 || choice > n {
		return 0, fmt.Errorf("choose a number between 1 and %d", n)
	}
	return choice - 1, nil
}

// Select prompts for a 1-based choice among n options until a valid answer
// is given. Ctrl+C and Ctrl+D return ErrSelectionCancelled.
func Select(stdin io.Reader, stdout io.Writer, prompt string, n int) (int, error) {
	if n == 0 {
		return 0, errors.New("nothing to select from")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		Stdin:           io.NopCloser(stdin),
		Stdout:          stdout,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return 0, ErrSelectionCancelled
		}
		if err != nil {
			return 0, fmt.Errorf("readline error: %w", err)
		}

		index, err := ParseSelection(line, n)
		if err != nil {
			fmt.Fprintln(stdout, err)
			continue
		}
		return index, nil
	}
}
