package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// sampleText is searched when no file is given and stdin is a terminal.
const sampleText = `The quick brown fox jumps over the lazy dog.
A lazy afternoon: the fox naps, the dog keeps watch.
Type a pattern, press Enter to search, and press Enter again
on a single match to replace it.
`

// readInput returns the text to search: the named file, stdin when it is
// not a terminal, or the sample text.
func readInput(path string, stdin *os.File) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(data), nil
	}
	if stdin != nil && !isTerminal(stdin) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return sampleText, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
