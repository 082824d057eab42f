package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// readLine prompts and reads one trimmed line from stdin.
func (a *App) readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := a.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword prompts and reads a password without echo. When stdin is not
// a terminal (tests, pipes) it falls back to a plain line read.
func (a *App) readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return a.readLine(prompt)
	}

	fmt.Print(prompt)
	data, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(data), nil
}
