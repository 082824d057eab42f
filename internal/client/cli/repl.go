package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	GoogleLogin(ctx context.Context) error
	Analyze(ctx context.Context, path string) error
	Plan(ctx context.Context, path string) error
	Questions(ctx context.Context, path string) error
	Chat(ctx context.Context, text string) error
	Show(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the SkillGraph CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands taking an artifact file expect the reasoning-service output as
// JSON at the given path; malformed files degrade to empty artifacts.
//
// Any errors returned by command handlers are printed and the loop
// continues; authentication failures allow retry.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sg> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: analyze <file>, plan <file>, questions <file>, chat <text>, show, logout, exit")
			} else {
				printlnFn("Available commands: register, login, google, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "google":
			err = a.GoogleLogin(ctx)

		case "analyze":
			if len(args) != 1 {
				printlnFn("Usage: analyze <artifact.json>")
				continue
			}
			err = a.Analyze(ctx, args[0])

		case "plan":
			if len(args) != 1 {
				printlnFn("Usage: plan <artifact.json>")
				continue
			}
			err = a.Plan(ctx, args[0])

		case "questions":
			if len(args) != 1 {
				printlnFn("Usage: questions <artifact.json>")
				continue
			}
			err = a.Questions(ctx, args[0])

		case "chat":
			if len(args) == 0 {
				printlnFn("Usage: chat <text>")
				continue
			}
			err = a.Chat(ctx, strings.Join(args, " "))

		case "show":
			err = a.Show(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
