package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context)
	Login(ctx context.Context)
	Logout(ctx context.Context)
	Add(ctx context.Context)
	Edit(ctx context.Context, id string)
	Delete(ctx context.Context, id string)
	List(ctx context.Context, status string)
	Stats(ctx context.Context)
	Recent(ctx context.Context, n int)
}

const defaultRecentCount = 5

// runREPL starts a simple read–eval–print loop for the ticket tracker CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands while not logged in: help, register, login, exit.
// Commands while logged in: help, add, (l)ist [status], edit <id>,
// delete <id>, stats, recent [n], logout, exit.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tt> %s", statusFn()))
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

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist [all|open|in_progress|closed], edit <id>, delete <id>, stats, recent [n], logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			a.Register(ctx)

		case "login":
			a.Login(ctx)

		case "logout":
			a.Logout(ctx)

		case "add":
			a.Add(ctx)

		case "l", "list":
			status := ""
			if len(args) > 0 {
				status = args[0]
			}
			a.List(ctx, status)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			a.Edit(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			a.Delete(ctx, args[0])

		case "stats":
			a.Stats(ctx)

		case "recent":
			n := defaultRecentCount
			if len(args) > 0 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil || parsed < 0 {
					printlnFn("Usage: recent [n]")
					continue
				}
				n = parsed
			}
			a.Recent(ctx, n)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) getStatus() string {
	sess, loaded := a.auth.Current()
	if !loaded {
		return "(loading)"
	}
	if sess == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", sess.Email)
}

// Root prints the banner and runs the REPL over stdin.
func (a *App) Root(ctx context.Context) {
	printlnFn("Ticket tracker CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
