package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
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
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Done(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the TaskTracker CLI.
//
// It reads a line from reader, parses the first token as the command and
// passes the remaining tokens to it. Unknown commands are reported back to
// the user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Commands
//
//	Not logged in:
//	  - help                        show available commands
//	  - register                    create an account
//	  - login                       authenticate
//	  - exit | quit                 leave the program
//
//	Logged in:
//	  - help                        show available commands
//	  - me                          show the current user
//	  - list [status] [priority]    list tasks, "-" skips a filter
//	  - add                         create a task
//	  - done <id>                   mark a task as done
//	  - edit <id>                   change task fields
//	  - delete <id>                 delete a task
//	  - logout                      log out
//	  - exit | quit                 leave the program
//
// Errors returned by command handlers are ignored here; handlers print their
// own errors. Session checks are left to the server.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tt%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: me, (l)ist [status] [priority], add, done <id>, edit <id>, delete <id>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "me":
			_ = a.Me(ctx)

		case "l", "list":
			_ = a.List(ctx, args)

		case "add":
			_ = a.Add(ctx)

		case "done":
			_ = a.Done(ctx, args)

		case "edit":
			_ = a.Edit(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
