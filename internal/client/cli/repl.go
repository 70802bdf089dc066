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
	isAdmin() bool
	Home(ctx context.Context, args []string) error
	Arcaives(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Arcaive(ctx context.Context, args []string) error
	Memo(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Entries(ctx context.Context, args []string) error
	Memos(ctx context.Context, args []string) error
	Contacts(ctx context.Context, args []string) error
}

const (
	publicHelp = "Available commands: home, (l)ist, open <n|id>, arcaive <id>, memo [tag], login, exit"
	adminHelp  = "Available commands: home, (l)ist, open <n|id>, arcaive <id>, memo [tag], entries, memos, contacts, logout, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
// The first word of each line selects the command and the rest are its
// arguments. A failing command prints a one-line notice and the loop goes
// on, so the user can retry. Prompts inside commands read from the same
// reader.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("arcaives %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isAdmin() {
				printlnFn(adminHelp)
			} else {
				printlnFn(publicHelp)
			}

		case "home":
			cmdErr = a.Home(ctx, args)

		case "l", "list", "arcaives":
			cmdErr = a.Arcaives(ctx, args)

		case "open":
			cmdErr = a.Open(ctx, args)

		case "arcaive", "show":
			cmdErr = a.Arcaive(ctx, args)

		case "memo":
			cmdErr = a.Memo(ctx, args)

		case "login", "admin":
			cmdErr = a.Login(ctx, args)

		case "logout":
			cmdErr = a.Logout(ctx, args)

		case "entries":
			cmdErr = a.Entries(ctx, args)

		case "memos":
			cmdErr = a.Memos(ctx, args)

		case "contacts":
			cmdErr = a.Contacts(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(noticeStyle.Render("! " + describe(cmdErr)))
		}
	}
}
