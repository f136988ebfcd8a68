package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface runREPL drives; App implements it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Check(ctx context.Context) error
	History(ctx context.Context, target string) error
	Query(ctx context.Context, id string) error
	LoginHistory(ctx context.Context, target string) error
	Logout(ctx context.Context) error
}

// runREPL reads one command per line until EOF, "exit" or "quit". Command
// handlers report their own failures, so their errors are dropped here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("spellcheck> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
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
				printlnFn("Available commands: check, history [user], query <id>, logins [user], logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "check":
			_ = a.Check(ctx)

		case "history":
			_ = a.History(ctx, firstArg(args))

		case "query":
			if len(args) == 0 {
				printlnFn("Usage: query <id>")
				continue
			}
			_ = a.Query(ctx, args[0])

		case "logins":
			_ = a.LoginHistory(ctx, firstArg(args))

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
