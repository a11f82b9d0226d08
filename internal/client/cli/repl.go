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
	hasList() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	NewList(ctx context.Context) error
	UseList(ctx context.Context) error
	Share(ctx context.Context) error
	List(ctx context.Context) error
	AddItem(ctx context.Context) error
	EditItem(ctx context.Context) error
	Check(ctx context.Context) error
	Uncheck(ctx context.Context) error
	DeleteItem(ctx context.Context) error
	AddCategory(ctx context.Context) error
	RenameCategory(ctx context.Context) error
	DeleteCategory(ctx context.Context) error
	Reorder(ctx context.Context) error
	Sync(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the cartsync CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in (list commands additionally require a selected list):
//	  - newlist        — create a shopping list and select it
//	  - use            — select a list by id
//	  - share          — grant another account access to the list
//	  - list | l       — print the list grouped by category
//	  - add            — add an item
//	  - edit           — change an item's text or category
//	  - check, uncheck — toggle an item's completed mark
//	  - del            — delete an item
//	  - addcat         — add a category
//	  - rencat         — rename a category
//	  - delcat         — delete a category (items stay, uncategorized)
//	  - order          — change category display order
//	  - sync           — synchronize with the server now
//	  - status         — connectivity, sync state, queued mutations
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cart> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if !a.isLoggedIn() {
			switch cmd {
			case "help":
				printlnFn("Available commands: register, login, exit")
			case "register":
				_ = a.Register(ctx)
			case "login":
				_ = a.Login(ctx)
			case "exit", "quit":
				printlnFn("Bye!")
				return
			default:
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		if !a.hasList() {
			switch cmd {
			case "help":
				printlnFn("Available commands: newlist, use, exit")
			case "newlist":
				_ = a.NewList(ctx)
			case "use":
				_ = a.UseList(ctx)
			case "exit", "quit":
				printlnFn("Bye!")
				return
			default:
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "help":
			printlnFn("Available commands: (l)ist, add, edit, check, uncheck, del, addcat, rencat, delcat, order, share, use, newlist, sync, status, exit")

		case "l", "list":
			_ = a.List(ctx)

		case "add":
			_ = a.AddItem(ctx)

		case "edit":
			_ = a.EditItem(ctx)

		case "check":
			_ = a.Check(ctx)

		case "uncheck":
			_ = a.Uncheck(ctx)

		case "del":
			_ = a.DeleteItem(ctx)

		case "addcat":
			_ = a.AddCategory(ctx)

		case "rencat":
			_ = a.RenameCategory(ctx)

		case "delcat":
			_ = a.DeleteCategory(ctx)

		case "order":
			_ = a.Reorder(ctx)

		case "share":
			_ = a.Share(ctx)

		case "use":
			_ = a.UseList(ctx)

		case "newlist":
			_ = a.NewList(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
