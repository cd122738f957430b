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
	Show(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Back(ctx context.Context) error
	Phone(ctx context.Context, number string) error
	Digit(ctx context.Context, d string) error
	Backspace(ctx context.Context) error
	Paste(ctx context.Context, text string) error
	Code(ctx context.Context, text string) error
	Verify(ctx context.Context) error
	Resend(ctx context.Context) error
	NewGroup(ctx context.Context, name string) error
	Invite(ctx context.Context, phone string) error
	RemoveMember(ctx context.Context, memberID string) error
	AddExpense(ctx context.Context, args []string) error
	Family(ctx context.Context) error
	Notifications(ctx context.Context) error
	MarkRead(ctx context.Context, id string) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF, when ctx is done or when
// the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Signed out:
//	  - login <number>        request a code for a 10-digit number
//	  - digit <d>, backspace  edit the code cells one at a time
//	  - paste <text>          distribute digits across the cells
//	  - code [<text>]         paste and verify (prompts without echo when empty)
//	  - verify, resend        verify the cells / request a new code
//
//	Signed in:
//	  - dashboard, groups     open a screen
//	  - group <id>            open a group
//	  - newgroup <name>       create a group
//	  - invite <phone>, remove <memberId>, expense <amount> <category> <description>
//	  - family                list family members from the backend
//	  - notifications, read <id>, whoami, logout
//
//	Always: help, show, go <path>, back, exit | quit
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("es %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		arg := strings.Join(args, " ")

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dashboard, groups, group <id>, newgroup <name>, invite <phone>, remove <memberId>, expense <amount> <category> <description>, family, notifications, read <id>, whoami, logout, show, go <path>, back, exit")
			} else {
				printlnFn("Available commands: login <number>, digit <d>, backspace, paste <text>, code [<text>], verify, resend, show, go <path>, back, exit")
			}

		case "show":
			_ = a.Show(ctx)
		case "go":
			if arg == "" {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Go(ctx, arg)
		case "back":
			_ = a.Back(ctx)
		case "dashboard":
			_ = a.Go(ctx, "/dashboard")
		case "groups":
			_ = a.Go(ctx, "/groups")
		case "group":
			if arg == "" {
				printlnFn("Usage: group <id>")
				continue
			}
			_ = a.Go(ctx, "/groups/"+arg)

		case "login":
			_ = a.Phone(ctx, arg)
		case "digit":
			_ = a.Digit(ctx, arg)
		case "backspace", "bs":
			_ = a.Backspace(ctx)
		case "paste":
			_ = a.Paste(ctx, arg)
		case "code":
			_ = a.Code(ctx, arg)
		case "verify":
			_ = a.Verify(ctx)
		case "resend":
			_ = a.Resend(ctx)

		case "newgroup":
			_ = a.NewGroup(ctx, arg)
		case "invite":
			_ = a.Invite(ctx, arg)
		case "remove":
			_ = a.RemoveMember(ctx, arg)
		case "expense":
			_ = a.AddExpense(ctx, args)
		case "family":
			_ = a.Family(ctx)
		case "notifications", "n":
			_ = a.Notifications(ctx)
		case "read":
			_ = a.MarkRead(ctx, arg)
		case "whoami":
			_ = a.WhoAmI(ctx)
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
