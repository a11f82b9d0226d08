package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// getStatus builds the short status fragment shown in the REPL prompt,
// e.g. "(alice@example.com list=1f3c... q=2)".
func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName
	}
	if a.listID != "" {
		short := a.listID
		if len(short) > 8 {
			short = short[:8]
		}
		s += " list=" + short
		if n, err := a.listSvc.PendingCount(context.Background()); err == nil && n > 0 {
			s += fmt.Sprintf(" q=%d", n)
		}
	}
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}

// Root runs the interactive session until the user exits or stdin closes.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to cartsync CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
