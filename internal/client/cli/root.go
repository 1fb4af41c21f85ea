package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if u, err := a.authService.CurrentUser(context.Background()); err == nil && u != nil && a.isLoggedIn() {
		s = u.Email + " "
	}
	if mode := a.getMode(); mode != "" {
		s = s + string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root greets the user, starts the connectivity watcher and runs the REPL
// until the user exits or stdin closes.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the storefront CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	if a.isLoggedIn() {
		if u, err := a.authService.CurrentUser(ctx); err == nil && u != nil {
			printlnFn("Signed in as", u.DisplayName())
		}
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
