package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/storefront/internal/client/api"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string

	// errs maps a command to the error it returns once.
	errs map[string]error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	if err, ok := f.errs[name]; ok {
		delete(f.errs, name)
		return err
	}
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	f.loggedIn = true
	return f.record("register", nil)
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) WhoAmI(context.Context) error { return f.record("whoami", nil) }
func (f *fakeExec) Products(_ context.Context, args []string) error {
	return f.record("products", args)
}
func (f *fakeExec) Product(_ context.Context, args []string) error {
	return f.record("product", args)
}
func (f *fakeExec) Categories(context.Context) error { return f.record("categories", nil) }
func (f *fakeExec) Cart(context.Context) error       { return f.record("cart", nil) }
func (f *fakeExec) AddToCart(_ context.Context, args []string) error {
	return f.record("add", args)
}
func (f *fakeExec) UpdateCartItem(_ context.Context, args []string) error {
	return f.record("update", args)
}
func (f *fakeExec) RemoveCartItem(_ context.Context, args []string) error {
	return f.record("remove", args)
}
func (f *fakeExec) Checkout(context.Context) error { return f.record("checkout", nil) }
func (f *fakeExec) Orders(context.Context) error   { return f.record("orders", nil) }
func (f *fakeExec) Order(_ context.Context, args []string) error {
	return f.record("order", args)
}
func (f *fakeExec) CancelOrder(_ context.Context, args []string) error {
	return f.record("cancel", args)
}
func (f *fakeExec) Stats(context.Context) error { return f.record("stats", nil) }

func run(exec execIface, lines ...string) {
	r := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, r)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silencePrintln(t)
	captureErrors(t)

	exec := &fakeExec{}
	run(exec,
		"products red mug",
		"product 7",
		"categories",
		"login",
		"cart",
		"add 7 2",
		"update 10 3",
		"rm 10",
		"checkout",
		"orders",
		"order 21",
		"cancel 21",
		"whoami",
		"logout",
		"stats",
		"exit",
		"cart",
	)

	assert.Equal(t, []string{
		"products", "product", "categories", "login", "cart", "add", "update", "remove",
		"checkout", "orders", "order", "cancel", "whoami", "logout", "stats",
	}, exec.calls)
	assert.Equal(t, []string{"red", "mug"}, exec.args[0])
	assert.Equal(t, []string{"7", "2"}, exec.args[5])
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	lines := silencePrintln(t)

	exec := &fakeExec{}
	run(exec, "help", "login", "help", "quit")

	assert.Contains(t, *lines, helpGuest)
	assert.Contains(t, *lines, helpUser)
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_UnknownAndBlankLines(t *testing.T) {
	lines := silencePrintln(t)

	exec := &fakeExec{}
	run(exec, "", "   ", "foobar", "exit")

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Unknown command: foobar")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{}
	r := bufio.NewReader(strings.NewReader("cart"))
	runREPL(context.Background(), exec, func() string { return "" }, r)

	assert.Equal(t, []string{"cart"}, exec.calls)
}

func TestRunREPL_SessionExpiredRunsLogin(t *testing.T) {
	lines := silencePrintln(t)
	errs := captureErrors(t)

	expired := fmt.Errorf("get cart: %w", &api.Error{Kind: api.KindSessionExpired, Status: 401, Message: "your session has expired, please log in again"})
	exec := &fakeExec{loggedIn: true, errs: map[string]error{"cart": expired}}
	run(exec, "cart", "cart", "exit")

	assert.Equal(t, []string{"cart", "login", "cart"}, exec.calls)
	assert.Contains(t, errs.String(), "your session has expired")
	assert.Contains(t, *lines, "Please log in again.")
}

func TestReportError(t *testing.T) {
	t.Run("usage", func(t *testing.T) {
		lines := silencePrintln(t)
		errs := captureErrors(t)

		reportError(context.Background(), &fakeExec{}, usageError("order <id>"))
		assert.Equal(t, []string{"Usage: order <id>"}, *lines)
		assert.Empty(t, errs.String())
	})

	t.Run("unauthorized while logged out", func(t *testing.T) {
		lines := silencePrintln(t)
		errs := captureErrors(t)

		err := &api.Error{Kind: api.KindHTTP, Status: 401, Message: "Authentication credentials were not provided."}
		reportError(context.Background(), &fakeExec{}, err)
		assert.Contains(t, errs.String(), "Authentication credentials were not provided.")
		require.Len(t, *lines, 1)
		assert.Contains(t, (*lines)[0], "requires login")
	})

	t.Run("plain error", func(t *testing.T) {
		silencePrintln(t)
		errs := captureErrors(t)

		reportError(context.Background(), &fakeExec{}, errors.New("boom"))
		assert.Contains(t, errs.String(), "Error: boom")
	})

	t.Run("failed relogin is reported", func(t *testing.T) {
		silencePrintln(t)
		errs := captureErrors(t)

		exec := &fakeExec{errs: map[string]error{"login": errors.New("wrong password")}}
		reportError(context.Background(), exec, &api.Error{Kind: api.KindSessionExpired, Message: "expired"})
		assert.Contains(t, errs.String(), "expired")
		assert.Contains(t, errs.String(), "wrong password")
	})

	t.Run("nil", func(t *testing.T) {
		lines := silencePrintln(t)
		reportError(context.Background(), &fakeExec{}, nil)
		assert.Empty(t, *lines)
	})
}
