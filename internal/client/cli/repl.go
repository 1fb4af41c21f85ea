package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/storefront/internal/client/api"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// errorOut receives error messages; tests point it at a buffer.
var errorOut io.Writer = os.Stderr

var errorColor = color.New(color.FgRed)

// usageError is returned by commands called with missing or bad arguments.
type usageError string

func (u usageError) Error() string { return "Usage: " + string(u) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Products(ctx context.Context, args []string) error
	Product(ctx context.Context, args []string) error
	Categories(ctx context.Context) error

	Cart(ctx context.Context) error
	AddToCart(ctx context.Context, args []string) error
	UpdateCartItem(ctx context.Context, args []string) error
	RemoveCartItem(ctx context.Context, args []string) error

	Checkout(ctx context.Context) error
	Orders(ctx context.Context) error
	Order(ctx context.Context, args []string) error
	CancelOrder(ctx context.Context, args []string) error

	Stats(ctx context.Context) error
}

const (
	helpGuest = "Available commands: products [search], product <id>, categories, register, login, stats, exit"
	helpUser  = "Available commands: products [search], product <id>, categories, cart, add <productID> [qty], " +
		"update <itemID> <qty>, remove <itemID>, checkout, orders, order <id>, cancel <id>, whoami, stats, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the storefront CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Command errors are rendered by reportError. An expired session sends the
// user straight to the login prompt.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("shop %s> ", statusFn()))
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
				printlnFn(helpUser)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			reportError(ctx, a, a.Register(ctx))
		case "login":
			reportError(ctx, a, a.Login(ctx))
		case "logout":
			reportError(ctx, a, a.Logout(ctx))
		case "whoami":
			reportError(ctx, a, a.WhoAmI(ctx))

		case "products", "ls":
			reportError(ctx, a, a.Products(ctx, args))
		case "product", "show":
			reportError(ctx, a, a.Product(ctx, args))
		case "categories":
			reportError(ctx, a, a.Categories(ctx))

		case "cart":
			reportError(ctx, a, a.Cart(ctx))
		case "add":
			reportError(ctx, a, a.AddToCart(ctx, args))
		case "update":
			reportError(ctx, a, a.UpdateCartItem(ctx, args))
		case "remove", "rm":
			reportError(ctx, a, a.RemoveCartItem(ctx, args))

		case "checkout":
			reportError(ctx, a, a.Checkout(ctx))
		case "orders":
			reportError(ctx, a, a.Orders(ctx))
		case "order":
			reportError(ctx, a, a.Order(ctx, args))
		case "cancel":
			reportError(ctx, a, a.CancelOrder(ctx, args))

		case "stats":
			reportError(ctx, a, a.Stats(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			// EOF right after the last command.
			return
		}
	}
}

// reportError prints err for the user. When the session has expired the
// stored credentials are already gone; the user is offered a fresh login.
func reportError(ctx context.Context, a execIface, err error) {
	if err == nil {
		return
	}

	var usage usageError
	switch {
	case errors.As(err, &usage):
		printlnFn(usage.Error())

	case errors.Is(err, api.ErrSessionExpired):
		printError(err)
		printlnFn("Please log in again.")
		if loginErr := a.Login(ctx); loginErr != nil {
			printError(loginErr)
		}

	case errors.Is(err, api.ErrUnauthorized):
		printError(err)
		if !a.isLoggedIn() {
			printlnFn("This command requires login: type 'login' or 'register'.")
		}

	default:
		printError(err)
	}
}

func printError(err error) {
	_, _ = errorColor.Fprintln(errorOut, "Error:", err.Error())
}
