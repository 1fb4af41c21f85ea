// Package cli provides the interactive storefront command-line client.
//
// It wires configuration, local storage, the session store, the API client
// and the storefront services into a REPL. Typical flow: browse the catalog
// anonymously, log in, fill the cart, check out and follow the order.
//
// Key features:
//   - Register / Login / Logout / whoami
//   - Products, product details, categories
//   - Cart: show, add, update, remove
//   - Checkout, order history, order details, cancellation
//
// When a command fails because the session could not be renewed, the REPL
// reports it and runs the login flow right away.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
