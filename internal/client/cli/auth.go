package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getConfirmation = GetConfirmation

// nowFn is a test seam for token expiry display.
var nowFn = time.Now

// Register prompts for the sign-up form and creates an account. A successful
// registration also signs the user in.
//
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "First name (optional)", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name (optional)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Register(ctx, services.RegisterInput{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return err
	}

	a.setMode(ModeOnline)
	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", u.DisplayName())
	return nil
}

// Login prompts the user for credentials and signs in. An unreachable server
// switches the prompt to offline mode.
//
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		return err
	}

	a.setMode(ModeOnline)
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.DisplayName())
	return nil
}

// Logout ends the session locally and, when reachable, on the server.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the cached user and when the access credential expires. The
// expiry comes from the unverified token and is informational only.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	u, err := a.authService.Profile(ctx)
	if err != nil {
		if !errors.Is(err, api.ErrUnavailable) {
			return err
		}
		// Offline: fall back to the snapshot.
		if u, err = a.authService.CurrentUser(ctx); err != nil {
			return err
		}
	}
	if u != nil {
		fmt.Fprintf(a.out, "%s <%s>\n", u.DisplayName(), u.Email)
	}

	claims, err := a.authService.Claims(ctx)
	if err != nil || claims == nil || claims.ExpiresAt.IsZero() {
		return nil
	}
	if claims.Expired(nowFn()) {
		fmt.Fprintln(a.out, "Access token expired; it will be refreshed on the next request.")
	} else {
		fmt.Fprintf(a.out, "Access token valid until %s\n", claims.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}
