// Package services contains application services for the storefront client.
// Each service wraps a group of backend endpoints and keeps the session store
// in step with them.
package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login / Register: obtain a credential pair and the user snapshot and
//     persist both.
//   - Logout: best-effort server-side revocation, then clear the session.
//   - Profile: fetch the current user and refresh the snapshot.
//   - IsAuthenticated: an access credential is stored (the server may still
//     reject it).
//   - CurrentUser: the cached snapshot, nil when logged out.
//   - Claims: unverified claims of the stored access credential.
//   - Ping: check server liveness.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
	IsAuthenticated(ctx context.Context) (bool, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Claims(ctx context.Context) (*session.Claims, error)
	Ping(ctx context.Context) error
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Email     string
	Password  []byte
	FirstName string
	LastName  string
}

type authResponse struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    models.User `json:"user"`
}

type authService struct {
	client APIClient
	store  session.Store
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store. A nil log discards output.
func NewAuthService(client APIClient, store session.Store, log logging.Logger) AuthService {
	if log == nil {
		log = logging.NewNop()
	}
	return &authService{client: client, store: store, log: log}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return nil, common.ErrEmptyArgument
	}

	body := map[string]string{"email": email, "password": string(password)}

	var resp authResponse
	if err := a.client.Do(ctx, http.MethodPost, "/auth/login/", body, &resp, false); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return a.startSession(ctx, &resp)
}

func (a *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || len(in.Password) == 0 {
		return nil, common.ErrEmptyArgument
	}

	body := map[string]string{
		"email":      in.Email,
		"password":   string(in.Password),
		"first_name": strings.TrimSpace(in.FirstName),
		"last_name":  strings.TrimSpace(in.LastName),
	}

	var resp authResponse
	if err := a.client.Do(ctx, http.MethodPost, "/auth/register/", body, &resp, false); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return a.startSession(ctx, &resp)
}

// startSession replaces whatever session was stored with the new one.
func (a *authService) startSession(ctx context.Context, resp *authResponse) (*models.User, error) {
	if resp.Access == "" || resp.Refresh == "" {
		return nil, ErrMalformedResponse
	}

	if err := a.store.SetCredentials(ctx, session.Credentials{Access: resp.Access, Refresh: resp.Refresh}); err != nil {
		return nil, fmt.Errorf("save credentials: %w", err)
	}
	if err := a.store.SetUser(ctx, &resp.User); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	u := resp.User
	return &u, nil
}

// Logout asks the backend to revoke the refresh credential and clears the
// local session whatever the outcome of that call.
func (a *authService) Logout(ctx context.Context) error {
	creds, err := a.store.Credentials(ctx)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}

	if creds.Refresh != "" {
		// The server expires an unrevoked credential on its own.
		if err := a.client.Do(ctx, http.MethodPost, "/auth/logout/", map[string]string{"refresh": creds.Refresh}, nil, true); err != nil {
			a.log.Warn(ctx, "server-side logout failed, clearing local session", "error", err)
		}
	}

	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (a *authService) Profile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := a.client.Do(ctx, http.MethodGet, "/auth/me/", nil, &u, true); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	if err := a.store.SetUser(ctx, &u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return &u, nil
}

func (a *authService) IsAuthenticated(ctx context.Context) (bool, error) {
	creds, err := a.store.Credentials(ctx)
	if err != nil {
		return false, err
	}
	return creds.Access != "", nil
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return a.store.User(ctx)
}

func (a *authService) Claims(ctx context.Context) (*session.Claims, error) {
	creds, err := a.store.Credentials(ctx)
	if err != nil {
		return nil, err
	}
	if creds.Access == "" {
		return nil, nil
	}
	return session.ParseClaims(creds.Access)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
