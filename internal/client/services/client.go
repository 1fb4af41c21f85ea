package services

import (
	"context"
	"errors"
)

// APIClient is the subset of *api.Client the services depend on.
type APIClient interface {
	Do(ctx context.Context, method, endpoint string, body, out any, requiresAuth bool) error
	Ping(ctx context.Context) error
}

var ErrMalformedResponse = errors.New("malformed server response")
