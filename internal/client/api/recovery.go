package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/client/session"
)

const refreshFlightKey = "refresh"

const sessionExpiredMessage = "your session has expired, please log in again"

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// recover returns an access credential to retry with. Concurrent callers
// share one refresh. The refresh itself runs detached from ctx so that one
// cancelled caller does not fail it for the others.
func (c *Client) recover(ctx context.Context, used string) (string, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.refreshes.DoChan(refreshFlightKey, func() (any, error) {
		return c.refresh(detached, used)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", fmt.Errorf("api: await refresh: %w", ctx.Err())
	}
}

func (c *Client) refresh(ctx context.Context, used string) (string, error) {
	creds, err := c.store.Credentials(ctx)
	if err != nil {
		c.metrics.refresh(refreshFailed)
		return "", fmt.Errorf("api: load credentials: %w", err)
	}

	// Another caller already replaced the credential this request used.
	if creds.Access != "" && creds.Access != used {
		c.metrics.refresh(refreshReused)
		return creds.Access, nil
	}

	if creds.Refresh == "" {
		c.metrics.refresh(refreshMissing)
		return "", c.expire(ctx, errNoRefreshCredential)
	}

	p, err := c.prepare(http.MethodPost, c.refreshPath, map[string]string{"refresh": creds.Refresh})
	if err != nil {
		c.metrics.refresh(refreshFailed)
		return "", err
	}

	resp, err := c.send(ctx, p, "")
	if err != nil {
		c.metrics.refresh(refreshFailed)
		return "", c.expire(ctx, err)
	}
	if resp.status < 200 || resp.status > 299 {
		c.metrics.refresh(refreshFailed)
		return "", c.expire(ctx, httpError(resp.status, resp.body))
	}

	var pair tokenPair
	if err := json.Unmarshal(resp.body, &pair); err != nil || pair.Access == "" {
		c.metrics.refresh(refreshFailed)
		return "", c.expire(ctx, &Error{Kind: KindDecode, Status: resp.status, Message: "refresh response carried no access credential", Err: err})
	}

	next := session.Credentials{Access: pair.Access, Refresh: creds.Refresh}
	if pair.Refresh != "" {
		next.Refresh = pair.Refresh
	}
	if err := c.store.SetCredentials(ctx, next); err != nil {
		c.metrics.refresh(refreshFailed)
		return "", fmt.Errorf("api: persist refreshed credentials: %w", err)
	}

	c.metrics.refresh(refreshSucceeded)
	c.log.Info(ctx, "access credential refreshed", "rotated", pair.Refresh != "")
	return pair.Access, nil
}

// expire clears the whole session and reports it as expired, keeping cause in
// the chain.
func (c *Client) expire(ctx context.Context, cause error) error {
	if err := c.store.Clear(context.WithoutCancel(ctx)); err != nil {
		c.log.Error(ctx, "failed to clear session", "error", err)
		cause = errors.Join(cause, err)
	}
	c.log.Warn(ctx, "session expired", "cause", cause)

	return &Error{
		Kind:    KindSessionExpired,
		Status:  http.StatusUnauthorized,
		Message: sessionExpiredMessage,
		Err:     cause,
	}
}
