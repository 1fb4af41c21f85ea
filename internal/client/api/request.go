package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

var allowedMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
}

// pendingRequest is everything needed to send a call again with a different
// credential. The body is serialized once.
type pendingRequest struct {
	method   string
	endpoint string
	url      string
	body     []byte
}

type response struct {
	status int
	body   []byte
}

func (c *Client) prepare(method, endpoint string, body any) (*pendingRequest, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if _, ok := allowedMethods[method]; !ok {
		return nil, invalidError("unsupported method %q", method)
	}

	u, err := c.resolve(endpoint)
	if err != nil {
		return nil, err
	}

	p := &pendingRequest{method: method, endpoint: endpoint, url: u}
	if body != nil {
		p.body, err = json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindInvalid, Message: "could not encode request body", Err: err}
		}
	}
	return p, nil
}

func (p *pendingRequest) build(ctx context.Context, token, userAgent string) (*http.Request, error) {
	var rdr io.Reader
	if p.body != nil {
		rdr = bytes.NewReader(p.body)
	}

	req, err := http.NewRequestWithContext(ctx, p.method, p.url, rdr)
	if err != nil {
		return nil, invalidError("invalid request: %v", err)
	}

	req.Header.Set("Accept", common.JSONContentType)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(common.RequestIDHeaderName, logging.RequestID(ctx))
	if p.body != nil {
		req.Header.Set("Content-Type", common.JSONContentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}
	return req, nil
}

// send performs one HTTP exchange. Any status is a successful send; only
// transport failures return an error.
func (c *Client) send(ctx context.Context, p *pendingRequest, token string) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &Error{Kind: KindNetwork, Message: "request not sent: " + err.Error(), Err: err}
		}
	}

	// Each attempt gets its own id; log lines pick it up from ctx.
	ctx = logging.WithRequestID(ctx, uuid.NewString())
	req, err := p.build(ctx, token, c.userAgent)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", p.method, "endpoint", p.endpoint, "error", err)
		return nil, &Error{Kind: KindNetwork, Message: "server unavailable, check your connection", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Status: resp.StatusCode, Message: "connection lost while reading response", Err: err}
	}

	c.log.Debug(ctx, "request sent",
		"method", p.method,
		"endpoint", p.endpoint,
		"status", resp.StatusCode,
		"authenticated", token != "",
		"duration", time.Since(start),
	)

	return &response{status: resp.StatusCode, body: body}, nil
}

// finish turns a final response into the caller's result.
func finish(r *response) (json.RawMessage, error) {
	if r.status < 200 || r.status > 299 {
		return nil, httpError(r.status, r.body)
	}
	if len(bytes.TrimSpace(r.body)) == 0 {
		return nil, nil
	}
	if appErr := applicationError(r.status, r.body); appErr != nil {
		return nil, appErr
	}
	return json.RawMessage(r.body), nil
}

// Request sends method to endpoint and returns the raw JSON body of a
// successful response (nil for an empty body).
//
// With requiresAuth set, the stored access credential is attached. A 401 on
// such a request triggers one recovery cycle: the refresh credential is
// exchanged for a new access credential and the request is sent once more.
// When recovery fails the session is cleared and the error matches
// ErrSessionExpired.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any, requiresAuth bool) (raw json.RawMessage, err error) {
	label := invalidMethodLabel
	defer func() { c.metrics.request(label, err) }()

	p, err := c.prepare(method, endpoint, body)
	if err != nil {
		return nil, err
	}
	label = p.method

	var token string
	if requiresAuth {
		creds, err := c.store.Credentials(ctx)
		if err != nil {
			return nil, fmt.Errorf("api: load credentials: %w", err)
		}
		token = creds.Access
	}

	resp, err := c.send(ctx, p, token)
	if err != nil {
		return nil, err
	}

	// Only a request that carried a credential can recover.
	if resp.status != http.StatusUnauthorized || token == "" {
		return finish(resp)
	}

	fresh, err := c.recover(ctx, token)
	if err != nil {
		return nil, err
	}

	resp, err = c.send(ctx, p, fresh)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusUnauthorized {
		return nil, c.expire(ctx, httpError(resp.status, resp.body))
	}
	return finish(resp)
}

// Do is Request followed by decoding the body into out. A nil out or an empty
// body skips decoding.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any, requiresAuth bool) error {
	raw, err := c.Request(ctx, method, endpoint, body, requiresAuth)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: KindDecode, Message: "unexpected response from server", Err: err}
	}
	return nil
}

// Ping checks that the backend answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	p, err := c.prepare(http.MethodGet, c.healthPath, nil)
	if err != nil {
		return err
	}
	resp, err := c.send(ctx, p, "")
	if err != nil {
		return err
	}
	_, err = finish(resp)
	return err
}
