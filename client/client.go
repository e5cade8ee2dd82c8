// Package client is a small API client for the taskhub service, used by
// tools that mirror server state locally.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/zeebo/errs"

	"taskhub/app/model"
)

var Error = errs.Class("client")

type Client struct {
	base string
	http *http.Client

	// TokenFunc supplies the bearer token per request so callers can
	// refresh expiring sessions.
	TokenFunc func() (string, error)
}

func New(base string) *Client {
	return &Client{
		base: base,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Workspaces returns every workspace the authenticated user belongs to.
func (c *Client) Workspaces(ctx context.Context) ([]model.Workspace, error) {
	res := struct {
		Workspaces []model.Workspace `json:"workspaces"`
	}{}
	if err := c.get(ctx, "/api/workspaces", &res); err != nil {
		return nil, err
	}
	return res.Workspaces, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return Error.Wrap(err)
	}
	if c.TokenFunc != nil {
		token, err := c.TokenFunc()
		if err != nil {
			return Error.Wrap(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Error.Wrap(err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return Error.New("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	return Error.Wrap(json.NewDecoder(resp.Body).Decode(out))
}

func (c *Client) String() string {
	return fmt.Sprintf("client(%s)", c.base)
}
