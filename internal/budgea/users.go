package budgea

import (
	"context"
	"encoding/json"
)

// Me fetches the user owning the current token.
func (c *Client) Me(ctx context.Context, expand string) (json.RawMessage, error) {
	return c.Get(ctx, "/users/me", expandParams(expand))
}

// ListUsers lists every user of the domain. Requires an admin token.
func (c *Client) ListUsers(ctx context.Context, page Page) (json.RawMessage, error) {
	return c.Get(ctx, "/users", page.params())
}

// DeleteMe deletes the current user and all of its data.
func (c *Client) DeleteMe(ctx context.Context) (json.RawMessage, error) {
	return c.Delete(ctx, "/users/me")
}
