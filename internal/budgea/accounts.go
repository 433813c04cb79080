package budgea

import (
	"context"
	"encoding/json"
)

const accountsPath = "/users/me/accounts"

// AccountUpdate is the body of PUT /users/me/accounts/{id}.
// Nil or empty fields are left unchanged.
type AccountUpdate struct {
	Name     string `json:"name,omitempty"`
	Disabled *bool  `json:"disabled,omitempty"`
}

// ListAccounts lists the current user's accounts.
func (c *Client) ListAccounts(ctx context.Context, expand string) (json.RawMessage, error) {
	return c.Get(ctx, accountsPath, expandParams(expand))
}

// GetAccount fetches one account.
func (c *Client) GetAccount(ctx context.Context, id, expand string) (json.RawMessage, error) {
	return c.Get(ctx, resource(accountsPath, id), expandParams(expand))
}

// UpdateAccount renames or enables/disables an account.
func (c *Client) UpdateAccount(ctx context.Context, id string, upd AccountUpdate) (json.RawMessage, error) {
	return c.Put(ctx, resource(accountsPath, id), upd)
}

// DeleteAccount deletes an account.
func (c *Client) DeleteAccount(ctx context.Context, id string) (json.RawMessage, error) {
	return c.Delete(ctx, resource(accountsPath, id))
}
