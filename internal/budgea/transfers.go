package budgea

import (
	"context"
	"encoding/json"
)

const transfersPath = "/users/me/transfers"

// NewTransfer describes a transfer to create. Amount keeps the exact decimal
// text the user typed.
type NewTransfer struct {
	AccountID   string      `json:"-"`
	RecipientID string      `json:"-"`
	Amount      json.Number `json:"amount"`
	Label       string      `json:"label"`
	ExecDate    string      `json:"exec_date,omitempty"`
}

// Path returns the creation endpoint for t.
func (t NewTransfer) Path() string {
	return resource(accountsPath, t.AccountID) + resource("/recipients", t.RecipientID) + "/transfers"
}

// transferExecution is the body of PUT /users/me/transfers/{id}.
type transferExecution struct {
	Validated bool   `json:"validated"`
	Password  string `json:"password,omitempty"`
}

// ListTransfers lists the current user's transfers.
func (c *Client) ListTransfers(ctx context.Context, page Page) (json.RawMessage, error) {
	return c.Get(ctx, transfersPath, page.params())
}

// GetTransfer fetches one transfer.
func (c *Client) GetTransfer(ctx context.Context, id string) (json.RawMessage, error) {
	return c.Get(ctx, resource(transfersPath, id), nil)
}

// CreateTransfer creates a pending transfer. It is not executed until
// ExecuteTransfer is called.
func (c *Client) CreateTransfer(ctx context.Context, t NewTransfer) (json.RawMessage, error) {
	return c.Post(ctx, t.Path(), t)
}

// ExecuteTransfer validates a pending transfer. password is sent only when
// the bank requires it.
func (c *Client) ExecuteTransfer(ctx context.Context, id, password string) (json.RawMessage, error) {
	return c.Put(ctx, resource(transfersPath, id), transferExecution{Validated: true, Password: password})
}

// CancelTransfer cancels a transfer.
func (c *Client) CancelTransfer(ctx context.Context, id string) (json.RawMessage, error) {
	return c.Delete(ctx, resource(transfersPath, id))
}
