package budgea

import (
	"context"
	"encoding/json"
)

const transactionsPath = "/users/me/transactions"

// TransactionFilter holds the optional parameters of a transaction listing.
// Empty strings are omitted from the query.
type TransactionFilter struct {
	AccountID string
	MinDate   string // YYYY-MM-DD
	MaxDate   string // YYYY-MM-DD
	Expand    string
	Page      Page
}

// Path returns the listing endpoint: account-scoped when AccountID is set.
func (f TransactionFilter) Path() string {
	if f.AccountID != "" {
		return resource(accountsPath, f.AccountID) + "/transactions"
	}
	return transactionsPath
}

// Params returns the query parameters for the filter.
func (f TransactionFilter) Params() Params {
	p := f.Page.params()
	if f.MinDate != "" {
		p["min_date"] = f.MinDate
	}
	if f.MaxDate != "" {
		p["max_date"] = f.MaxDate
	}
	if f.Expand != "" {
		p["expand"] = f.Expand
	}
	return p
}

// TransactionUpdate is the body of PUT /users/me/transactions/{id}.
// Nil fields are left unchanged; a non-nil empty comment clears it.
type TransactionUpdate struct {
	Comment    *string `json:"comment,omitempty"`
	CategoryID *int    `json:"id_category,omitempty"`
}

// ListTransactions lists transactions matching f.
func (c *Client) ListTransactions(ctx context.Context, f TransactionFilter) (json.RawMessage, error) {
	return c.Get(ctx, f.Path(), f.Params())
}

// GetTransaction fetches one transaction.
func (c *Client) GetTransaction(ctx context.Context, id, expand string) (json.RawMessage, error) {
	return c.Get(ctx, resource(transactionsPath, id), expandParams(expand))
}

// UpdateTransaction sets a comment or category on a transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id string, upd TransactionUpdate) (json.RawMessage, error) {
	return c.Put(ctx, resource(transactionsPath, id), upd)
}

// DeleteTransaction deletes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id string) (json.RawMessage, error) {
	return c.Delete(ctx, resource(transactionsPath, id))
}
