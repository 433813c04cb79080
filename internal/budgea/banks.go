package budgea

import (
	"context"
	"encoding/json"
)

// ListBanks lists available banks (connectors).
func (c *Client) ListBanks(ctx context.Context, page Page, expand string) (json.RawMessage, error) {
	p := page.params()
	if expand != "" {
		p["expand"] = expand
	}
	return c.Get(ctx, "/banks", p)
}

// GetBank fetches one bank by id.
func (c *Client) GetBank(ctx context.Context, id, expand string) (json.RawMessage, error) {
	return c.Get(ctx, resource("/banks", id), expandParams(expand))
}

// SearchBanks lists banks whose name matches query.
func (c *Client) SearchBanks(ctx context.Context, query string, limit int) (json.RawMessage, error) {
	return c.Get(ctx, "/banks", Params{"search": query, "limit": limit})
}
