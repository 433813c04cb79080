package budgea

import (
	"context"
	"encoding/json"
)

const connectionsPath = "/users/me/connections"

// ListConnections lists the current user's bank connections.
func (c *Client) ListConnections(ctx context.Context, expand string) (json.RawMessage, error) {
	return c.Get(ctx, connectionsPath, expandParams(expand))
}

// GetConnection fetches one connection.
func (c *Client) GetConnection(ctx context.Context, id, expand string) (json.RawMessage, error) {
	return c.Get(ctx, resource(connectionsPath, id), expandParams(expand))
}

// CreateConnection creates a connection from a caller-supplied JSON document
// (bank id plus login fields).
func (c *Client) CreateConnection(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return c.Post(ctx, connectionsPath, body)
}

// UpdateConnection posts new credentials or fields to an existing connection.
func (c *Client) UpdateConnection(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.Post(ctx, resource(connectionsPath, id), body)
}

// DeleteConnection removes a connection and its accounts.
func (c *Client) DeleteConnection(ctx context.Context, id string) (json.RawMessage, error) {
	return c.Delete(ctx, resource(connectionsPath, id))
}

// SyncConnection triggers a synchronization with an empty PUT.
func (c *Client) SyncConnection(ctx context.Context, id string) (json.RawMessage, error) {
	return c.Put(ctx, resource(connectionsPath, id), struct{}{})
}
