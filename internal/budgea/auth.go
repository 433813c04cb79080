package budgea

import (
	"context"
	"encoding/json"
)

// InitRequest is the body of POST /auth/init. Both fields are omitted for an
// anonymous temporary token.
type InitRequest struct {
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
}

// JWTRequest is the body of POST /auth/jwt.
type JWTRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Expire       bool   `json:"expire"`
	UserID       *int   `json:"id_user,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// InitToken creates a temporary token for a new anonymous user.
func (c *Client) InitToken(ctx context.Context, req InitRequest) (json.RawMessage, error) {
	return c.Post(ctx, "/auth/init", req)
}

// GenerateJWT issues a JWT for the client application or a given user.
func (c *Client) GenerateJWT(ctx context.Context, req JWTRequest) (json.RawMessage, error) {
	return c.Post(ctx, "/auth/jwt", req)
}

// RevokeToken revokes the token used to authenticate the call.
func (c *Client) RevokeToken(ctx context.Context) (json.RawMessage, error) {
	return c.Delete(ctx, "/auth/token")
}
