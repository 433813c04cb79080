package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/biapi/internal/app"
	"github.com/derickschaefer/biapi/internal/apperr"
	"github.com/derickschaefer/biapi/internal/budgea"
	"github.com/derickschaefer/biapi/internal/util"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication tokens",
}

var authInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new temporary token (anonymous user)",
	Long: `Create a temporary token for a new anonymous user.

When clientId and clientSecret are configured they are sent with the request.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "create temporary token",
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				req := budgea.InitRequest{}
				if creds := deps.Resolver.ClientCredentials(); creds.Complete() {
					req.ClientID = creds.ClientID
					req.ClientSecret = creds.ClientSecret
				}
				return deps.Client.InitToken(ctx, req)
			},
			func(data json.RawMessage) string {
				if secs, ok := expiresIn(data); ok {
					return fmt.Sprintf("Temporary token created (expires in %s seconds)", secs)
				}
				return "Temporary token created"
			})
	},
}

var authJWTFlags struct {
	UserID int
	Expire string
	Scope  string
}

var authJWTCmd = &cobra.Command{
	Use:   "jwt",
	Short: "Generate a JWT token",
	Example: `  biapi auth jwt
  biapi auth jwt --user-id 42 --expire false`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		expire, err := util.ParseBool("expire", authJWTFlags.Expire)
		if err != nil {
			return err
		}
		userID := optionalInt(cmd, "user-id", authJWTFlags.UserID)

		return runAPI(cmd, "generate JWT",
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				creds := deps.Resolver.ClientCredentials()
				if !creds.Complete() {
					return nil, apperr.Configf("client credentials required. Set BIAPI_CLIENT_ID and BIAPI_CLIENT_SECRET, or run biapi config set clientId/clientSecret")
				}
				return deps.Client.GenerateJWT(ctx, budgea.JWTRequest{
					ClientID:     creds.ClientID,
					ClientSecret: creds.ClientSecret,
					Expire:       expire,
					UserID:       userID,
					Scope:        authJWTFlags.Scope,
				})
			},
			fixed("JWT token generated"))
	},
}

var authRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke the current token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "revoke token",
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.RevokeToken(ctx)
			},
			fixed("Token revoked"))
	},
}

// expiresIn reads the expires_in field of a token response.
func expiresIn(data json.RawMessage) (json.Number, bool) {
	var resp struct {
		ExpiresIn json.Number `json:"expires_in"`
	}
	if json.Unmarshal(data, &resp) != nil || resp.ExpiresIn == "" {
		return "", false
	}
	return resp.ExpiresIn, true
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authInitCmd)
	authCmd.AddCommand(authJWTCmd)
	authCmd.AddCommand(authRevokeCmd)

	f := authJWTCmd.Flags()
	f.IntVar(&authJWTFlags.UserID, "user-id", 0, "user ID for the token")
	f.StringVar(&authJWTFlags.Expire, "expire", "true", "whether the token should expire (true/false)")
	f.StringVar(&authJWTFlags.Scope, "scope", "", "scope for the token")
}
