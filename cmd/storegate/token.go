package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/storegate/internal/config"
	jwtx "github.com/dropDatabas3/storegate/internal/jwt"
)

type tokenOptions struct {
	tenantID string
	subject  string
	role     string
	perms    []string
	ttl      time.Duration
}

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var to tokenOptions
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un access token local con el claim canónico tenant_id",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			out, err := issueToken(cfg, to)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&to.tenantID, "tenant-id", "", "UUID del tenant (requerido salvo para tokens de plataforma)")
	cmd.Flags().StringVar(&to.subject, "sub", "local-user", "Subject del token")
	cmd.Flags().StringVar(&to.role, "role", "Owner", "Rol (Owner saltea el PermissionGate)")
	cmd.Flags().StringSliceVar(&to.perms, "perm", nil, "Permisos (repetible o separados por coma)")
	cmd.Flags().DurationVar(&to.ttl, "ttl", 0, "Duración (default: auth.token_ttl)")
	return cmd
}

type tokenOutput struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func issueToken(cfg *config.Config, to tokenOptions) (tokenOutput, error) {
	if cfg.Auth.JWTSecret == "" {
		return tokenOutput{}, errors.New("auth.jwt_secret (JWT_SECRET) is required to issue tokens")
	}
	secret, err := jwtx.NewSecret(cfg.Auth.JWTSecret)
	if err != nil {
		return tokenOutput{}, err
	}

	ac := jwtx.AccessClaims{Subject: to.subject, Role: to.role, Permissions: to.perms, TTL: to.ttl}
	if to.tenantID != "" {
		id, err := uuid.Parse(to.tenantID)
		if err != nil {
			return tokenOutput{}, fmt.Errorf("--tenant-id: %w", err)
		}
		ac.TenantID = id
	}

	iss := jwtx.NewIssuer(cfg.Auth.Issuer, cfg.Auth.Audience, secret, config.Duration(cfg.Auth.TokenTTL, time.Hour))
	tok, exp, err := iss.IssueAccess(ac)
	if err != nil {
		return tokenOutput{}, err
	}
	return tokenOutput{AccessToken: tok, TokenType: "Bearer", ExpiresAt: exp}, nil
}
