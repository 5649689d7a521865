package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-acme-cse/internal/config"
	"github.com/MKhiriev/go-acme-cse/internal/utils"
)

// tokenCmd issues a bearer token accepted by a CSE running with
// http.security.enableTokenAuth. Missing flags fall back to the INI file.
func tokenCmd(configPath *string, d *deps) *cobra.Command {
	var (
		signKey string
		subject string
		issuer  string
		ttl     time.Duration
	)

	c := &cobra.Command{
		Use:   "token",
		Short: "Issue a JWT for token authentication",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if signKey == "" || issuer == "" || subject == "" {
				cfg, err := config.LoadProvisionConfig(*configPath)
				if err != nil {
					return err
				}
				if signKey == "" {
					signKey = cfg.HTTP.Security.TokenSignKey
				}
				if issuer == "" {
					issuer = cfg.HTTP.Security.TokenIssuer
				}
				if subject == "" {
					subject = cfg.Provision.Originator
				}
			}

			token, err := utils.GenerateJWTToken(issuer, subject, ttl, signKey)
			if err != nil {
				return err
			}

			fmt.Fprintln(d.out, token.String())
			return nil
		},
	}

	c.Flags().StringVar(&signKey, "sign-key", "", "HMAC key (defaults to http.security.tokenSignKey)")
	c.Flags().StringVar(&subject, "subject", "", "originator the token is issued for (defaults to provision.originator)")
	c.Flags().StringVar(&issuer, "issuer", "", "token issuer (defaults to http.security.tokenIssuer)")
	c.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return c
}
