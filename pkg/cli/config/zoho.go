package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/selec-labs/selecbot/pkg/domain/interfaces"
	"github.com/selec-labs/selecbot/pkg/service/zoho"
	"github.com/urfave/cli/v3"
)

// Zoho holds CLI flags for the CRM collaborator. The log handler redacts
// fields tagged as secret, so the struct can be logged at startup without
// leaking the OAuth credentials.
type Zoho struct {
	BaseURL      string
	AccountsURL  string
	ClientID     string
	ClientSecret string `masq:"secret"`
	RefreshToken string `masq:"secret"`
	OwnerID      string
}

// Flags returns CLI flags for CRM configuration
func (z *Zoho) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "zoho-base-url",
			Usage:       "Zoho CRM API origin",
			Value:       "https://www.zohoapis.com",
			Sources:     cli.EnvVars("SELECBOT_ZOHO_BASE_URL"),
			Destination: &z.BaseURL,
		},
		&cli.StringFlag{
			Name:        "zoho-accounts-url",
			Usage:       "Zoho accounts server for OAuth token refresh",
			Value:       "https://accounts.zoho.com",
			Sources:     cli.EnvVars("SELECBOT_ZOHO_ACCOUNTS_URL"),
			Destination: &z.AccountsURL,
		},
		&cli.StringFlag{
			Name:        "zoho-client-id",
			Usage:       "Zoho OAuth client ID",
			Sources:     cli.EnvVars("SELECBOT_ZOHO_CLIENT_ID"),
			Destination: &z.ClientID,
		},
		&cli.StringFlag{
			Name:        "zoho-client-secret",
			Usage:       "Zoho OAuth client secret",
			Sources:     cli.EnvVars("SELECBOT_ZOHO_CLIENT_SECRET"),
			Destination: &z.ClientSecret,
		},
		&cli.StringFlag{
			Name:        "zoho-refresh-token",
			Usage:       "Zoho OAuth refresh token",
			Sources:     cli.EnvVars("SELECBOT_ZOHO_REFRESH_TOKEN"),
			Destination: &z.RefreshToken,
		},
		&cli.StringFlag{
			Name:        "zoho-owner-id",
			Usage:       "CRM user who receives a follow-up task per submission",
			Sources:     cli.EnvVars("SELECBOT_ZOHO_OWNER_ID"),
			Destination: &z.OwnerID,
		},
	}
}

// IsConfigured reports whether the OAuth triple is complete
func (z *Zoho) IsConfigured() bool {
	return z.ClientID != "" && z.ClientSecret != "" && z.RefreshToken != ""
}

// Configure builds the CRM client from the flags
func (z *Zoho) Configure() (interfaces.CRM, error) {
	if !z.IsConfigured() {
		return nil, goerr.New("zoho-client-id, zoho-client-secret and zoho-refresh-token are required")
	}

	var opts []zoho.Option
	if z.OwnerID != "" {
		opts = append(opts, zoho.WithOwner(z.OwnerID))
	}

	client, err := zoho.New(z.BaseURL, z.AccountsURL, z.ClientID, z.ClientSecret, z.RefreshToken, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize CRM client")
	}

	return client, nil
}
