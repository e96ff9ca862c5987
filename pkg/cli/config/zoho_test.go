package config_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/selec-labs/selecbot/pkg/cli/config"
	"github.com/selec-labs/selecbot/pkg/utils/logging"
)

func TestZoho_IsConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Zoho
		want bool
	}{
		{name: "empty", cfg: config.Zoho{}, want: false},
		{
			name: "complete triple",
			cfg:  config.Zoho{ClientID: "cid", ClientSecret: "cs", RefreshToken: "rt"},
			want: true,
		},
		{
			name: "missing refresh token",
			cfg:  config.Zoho{ClientID: "cid", ClientSecret: "cs"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, tt.cfg.IsConfigured()).Equal(tt.want)
		})
	}
}

func TestZoho_SecretsRedactedInLogs(t *testing.T) {
	cfg := config.Zoho{
		BaseURL:      "https://www.zohoapis.com",
		ClientID:     "client-id-visible",
		ClientSecret: "client-secret-hidden",
		RefreshToken: "refresh-token-hidden",
	}

	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)
	logger.Info("CRM collaborator enabled", "zoho", cfg)

	out := buf.String()
	gt.B(t, strings.Contains(out, "client-secret-hidden")).False()
	gt.B(t, strings.Contains(out, "refresh-token-hidden")).False()
	gt.S(t, out).Contains("client-id-visible")
}
