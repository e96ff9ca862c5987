package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/selec-labs/selecbot/pkg/cli/config"
	domainConfig "github.com/selec-labs/selecbot/pkg/domain/model/config"
)

func writeBotFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bot.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestLoadBotFile(t *testing.T) {
	path := writeBotFile(t, `
identity_priority = ["email", "id"]
quote_keywords = ["cotiz", "presupuesto"]
aftersales_keywords = ["garantia"]
phone_min_digits = 8
phone_max_digits = 11
`)

	file, err := config.LoadBotFile(path)
	gt.NoError(t, err).Required()

	gt.A(t, file.IdentityPriority).Equal([]string{"email", "id"})
	gt.A(t, file.QuoteKeywords).Equal([]string{"cotiz", "presupuesto"})
	gt.A(t, file.AfterSalesKeywords).Equal([]string{"garantia"})
	gt.N(t, file.PhoneMinDigits).Equal(8)
	gt.N(t, file.PhoneMaxDigits).Equal(11)
}

func TestLoadBotFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadBotFile(filepath.Join(t.TempDir(), "absent.toml"))
		gt.Error(t, err)
	})

	t.Run("broken TOML", func(t *testing.T) {
		path := writeBotFile(t, `quote_keywords = [unclosed`)
		_, err := config.LoadBotFile(path)
		gt.Error(t, err)
	})
}

func TestBotFile_Apply(t *testing.T) {
	t.Run("partial file keeps defaults", func(t *testing.T) {
		cfg := domainConfig.Default()
		file := &config.BotFile{QuoteKeywords: []string{"presupuesto"}}

		file.Apply(cfg)

		gt.A(t, cfg.QuoteKeywords).Equal([]string{"presupuesto"})
		gt.A(t, cfg.AfterSalesKeywords).Equal([]string{"postventa", "post venta"})
		gt.N(t, cfg.PhoneMinDigits).Equal(7)
		gt.N(t, cfg.PhoneMaxDigits).Equal(12)
	})

	t.Run("empty file changes nothing", func(t *testing.T) {
		cfg := domainConfig.Default()
		(&config.BotFile{}).Apply(cfg)
		gt.V(t, cfg).Equal(domainConfig.Default())
	})
}

func TestBot_Configure(t *testing.T) {
	t.Run("no path yields defaults", func(t *testing.T) {
		var botCfg config.Bot
		cfg, err := botCfg.Configure()
		gt.NoError(t, err).Required()
		gt.V(t, cfg).Equal(domainConfig.Default())
	})
}

func TestBot_Configure_InvalidOverride(t *testing.T) {
	path := writeBotFile(t, `identity_priority = ["not_an_attribute"]`)

	file, err := config.LoadBotFile(path)
	gt.NoError(t, err).Required()

	cfg := domainConfig.Default()
	file.Apply(cfg)
	gt.Error(t, cfg.Validate())
}
