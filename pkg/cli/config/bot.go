package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/selec-labs/selecbot/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
)

// Bot holds the CLI flag pointing at the bot behavior file
type Bot struct {
	path string
}

// BotFile is the TOML shape of the bot behavior configuration. Every
// field is optional; absent fields keep their built-in value.
type BotFile struct {
	IdentityPriority   []string `toml:"identity_priority"`
	QuoteKeywords      []string `toml:"quote_keywords"`
	AfterSalesKeywords []string `toml:"aftersales_keywords"`
	PhoneMinDigits     int      `toml:"phone_min_digits"`
	PhoneMaxDigits     int      `toml:"phone_max_digits"`
}

// Flags returns CLI flags for bot behavior configuration
func (b *Bot) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bot-config",
			Usage:       "Path to the bot behavior TOML file (optional, built-in defaults apply)",
			Sources:     cli.EnvVars("SELECBOT_BOT_CONFIG"),
			Destination: &b.path,
		},
	}
}

// Path returns the configured file path
func (b *Bot) Path() string {
	return b.path
}

// Configure resolves the bot behavior: built-in defaults overridden by
// the TOML file when one is given.
func (b *Bot) Configure() (*domainConfig.Bot, error) {
	cfg := domainConfig.Default()
	if b.path == "" {
		return cfg, nil
	}

	file, err := LoadBotFile(b.path)
	if err != nil {
		return nil, err
	}

	file.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "bot config validation failed", goerr.V("path", b.path))
	}

	return cfg, nil
}

// Apply overlays the file values onto the resolved configuration
func (f *BotFile) Apply(cfg *domainConfig.Bot) {
	if len(f.IdentityPriority) > 0 {
		cfg.IdentityPriority = f.IdentityPriority
	}
	if len(f.QuoteKeywords) > 0 {
		cfg.QuoteKeywords = f.QuoteKeywords
	}
	if len(f.AfterSalesKeywords) > 0 {
		cfg.AfterSalesKeywords = f.AfterSalesKeywords
	}
	if f.PhoneMinDigits > 0 {
		cfg.PhoneMinDigits = f.PhoneMinDigits
	}
	if f.PhoneMaxDigits > 0 {
		cfg.PhoneMaxDigits = f.PhoneMaxDigits
	}
}

// LoadBotFile reads and parses the bot behavior TOML file
func LoadBotFile(path string) (*BotFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read bot config file", goerr.V("path", path))
	}

	var file BotFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse bot config TOML", goerr.V("path", path))
	}

	return &file, nil
}
