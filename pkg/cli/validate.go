package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/selec-labs/selecbot/pkg/cli/config"
	"github.com/selec-labs/selecbot/pkg/domain/model"
	"github.com/selec-labs/selecbot/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var botCfg config.Bot

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the bot behavior configuration file",
		Flags:   botCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if botCfg.Path() == "" {
				return goerr.New("bot-config is required for validation")
			}

			bot, err := botCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "bot configuration validation failed")
			}

			logger.Info("Bot configuration validation passed",
				"path", botCfg.Path(),
				"identity_priority", bot.IdentityPriority,
				"quote_keywords", bot.QuoteKeywords,
				"aftersales_keywords", bot.AfterSalesKeywords,
				"phone_min_digits", bot.PhoneMinDigits,
				"phone_max_digits", bot.PhoneMaxDigits,
			)

			for _, flow := range []*model.FlowSpec{model.QuoteFlow(), model.AfterSalesFlow()} {
				logger.Info("Flow declared",
					"kind", flow.Kind,
					"state", flow.State,
					"required_fields", flow.RequiredLabels(),
				)
			}

			return nil
		},
	}
}
