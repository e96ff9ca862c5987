package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/selec-labs/selecbot/pkg/cli/config"
	httpctrl "github.com/selec-labs/selecbot/pkg/controller/http"
	"github.com/selec-labs/selecbot/pkg/usecase"
	"github.com/selec-labs/selecbot/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var webhookSecret string
	var botCfg config.Bot
	var repoCfg config.Repository
	var zohoCfg config.Zoho

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("SELECBOT_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "webhook-secret",
			Usage:       "Shared secret required in the X-Webhook-Secret header of webhook calls (empty disables the check)",
			Sources:     cli.EnvVars("SELECBOT_WEBHOOK_SECRET"),
			Destination: &webhookSecret,
		},
	}

	// Add shared config flags
	flags = append(flags, botCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, zohoCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			bot, err := botCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load bot configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{
				usecase.WithBotConfig(bot),
			}

			if zohoCfg.IsConfigured() {
				crm, err := zohoCfg.Configure()
				if err != nil {
					return goerr.Wrap(err, "failed to initialize CRM client")
				}
				ucOpts = append(ucOpts, usecase.WithCRM(crm))
				logging.Default().Info("CRM collaborator enabled", "zoho", zohoCfg)
			} else {
				logging.Default().Info("CRM not configured, submissions are archived locally only")
			}

			uc := usecase.New(repo, ucOpts...)

			var httpOpts []httpctrl.Options
			if webhookSecret != "" {
				httpOpts = append(httpOpts, httpctrl.WithWebhookSecret(webhookSecret))
				logging.Default().Info("Webhook shared-secret check enabled")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Shut down on SIGINT/SIGTERM, draining in-flight requests
			sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(sigCtx)

			g.Go(func() error {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return goerr.Wrap(err, "failed to start server")
				}
				return nil
			})

			g.Go(func() error {
				<-gctx.Done()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				return nil
			})

			if err := g.Wait(); err != nil {
				return err
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
