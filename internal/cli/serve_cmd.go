package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindmapdigital/projectflow/internal/config"
	"github.com/mindmapdigital/projectflow/internal/db"
	"github.com/mindmapdigital/projectflow/internal/importer"
	"github.com/mindmapdigital/projectflow/internal/intelligence"
	"github.com/mindmapdigital/projectflow/internal/llm"
	"github.com/mindmapdigital/projectflow/internal/logging"
	"github.com/mindmapdigital/projectflow/internal/repository"
	"github.com/mindmapdigital/projectflow/internal/server"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if err := cfg.ValidateForServe(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			log, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}

			database, err := db.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer database.Close()

			projects := repository.NewSQLiteProjectRepo(database)
			users := repository.NewSQLiteUserRepo(database)
			usage := repository.NewSQLiteUsageRepo(database)
			uow := db.NewSQLiteUnitOfWork(database)

			client := llm.NewChatClient(llm.Config{
				Endpoint:    cfg.LLM.Endpoint,
				APIKey:      cfg.LLM.APIKey,
				Model:       cfg.LLM.Model,
				Temperature: cfg.LLM.Temperature,
				TimeoutMs:   cfg.LLM.TimeoutMs,
				MaxRetries:  cfg.LLM.MaxRetries,
			}, llm.NewLogObserver(log))

			generation := intelligence.NewGenerationService(
				users, usage, client,
				importer.New(importer.WithLogger(log)),
				intelligence.Limits{
					PlanCredits:    cfg.Credits.Plans,
					DefaultCredits: cfg.Credits.Default,
					Whitelist:      cfg.Credits.Whitelist,
				},
				intelligence.WithLogger(log),
			)

			api := server.New(server.Config{
				JWTSecret:     cfg.Auth.JWTSecret,
				WebhookSecret: cfg.Auth.WebhookSecret,
			}, projects, users, usage, uow, generation, log)

			httpServer := &http.Server{
				Addr:         cfg.Listen,
				Handler:      api,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.WithField("listen", cfg.Listen).Info("http service starting")
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}
}
