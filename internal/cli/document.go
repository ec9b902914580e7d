package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mindmapdigital/projectflow/internal/autosave"
	"github.com/mindmapdigital/projectflow/internal/config"
	"github.com/mindmapdigital/projectflow/internal/db"
	"github.com/mindmapdigital/projectflow/internal/domain"
	"github.com/mindmapdigital/projectflow/internal/export"
	"github.com/mindmapdigital/projectflow/internal/repository"
)

// localExternalID identifies the implicit account owning documents created
// from the command line.
const localExternalID = "local"

func writeDocument(cmd *cobra.Command, p *domain.Project, outPath string) error {
	data, err := export.Document(p)
	if err != nil {
		return err
	}
	if outPath != "" {
		return os.WriteFile(outPath, append(data, '\n'), 0o644)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func storeProject(cmd *cobra.Command, configPath string, p *domain.Project) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	ctx := context.Background()
	users := repository.NewSQLiteUserRepo(database)
	owner, err := users.GetByExternalID(ctx, localExternalID)
	if errors.Is(err, repository.ErrNotFound) {
		now := time.Now().UTC()
		owner = &domain.User{
			ID:                 uuid.NewString(),
			ExternalID:         localExternalID,
			Email:              "local@projectflow",
			SubscriptionStatus: domain.SubscriptionActive,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := users.Create(ctx, owner); err != nil {
			return fmt.Errorf("creating local user: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("loading local user: %w", err)
	}

	// One-shot write through the same deferred-save path the editing
	// surface uses, flushed on close.
	saver := autosave.New(repository.NewSQLiteProjectRepo(database), owner.ID)
	saver.Notify(p)
	if err := saver.Close(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored project %s (%s)\n", p.Name, p.ID)
	return nil
}
