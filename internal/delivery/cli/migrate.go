package cli

import (
	"fmt"
	"io/fs"

	"riftstats/internal/repository"

	"github.com/spf13/cobra"
)

// MigrateCmd only needs the database, so it skips the tracking config.
type MigrateCmd struct {
	migrations fs.FS
	down       int
}

func NewMigrateCmd(migrations fs.FS) *MigrateCmd {
	return &MigrateCmd{migrations: migrations}
}

func (c *MigrateCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations, or roll back with --down",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}

			db, err := repository.NewPostgresDB(&cfg.Repo)
			if err != nil {
				log.Error("failed to init db: %v", err)
				return err
			}
			defer db.Close()

			if c.down > 0 {
				err = repository.RollbackMigrations(db, c.migrations, c.down)
			} else {
				err = repository.RunMigrations(db, c.migrations)
			}
			if err != nil {
				log.Error("migration failed: %v", err)
				return err
			}

			version, dirty, err := repository.MigrationVersion(db, c.migrations)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty=%t)\n", version, dirty)
			return nil
		},
	}
	cmd.Flags().IntVar(&c.down, "down", 0, "roll back this many migrations")
	return cmd
}
