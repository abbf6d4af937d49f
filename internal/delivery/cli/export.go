package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

type ExportCmd struct {
	migrations fs.FS
	out        string
	sheets     bool
}

func NewExportCmd(migrations fs.FS) *ExportCmd {
	return &ExportCmd{migrations: migrations}
}

func (c *ExportCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current leaderboard and records to Excel or Google Sheets",
		RunE: withApp(c.migrations, func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if c.out == "" && !c.sheets {
				return fmt.Errorf("nothing to do: pass --out and/or --sheets")
			}

			if c.out != "" {
				data, err := app.Services.Export.GetExcelReport(ctx)
				if err != nil {
					return err
				}
				if err := os.WriteFile(c.out, data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", c.out, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", c.out, len(data))
			}

			if c.sheets {
				url, err := app.Services.Export.SyncToGoogleSheet(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "sheet updated: %s\n", url)
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&c.out, "out", "o", "", "write an .xlsx file to this path")
	cmd.Flags().BoolVar(&c.sheets, "sheets", false, "sync to Google Sheets (needs GOOGLE_CREDENTIALS_FILE)")
	return cmd
}
