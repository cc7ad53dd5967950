package main

import (
	"errors"
	"fmt"

	"github.com/sandevgo/misemcp/internal/ui"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent tool calls from the audit log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		app := NewApp(ctx)
		defer app.Close()

		if app.Audit == nil {
			return errors.New("audit log is disabled, set MISE_MCP_AUDIT_DB to enable it")
		}

		entries, err := app.Audit.Recent(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to read audit log: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), ui.RenderHistory(entries))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show")
	rootCmd.AddCommand(historyCmd)
}
