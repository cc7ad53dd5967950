package main

import (
	"fmt"

	"github.com/sandevgo/misemcp/internal/mise"
	"github.com/sandevgo/misemcp/internal/scrape"
	"github.com/sandevgo/misemcp/internal/tools"
	"github.com/sandevgo/misemcp/internal/ui"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools exposed by the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handlers := tools.NewHandlers(mise.NewExecutor(), scrape.NewTextDecoder())
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderTools(handlers.Definitions()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
