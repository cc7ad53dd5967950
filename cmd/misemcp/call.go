package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var callArgs []string

var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke one tool and print its JSON response",
	Example: `  misemcp call task_ls --arg hidden=true
  misemcp call set_env --arg key=NODE_ENV --arg value=production`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		toolArgs, err := parseToolArgs(callArgs)
		if err != nil {
			return err
		}

		app := NewApp(ctx)
		defer app.Close()

		resp, err := app.Handlers.Call(ctx, args[0], toolArgs)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode response: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

// parseToolArgs turns key=value pairs into tool arguments. Values stay
// strings; the handlers convert them to the declared parameter types.
func parseToolArgs(pairs []string) (map[string]any, error) {
	args := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q, expected key=value", pair)
		}
		args[key] = value
	}
	return args, nil
}

func init() {
	callCmd.Flags().StringArrayVarP(&callArgs, "arg", "a", nil, "tool argument as key=value (repeatable)")
	rootCmd.AddCommand(callCmd)
}
