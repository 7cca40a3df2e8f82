package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Question pack commands",
	}

	cmd.AddCommand(newPackGetCmd())
	cmd.AddCommand(newPackSetCmd())

	return cmd
}

func newPackGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the active question pack",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Pack

			if err := client.Get("/api/v1/pack", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPackSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <file>",
		Short: "Replace the question pack from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read pack file: %w", err)
			}

			var body any
			if err := json.Unmarshal(data, &body); err != nil {
				return fmt.Errorf("pack file is not valid JSON: %w", err)
			}

			var result Pack
			if err := client.Put("/api/v1/pack", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
