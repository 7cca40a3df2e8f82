package cli

import (
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Round history commands",
	}

	cmd.AddCommand(newHistoryGetCmd())
	cmd.AddCommand(newHistoryClearCmd())

	return cmd
}

func newHistoryGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "List completed rounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []RoundRecord

			if err := client.Get("/api/v1/game/history", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard the round history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/game/history"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("History cleared")
			return nil
		},
	}
}
