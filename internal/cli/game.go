package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameAnswerCmd())
	cmd.AddCommand(newGameStealCmd())
	cmd.AddCommand(newGameRevealCmd())
	cmd.AddCommand(newGameStrikeCmd())
	cmd.AddCommand(newGameAdvanceCmd())
	cmd.AddCommand(newGameEndCmd())
	cmd.AddCommand(newGameResetCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <team-a> <team-b>",
		Short: "Start a new game with two teams",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"team_a": args[0], "team_b": args[1]}
			var result GameState

			if err := client.Post("/api/v1/game", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Get current game state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Get("/api/v1/game", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAnswerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "answer <guess>",
		Short: "Submit the active team's guess",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"answer": strings.Join(args, " ")}
			var result SubmitResult

			if err := client.Post("/api/v1/game/answers", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "steal <guess>",
		Short: "Submit the stealing team's guess",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"answer": strings.Join(args, " ")}
			var result SubmitResult

			if err := client.Post("/api/v1/game/steal", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRevealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <index>",
		Short: "Reveal a board answer directly (host override)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index: %w", err)
			}

			req := map[string]int{"index": idx}
			var result GameState

			if err := client.Post("/api/v1/game/reveal", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStrikeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strike",
		Short: "Record a strike directly (host override)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post("/api/v1/game/strikes", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAdvanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advance",
		Short: "Advance to the next question",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post("/api/v1/game/advance", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the game and show final scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post("/api/v1/game/end", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Wipe the stored game state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/game"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game state reset")
			return nil
		},
	}
}
