package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GameState:
		o.printGameState(v)
	case SubmitResult:
		o.printSubmitResult(v)
	case []RoundRecord:
		o.printHistory(v)
	case Pack:
		o.printPack(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Team response type (matches API)
type Team struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Score int    `json:"score"`
}

// BoardAnswer response type
type BoardAnswer struct {
	Revealed bool   `json:"revealed"`
	Text     string `json:"text,omitempty"`
	Points   int    `json:"points,omitempty"`
}

// Board response type
type Board struct {
	Question string        `json:"question"`
	Answers  []BoardAnswer `json:"answers"`
	Strikes  int           `json:"strikes"`
	Pot      int           `json:"pot"`
}

// GameState response type
type GameState struct {
	ID          string  `json:"id"`
	Phase       string  `json:"phase"`
	Teams       [2]Team `json:"teams"`
	ActiveTeam  int     `json:"active_team"`
	Board       *Board  `json:"board"`
	RoundWinner *int    `json:"round_winner,omitempty"`
	RoundEnded  bool    `json:"round_ended"`
}

// SubmitResult response type
type SubmitResult struct {
	Matched     bool    `json:"matched"`
	AnswerIndex int     `json:"answer_index"`
	Answer      string  `json:"answer,omitempty"`
	Points      int     `json:"points,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
	TimedOut    bool    `json:"timed_out,omitempty"`
	Strikes     int     `json:"strikes"`
	Phase       string  `json:"phase"`
	RoundEnded  bool    `json:"round_ended"`
}

// RoundRecord response type
type RoundRecord struct {
	Question string    `json:"question"`
	Revealed []bool    `json:"revealed"`
	Strikes  int       `json:"strikes"`
	Winner   *int      `json:"winner"`
	Points   int       `json:"points"`
	PlayedAt time.Time `json:"played_at"`
}

// Pack response type
type Pack struct {
	Name      string `json:"name"`
	Questions int    `json:"questions"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printGameState(g GameState) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Phase: %s\n", g.Phase)
	for i, team := range g.Teams {
		marker := " "
		if i == g.ActiveTeam {
			marker = "*"
		}
		fmt.Printf("%s %s (%s): %d points\n", marker, team.Name, team.Color, team.Score)
	}

	if g.Board != nil {
		fmt.Printf("\nQ: %s\n", g.Board.Question)
		for i, a := range g.Board.Answers {
			if a.Revealed {
				fmt.Printf("  %d. %s (%d)\n", i+1, a.Text, a.Points)
			} else {
				fmt.Printf("  %d. ???\n", i+1)
			}
		}
		fmt.Printf("Strikes: %d  Pot: %d\n", g.Board.Strikes, g.Board.Pot)
	}

	if g.RoundWinner != nil {
		fmt.Printf("Round winner: %s\n", g.Teams[*g.RoundWinner].Name)
	}
}

func (o *Output) printSubmitResult(r SubmitResult) {
	if r.Matched {
		fmt.Printf("Match! %s (%d points)\n", r.Answer, r.Points)
		if r.Confidence > 0 && r.Confidence < 1 {
			fmt.Printf("Confidence: %.2f\n", r.Confidence)
		}
	} else {
		fmt.Println("No match")
		if r.TimedOut {
			fmt.Println("(validator timed out)")
		}
	}
	fmt.Printf("Strikes: %d  Phase: %s\n", r.Strikes, r.Phase)
	if r.RoundEnded {
		fmt.Println("Round over")
	}
}

func (o *Output) printHistory(records []RoundRecord) {
	if len(records) == 0 {
		fmt.Println("No rounds played")
		return
	}
	for i, rec := range records {
		winner := "nobody"
		if rec.Winner != nil {
			winner = fmt.Sprintf("team %d", *rec.Winner+1)
		}
		revealed := 0
		for _, r := range rec.Revealed {
			if r {
				revealed++
			}
		}
		fmt.Printf("%d. %s\n", i+1, rec.Question)
		fmt.Printf("   %d/%d revealed, %d strikes, %d points to %s\n",
			revealed, len(rec.Revealed), rec.Strikes, rec.Points, winner)
	}
}

func (o *Output) printPack(p Pack) {
	fmt.Printf("Pack: %s\n", p.Name)
	fmt.Printf("Questions: %d\n", p.Questions)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
