package model

// TeamIndex identifies one of the two teams in a game (0 or 1).
type TeamIndex int

const (
	TeamA TeamIndex = 0
	TeamB TeamIndex = 1
)

// Valid reports whether the index refers to one of the two teams.
func (t TeamIndex) Valid() bool {
	return t == TeamA || t == TeamB
}

// Other returns the opposing team's index.
func (t TeamIndex) Other() TeamIndex {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// Team is one of the two competing teams. Color is a display token for the
// UI and carries no gameplay meaning.
type Team struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Score int    `json:"score"`
}
