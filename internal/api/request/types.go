package request

// StartGameRequest is the request body for starting a new game
type StartGameRequest struct {
	TeamA string `json:"team_a"`
	TeamB string `json:"team_b"`
}

// SubmitAnswerRequest is the request body for submitting a guess
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

// RevealRequest is the request body for a host reveal override
type RevealRequest struct {
	Index int `json:"index"`
}

// PackQuestion is one question in an uploaded pack
type PackQuestion struct {
	Question string       `json:"question"`
	Answers  []PackAnswer `json:"answers"`
}

// PackAnswer is one board answer in an uploaded pack
type PackAnswer struct {
	Text   string `json:"text"`
	Points int    `json:"points"`
}

// SetPackRequest is the request body for replacing the question pack
type SetPackRequest struct {
	Name      string         `json:"name"`
	Questions []PackQuestion `json:"questions"`
}
