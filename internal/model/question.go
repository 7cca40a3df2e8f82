package model

// Answer is one canonical answer on a question's board, with the point value
// it contributes to the round pot when revealed.
type Answer struct {
	Text   string `json:"text"`
	Points int    `json:"points"`
}

// Question is a prompt plus its ordered board of canonical answers.
// Answer order is significant: it is the index space used by reveal masks
// and match results. Questions are immutable once loaded.
type Question struct {
	Prompt  string   `json:"question"`
	Answers []Answer `json:"answers"`
}

// AnswerCount returns the number of canonical answers on the board.
func (q *Question) AnswerCount() int {
	return len(q.Answers)
}
