package pack

import "github.com/faceoffgame/faceoff/internal/model"

// DefaultPack returns the built-in starter pack, so the game is playable
// before any pack has been imported.
func DefaultPack() Pack {
	return Pack{
		Name: "Starter Pack",
		Questions: []model.Question{
			{
				Prompt: "Name something people do right before going to sleep",
				Answers: []model.Answer{
					{Text: "Watch TV", Points: 40},
					{Text: "Read", Points: 30},
					{Text: "Check phone", Points: 18},
					{Text: "Eat", Points: 8},
					{Text: "Exercise", Points: 4},
				},
			},
			{
				Prompt: "Name a place where it's hard to stay quiet",
				Answers: []model.Answer{
					{Text: "Library", Points: 35},
					{Text: "Church", Points: 28},
					{Text: "Movie theater", Points: 20},
					{Text: "Classroom", Points: 12},
					{Text: "Funeral", Points: 5},
				},
			},
			{
				Prompt: "Name something you'd hate to find in your sandwich",
				Answers: []model.Answer{
					{Text: "Hair", Points: 42},
					{Text: "Bug", Points: 33},
					{Text: "Mold", Points: 15},
					{Text: "Band-aid", Points: 10},
				},
			},
			{
				Prompt: "Name an animal that sleeps standing up",
				Answers: []model.Answer{
					{Text: "Horse", Points: 55},
					{Text: "Cow", Points: 25},
					{Text: "Flamingo", Points: 12},
					{Text: "Elephant", Points: 8},
				},
			},
			{
				Prompt: "Name something people forget when leaving the house",
				Answers: []model.Answer{
					{Text: "Keys", Points: 38},
					{Text: "Phone", Points: 30},
					{Text: "Wallet", Points: 20},
					{Text: "Umbrella", Points: 7},
					{Text: "Lunch", Points: 5},
				},
			},
		},
	}
}
