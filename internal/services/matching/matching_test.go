package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercases", "Watch TV", "watchtv"},
		{"strips punctuation", "don't!", "dont"},
		{"strips diacritics", "Café au Lait", "cafeaulait"},
		{"strips spanish accents", "Canción", "cancion"},
		{"keeps digits", "Route 66", "route66"},
		{"whitespace only", "   \t ", ""},
		{"symbols only", "!?$%", ""},
		{"mixed unicode", "Pokémon GO", "pokemongo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"", "Watch TV", "Café", "über-cool", "¡Hola, señor!", "123 abc"}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "normalize should be idempotent for %q", s)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"a", "b", 1},
		{"television", "televisions", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "distance(%q, %q)", tt.a, tt.b)
		assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a), "distance(%q, %q)", tt.b, tt.a)
	}
}

func TestLooselyMatches(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"empty never matches", "", "anything", false},
		{"both empty never match", "", "", false},
		{"exact", "a", "a", true},
		{"exact longer", "watchtv", "watchtv", true},
		{"substring containment", "phone", "checkphone", true},
		{"tv is subsequence of television", "tv", "television", true},
		{"two letter non subsequence", "vt", "television", false},
		{"three letter subsequence close edit", "tea", "team", true},
		{"three letter subsequence far edit", "aeo", "abcdefghijklmno", false},
		{"typo within tolerance", "excercise", "exercise", true},
		{"typo within tolerance 2", "chek", "check", true},
		{"unrelated words", "banana", "exercise", false},
		{"similar enough ratio", "readingbooks", "readingbook", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooselyMatches(tt.a, tt.b))
			assert.Equal(t, tt.want, LooselyMatches(tt.b, tt.a), "should be symmetric")
		})
	}
}
