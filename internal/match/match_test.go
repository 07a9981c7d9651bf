package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Passenger", "Pasenger", 1},
		{"ÿes", "yes", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestNormalizeIdent(t *testing.T) {
	assert.Equal(t, "starship", NormalizeIdent("example.com/fleet.Star_Ship"))
	assert.Equal(t, "crewmap", NormalizeIdent("crew-map"))
	assert.Equal(t, "", NormalizeIdent(""))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("StarShip", "star_ship"), 1e-9)
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.Less(t, Similarity("Passenger", "Engine"), MinSimilarity)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"Passenger", "StarShip", "Engine", "Passengers"}

	assert.Equal(t, []string{"Passenger", "Passengers"}, Suggest("Pasenger", candidates, 0))
	assert.Equal(t, []string{"Passenger"}, Suggest("Pasenger", candidates, 1))
	assert.Empty(t, Suggest("Warehouse", candidates, 3))
	assert.Equal(t, []string{"Passengers"}, Suggest("Passenger", candidates, 3))
}
