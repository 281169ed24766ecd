package locality

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSantaCatarina(t *testing.T) {
	g := SantaCatarina()
	assert.Equal(t, 295, g.Len())

	for _, name := range g.All() {
		assert.GreaterOrEqual(t, utf8.RuneCountInString(name), 2, name)
	}

	assert.True(t, g.Contains("Palhoça"))
	assert.True(t, g.Contains("Itá"))
	assert.False(t, g.Contains("palhoca"), "Contains is spelling-exact")
	assert.False(t, g.Contains("Porto Alegre"))
}

func TestGazetteer_AllReturnsCopy(t *testing.T) {
	g := SantaCatarina()
	all := g.All()
	all[0] = "changed"
	assert.Equal(t, "Abdon Batista", g.All()[0])
}

func TestNewGazetteer_Rejects(t *testing.T) {
	_, err := NewGazetteer([]string{"Lages", "X"})
	require.Error(t, err)

	_, err = NewGazetteer([]string{"Lages", "LAGES"})
	require.Error(t, err)

	g, err := NewGazetteer([]string{"Lages", "Laguna"})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
}

func TestDefaultEquivalences_PointIntoGazetteer(t *testing.T) {
	g := SantaCatarina()
	eq := DefaultEquivalences()
	require.NoError(t, eq.Validate(g))
	for k, v := range eq {
		assert.Equal(t, Fold(k), k)
		assert.True(t, g.Contains(v), "%q -> %q", k, v)
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Palhoça", "palhoca"},
		{"SÃO JOSÉ", "sao jose"},
		{"Lauro Müller", "lauro muller"},
		{"Herval d'Oeste", "herval d'oeste"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.input), tt.input)
	}
}
