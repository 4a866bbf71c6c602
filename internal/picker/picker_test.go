package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultSelection(t *testing.T) {
	s := New()
	assert.Equal(t, Trivia, s.Selected)
	assert.Equal(t, []string{"trivia", "math", "year"}, s.Options)
	assert.True(t, s.Valid())
}

func TestReduce_SelectEveryOption(t *testing.T) {
	for _, c := range DefaultOptions() {
		t.Run(c, func(t *testing.T) {
			got := Reduce(New(), SelectCategory{Category: c})
			assert.Equal(t, c, got.Selected)
			assert.Equal(t, DefaultOptions(), got.Options)
			assert.True(t, got.Valid())
		})
	}
}

func TestReduce_UnknownCategoryDoesNotPanic(t *testing.T) {
	got := Reduce(New(), SelectCategory{Category: "date"})
	assert.Equal(t, "date", got.Selected)
	assert.False(t, got.Valid())
	assert.Equal(t, DefaultOptions(), got.Options)
}

func TestOptionsAreNotShared(t *testing.T) {
	a := New()
	b := New()
	a.Options[0] = "mutated"

	assert.Equal(t, Trivia, b.Options[0])
	assert.Equal(t, Trivia, DefaultOptions()[0])
}

func TestNextPrev(t *testing.T) {
	s := New()
	assert.Equal(t, Math, s.Next())
	assert.Equal(t, Year, s.Prev())

	s = Reduce(s, SelectCategory{Category: Year})
	assert.Equal(t, Trivia, s.Next(), "next wraps to the first option")
	assert.Equal(t, Math, s.Prev())

	s = Reduce(s, SelectCategory{Category: "bogus"})
	assert.Equal(t, Trivia, s.Next(), "unknown selection recovers to the first option")

	empty := State{Selected: "x"}
	require.Empty(t, empty.Options)
	assert.Equal(t, "x", empty.Next())
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Trivia", Title("trivia"))
	assert.Equal(t, "Math", Title("MATH"))
	assert.Equal(t, "", Title(""))
}

func TestIsDefault(t *testing.T) {
	assert.True(t, IsDefault("year"))
	assert.False(t, IsDefault("date"))
}
