package typing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupCatCar(t *testing.T) {
	var a Animator
	a.Setup("cat", "car")
	assert.Equal(t, 2, a.Same)
	assert.Equal(t, 2, a.Total)
	assert.Equal(t, "cat", a.DisplayAt(0))
	assert.Equal(t, "ca", a.DisplayAt(1))
	assert.Equal(t, "car", a.DisplayAt(2))
}

func TestTotalSteps(t *testing.T) {
	tests := []struct {
		from, to    string
		same, total int
	}{
		{"", "hello", 0, 5},
		{"hello", "", 0, 5},
		{"hello", "help", 3, 3},
		{"same", "same", 4, 0},
		{"naïve", "naïveté", 5, 2},
	}
	for _, tt := range tests {
		var a Animator
		a.Setup(tt.from, tt.to)
		assert.Equal(t, tt.same, a.Same, "%q -> %q", tt.from, tt.to)
		assert.Equal(t, tt.total, a.Total, "%q -> %q", tt.from, tt.to)
	}
}

func TestBoundaries(t *testing.T) {
	var a Animator
	a.Setup("good morning", "good night")
	assert.Equal(t, "good morning", a.DisplayAt(a.StepAt(0)))
	assert.Equal(t, "good night", a.DisplayAt(a.StepAt(1)))
}

func TestAdvanceSuppressesUnchangedSteps(t *testing.T) {
	var a Animator
	a.Setup("cat", "car")

	_, write := a.Advance(0, true)
	assert.False(t, write)
	_, write = a.Advance(0.4, true)
	assert.False(t, write)

	text, write := a.Advance(0.5, true)
	require.True(t, write)
	assert.Equal(t, "ca", text)

	_, write = a.Advance(0.7, true)
	assert.False(t, write)

	text, write = a.Advance(1, false)
	require.True(t, write)
	assert.Equal(t, "car", text)
}

func TestAdvanceNeverGoesBackwards(t *testing.T) {
	var a Animator
	a.Setup("abcdef", "abxyz")

	text, write := a.Advance(0.6, true)
	require.True(t, write)
	assert.Equal(t, a.DisplayAt(a.StepAt(0.6)), text)

	text, write = a.Advance(0.2, true)
	assert.False(t, write)
	assert.Equal(t, a.DisplayAt(a.StepAt(0.6)), text)

	text, write = a.Advance(0.2, false)
	assert.True(t, write)
	assert.Equal(t, a.DisplayAt(a.StepAt(0.6)), text)
}

func TestLengthNonDecreasingWhileTyping(t *testing.T) {
	var a Animator
	a.Setup("old title", "old headline")
	deletes := len("old title") - a.Same
	prev := -1
	for i := 0; i <= 100; i++ {
		text, _ := a.Advance(float64(i)/100, true)
		if a.Last >= deletes {
			assert.GreaterOrEqual(t, len(text), prev)
			prev = len(text)
		}
	}
	text, _ := a.Advance(1, false)
	assert.Equal(t, "old headline", text)
}
