// Package typing animates text by deleting back to the common prefix of two
// strings and then typing the rest of the destination.
package typing

import "math"

// Animator holds the per transition typing counters.
type Animator struct {
	from, to []rune

	// Same is the length of the common prefix of from and to.
	Same int
	// Total is the number of single character edits between from and to.
	Total int
	// Last is the furthest step displayed so far.
	Last int
}

// Setup prepares the counters for a transition from one text to another.
func (a *Animator) Setup(from, to string) {
	a.from, a.to = []rune(from), []rune(to)
	a.Same = 0
	for a.Same < len(a.from) && a.Same < len(a.to) && a.from[a.Same] == a.to[a.Same] {
		a.Same++
	}
	a.Total = (len(a.from) - a.Same) + (len(a.to) - a.Same)
	a.Last = 0
}

// From returns the source text.
func (a *Animator) From() string { return string(a.from) }

// To returns the destination text.
func (a *Animator) To() string { return string(a.to) }

// StepAt maps a progress fraction onto a step.
func (a *Animator) StepAt(t float64) int {
	step := int(math.Floor(t * float64(a.Total)))
	if step < 0 {
		return 0
	}
	if step > a.Total {
		return a.Total
	}
	return step
}

// DisplayAt renders the text shown at step.
func (a *Animator) DisplayAt(step int) string {
	deletes := len(a.from) - a.Same
	if step < deletes {
		return string(a.from[:len(a.from)-step])
	}
	n := a.Same + step - deletes
	if n > len(a.to) {
		n = len(a.to)
	}
	return string(a.to[:n])
}

// Advance moves the animation to t. Steps never go backwards. write is false
// when the step has not advanced and the transition is still moving, in which
// case the text has not changed since the last write.
func (a *Animator) Advance(t float64, moving bool) (text string, write bool) {
	step := a.StepAt(t)
	if step <= a.Last && moving {
		return a.DisplayAt(a.Last), false
	}
	if step > a.Last {
		a.Last = step
	}
	return a.DisplayAt(a.Last), true
}
