// Package value holds the typed value model of a transition and the
// interpolation applied to it on every frame.
package value

import (
	"fmt"

	"github.com/matt-g-everett/valuetx/textcodec"
)

// Kind determines which interpolation and codec path a property uses. The
// set of kinds is closed; switch over it with a type switch.
type Kind interface {
	fmt.Stringer
	isKind()
}

// Integer is a whole number property.
type Integer struct {
	Min, Max int64
}

// Real is a floating point property.
type Real struct {
	Min, Max float64
	Decimals int
}

// Color is a packed nonlinear RGBA property.
type Color struct {
	Alpha bool
}

// TextNumeric is text holding a number under a Format.
type TextNumeric struct {
	Format textcodec.Format
}

// TextTyping is text animated character by character.
type TextTyping struct{}

func (Integer) isKind()     {}
func (Real) isKind()        {}
func (Color) isKind()       {}
func (TextNumeric) isKind() {}
func (TextTyping) isKind()  {}

func (k Integer) String() string { return fmt.Sprintf("int[%d,%d]", k.Min, k.Max) }
func (k Real) String() string    { return fmt.Sprintf("float[%g,%g]", k.Min, k.Max) }

func (k Color) String() string {
	if k.Alpha {
		return "color_alpha"
	}
	return "color"
}

func (k TextNumeric) String() string { return "text(" + k.Format.Type.String() + ")" }
func (TextTyping) String() string    { return "text(typing)" }
