package tween

import (
	"github.com/matt-g-everett/valuetx/textcodec"
	"github.com/matt-g-everett/valuetx/value"
)

// VolumeSetting names the pseudo-property that exposes an owner's gain as a
// percentage.
const VolumeSetting = "volume"

// Volume bounds in percent.
const (
	VolumeMin = 0.0
	VolumeMax = 100.0
)

// PropType is the type a property store reports for a property.
type PropType int

const (
	PropInvalid PropType = iota
	PropInt
	PropFloat
	PropColor
	PropColorAlpha
	PropText
	PropGroup
)

var propTypeNames = map[PropType]string{
	PropInt:        "int",
	PropFloat:      "float",
	PropColor:      "color",
	PropColorAlpha: "color_alpha",
	PropText:       "text",
	PropGroup:      "group",
}

func (p PropType) String() string {
	if s, ok := propTypeNames[p]; ok {
		return s
	}
	return "invalid"
}

// ParsePropType is the inverse of PropType.String.
func ParsePropType(s string) PropType {
	for p, name := range propTypeNames {
		if name == s {
			return p
		}
	}
	return PropInvalid
}

// Descriptor describes one property of an owner.
type Descriptor struct {
	Name     string
	Type     PropType
	Min, Max float64
	Decimals int
	Default  value.Value
	Hidden   bool
	// Children holds the members of a PropGroup.
	Children []Descriptor
}

// Store is the host's typed access to named properties on arbitrary owners.
// Describe reports false when the owner does not exist.
type Store interface {
	Describe(owner string) ([]Descriptor, bool)
	Get(owner, name string) (value.Value, bool)
	Set(owner, name string, v value.Value)
	Default(owner, name string) (value.Value, bool)
	SetDefault(owner, name string, v value.Value)
}

// GainStore is implemented by stores whose owners carry an audio gain in [0,1].
type GainStore interface {
	Gain(owner string) (float64, bool)
	SetGain(owner string, gain float64)
}

// Lookup finds name in descs, descending into groups.
func Lookup(descs []Descriptor, name string) (Descriptor, bool) {
	for _, d := range descs {
		if d.Type == PropGroup {
			if c, ok := Lookup(d.Children, name); ok {
				return c, true
			}
			continue
		}
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// KindOf maps a descriptor onto a value kind. typing selects character
// animation for text properties. Unsupported types give nil.
func KindOf(d Descriptor, format textcodec.Format, typing bool) value.Kind {
	switch d.Type {
	case PropInt:
		return value.Integer{Min: int64(d.Min), Max: int64(d.Max)}
	case PropFloat:
		return value.Real{Min: d.Min, Max: d.Max, Decimals: d.Decimals}
	case PropColor:
		return value.Color{}
	case PropColorAlpha:
		return value.Color{Alpha: true}
	case PropText:
		if typing {
			return value.TextTyping{}
		}
		return value.TextNumeric{Format: format.Normalize()}
	}
	return nil
}
