package value

import (
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Channels is a color split into normalized channels in [0,1]. Whether the
// RGB channels are gamma encoded or linear depends on where it came from.
type Channels struct {
	R, G, B, A float64
}

// Unpack splits a packed color into its nonlinear channels.
func Unpack(c RGBA) Channels {
	return Channels{
		R: float64(c&0xff) / 255.0,
		G: float64(c>>8&0xff) / 255.0,
		B: float64(c>>16&0xff) / 255.0,
		A: float64(c>>24&0xff) / 255.0,
	}
}

// Pack clamps nonlinear channels and packs them, rounding to nearest.
func (ch Channels) Pack() RGBA {
	r, g, b := colorful.Color{R: ch.R, G: ch.G, B: ch.B}.Clamped().RGB255()
	return RGBA(uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(channel255(ch.A))<<24)
}

// Add sums two channel sets component-wise.
func (ch Channels) Add(o Channels) Channels {
	return Channels{R: ch.R + o.R, G: ch.G + o.G, B: ch.B + o.B, A: ch.A + o.A}
}

// ToLinear converts gamma encoded RGB to linear light. Alpha is unchanged.
func (ch Channels) ToLinear() Channels {
	r, g, b := colorful.Color{R: ch.R, G: ch.G, B: ch.B}.LinearRgb()
	return Channels{R: r, G: g, B: b, A: ch.A}
}

// ToNonlinear converts linear RGB back to gamma encoded. Alpha is unchanged.
func (ch Channels) ToNonlinear() Channels {
	c := colorful.LinearRgb(ch.R, ch.G, ch.B)
	return Channels{R: c.R, G: c.G, B: c.B, A: ch.A}
}

// Linearize unpacks c straight into linear channels.
func Linearize(c RGBA) Channels {
	return Unpack(c).ToLinear()
}

// ParseHex reads "#rgb", "#rrggbb" or "#rrggbbaa". Alpha defaults to opaque.
func ParseHex(s string) (RGBA, error) {
	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("color alpha %q: %w", s, err)
		}
		alpha = float64(a) / 255.0
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, err
	}
	return Channels{R: c.R, G: c.G, B: c.B, A: alpha}.Pack(), nil
}

// Hex renders c as "#rrggbbaa".
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", uint8(c), uint8(c>>8), uint8(c>>16), uint8(c>>24))
}

func channel255(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255.0 + 0.5)
}
