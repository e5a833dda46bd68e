package value

import (
	"math"
	"strconv"
)

// Value is a property value as exchanged with a property store.
type Value interface {
	isValue()
}

// Int is an integer value.
type Int int64

// Float is a real value.
type Float float64

// RGBA is a packed color, red in the low byte: 0xAABBGGRR.
type RGBA uint32

// Text is a string value.
type Text string

func (Int) isValue()   {}
func (Float) isValue() {}
func (RGBA) isValue()  {}
func (Text) isValue()  {}

// AsFloat coerces v to a real number. Text is parsed as a plain decimal
// number and colors convert from their packed form.
func AsFloat(v Value) float64 {
	switch v := v.(type) {
	case Int:
		return float64(v)
	case Float:
		return float64(v)
	case RGBA:
		return float64(v)
	case Text:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// AsInt coerces v to an integer, rounding reals half away from zero.
func AsInt(v Value) int64 {
	switch v := v.(type) {
	case Int:
		return int64(v)
	case RGBA:
		return int64(v)
	}
	return int64(math.Round(AsFloat(v)))
}

// AsRGBA coerces v to a packed color.
func AsRGBA(v Value) RGBA {
	switch v := v.(type) {
	case RGBA:
		return v
	case nil:
		return 0
	}
	return RGBA(uint32(AsInt(v)))
}

// AsText returns the text of v, rendering numbers in their shortest form.
func AsText(v Value) string {
	switch v := v.(type) {
	case Text:
		return string(v)
	case Int:
		return strconv.FormatInt(int64(v), 10)
	case Float:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case RGBA:
		return strconv.FormatUint(uint64(v), 10)
	}
	return ""
}

// Coerce converts v into the representation used by kind k.
func Coerce(k Kind, v Value) Value {
	switch k.(type) {
	case Integer:
		return Int(AsInt(v))
	case Real, TextNumeric:
		return Float(AsFloat(v))
	case Color:
		return AsRGBA(v)
	case TextTyping:
		return Text(AsText(v))
	}
	return nil
}
