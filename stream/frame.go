package stream

import (
	"encoding/json"
	"time"

	"github.com/matt-g-everett/valuetx/value"
)

// Write is one property write made during a frame.
type Write struct {
	Owner string
	Name  string
	Value value.Value
}

// Frame collects the writes made by one tick of the streamer.
type Frame struct {
	Seq    uint64
	Time   time.Time
	Writes []Write
}

// NewFrame creates a new Frame instance.
func NewFrame(seq uint64, at time.Time, writes []Write) *Frame {
	return &Frame{Seq: seq, Time: at, Writes: writes}
}

// Empty reports whether the frame carries no writes.
func (f *Frame) Empty() bool {
	return len(f.Writes) == 0
}

type wireWrite struct {
	Owner string      `json:"owner"`
	Name  string      `json:"name"`
	Kind  string      `json:"kind"`
	Value interface{} `json:"value"`
}

type wireFrame struct {
	Seq    uint64      `json:"seq"`
	Time   time.Time   `json:"time"`
	Writes []wireWrite `json:"writes"`
}

// MarshalJSON encodes the frame as published over MQTT.
func (f *Frame) MarshalJSON() ([]byte, error) {
	out := wireFrame{Seq: f.Seq, Time: f.Time, Writes: make([]wireWrite, 0, len(f.Writes))}
	for _, w := range f.Writes {
		kind, raw := EncodeValue(w.Value)
		out.Writes = append(out.Writes, wireWrite{Owner: w.Owner, Name: w.Name, Kind: kind, Value: raw})
	}
	return json.Marshal(out)
}

// EncodeValue returns a type name and a JSON friendly form of v. Colors
// render as "#rrggbbaa".
func EncodeValue(v value.Value) (string, interface{}) {
	switch v := v.(type) {
	case value.Int:
		return "int", int64(v)
	case value.Float:
		return "float", float64(v)
	case value.RGBA:
		return "color", v.Hex()
	case value.Text:
		return "text", string(v)
	}
	return "none", nil
}
