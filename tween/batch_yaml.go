package tween

import (
	"strings"

	"github.com/matt-g-everett/valuetx/value"
)

// batchRecord is the persisted form of a BatchEntry. Only the kind name is
// written, so a reloaded Integer or Real kind has zero bounds until
// ResolveBatch re-derives it from the owner's descriptor.
type batchRecord struct {
	Name string      `yaml:"name"`
	Kind string      `yaml:"kind"`
	From interface{} `yaml:"from"`
	To   interface{} `yaml:"to"`
}

func kindName(k value.Kind) string {
	switch k := k.(type) {
	case value.Integer:
		return PropInt.String()
	case value.Real:
		return PropFloat.String()
	case value.Color:
		if k.Alpha {
			return PropColorAlpha.String()
		}
		return PropColor.String()
	}
	return ""
}

func kindFromName(s string) value.Kind {
	return batchKind(Descriptor{Type: ParsePropType(s)})
}

func encodeValue(v value.Value) interface{} {
	switch v := v.(type) {
	case value.Int:
		return int64(v)
	case value.Float:
		return float64(v)
	case value.RGBA:
		return uint32(v)
	case value.Text:
		return string(v)
	}
	return nil
}

func decodeValue(k value.Kind, raw interface{}) value.Value {
	var v value.Value
	switch raw := raw.(type) {
	case int:
		v = value.Int(raw)
	case int64:
		v = value.Int(raw)
	case uint64:
		v = value.RGBA(uint32(raw))
	case float64:
		v = value.Float(raw)
	case string:
		if _, ok := k.(value.Color); ok && strings.HasPrefix(raw, "#") {
			c, err := value.ParseHex(raw)
			if err != nil {
				return nil
			}
			return c
		}
		v = value.Text(raw)
	default:
		return nil
	}
	if k != nil {
		return value.Coerce(k, v)
	}
	return v
}

// MarshalYAML writes the list as an ordered sequence of records.
func (l BatchList) MarshalYAML() (interface{}, error) {
	records := make([]batchRecord, 0, len(l.entries))
	for _, e := range l.entries {
		records = append(records, batchRecord{
			Name: e.Name,
			Kind: kindName(e.Kind),
			From: encodeValue(e.From),
			To:   encodeValue(e.To),
		})
	}
	return records, nil
}

// UnmarshalYAML reads a sequence of records. Duplicate names keep the last.
func (l *BatchList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var records []batchRecord
	if err := unmarshal(&records); err != nil {
		return err
	}
	l.entries = nil
	for _, r := range records {
		k := kindFromName(r.Kind)
		l.Put(BatchEntry{
			Name: r.Name,
			Kind: k,
			From: decodeValue(k, r.From),
			To:   decodeValue(k, r.To),
		})
	}
	return nil
}
