// Package config loads the daemon configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/matt-g-everett/valuetx/progress"
	"github.com/matt-g-everett/valuetx/store"
	"github.com/matt-g-everett/valuetx/textcodec"
	"github.com/matt-g-everett/valuetx/tween"
	"github.com/matt-g-everett/valuetx/value"
)

var (
	// ErrUnknownMode is returned for a transition mode that does not exist.
	ErrUnknownMode = errors.New("unknown transition mode")
	// ErrUnknownKind is returned for a property type that does not exist.
	ErrUnknownKind = errors.New("unknown property type")
	// ErrUnknownEasing is returned for an easing curve that does not exist.
	ErrUnknownEasing = errors.New("unknown easing")
	// ErrMissingField is returned when a mode lacks the fields it needs.
	ErrMissingField = errors.New("missing field")
	// ErrDuplicate is returned when two transitions or targets share a name.
	ErrDuplicate = errors.New("duplicate name")
)

// Defaults applied to fields left empty.
const (
	DefaultFrameRate = 30.0
	DefaultListen    = ":3000"
	DefaultClientID  = "valuetx"
	DefaultLogLevel  = "info"
)

// Mode names accepted in transitions.
const (
	ModeSingle = "single"
	ModeAdd    = "add"
	ModeRandom = "random"
	ModeTyping = "typing"
	ModeBatch  = "batch"
)

// Config is the daemon configuration.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientId"`
		Topics   struct {
			Writes string `yaml:"writes"`
			Start  string `yaml:"start"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	HTTP struct {
		Listen string `yaml:"listen"`
	} `yaml:"http"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	FrameRate   float64      `yaml:"frameRate"`
	Targets     []Target     `yaml:"targets"`
	Transitions []Transition `yaml:"transitions"`
}

// Target seeds one owner of the property store.
type Target struct {
	Name       string     `yaml:"name"`
	Gain       *float64   `yaml:"gain,omitempty"`
	Properties []Property `yaml:"properties"`
}

// Property describes one property of a target.
type Property struct {
	Name     string      `yaml:"name"`
	Type     string      `yaml:"type"`
	Value    interface{} `yaml:"value,omitempty"`
	Default  interface{} `yaml:"default,omitempty"`
	Min      float64     `yaml:"min,omitempty"`
	Max      float64     `yaml:"max,omitempty"`
	Decimals int         `yaml:"decimals,omitempty"`
	Hidden   bool        `yaml:"hidden,omitempty"`
	Children []Property  `yaml:"children,omitempty"`
}

// Transition configures one named engine.
type Transition struct {
	Name     string           `yaml:"name"`
	Owner    string           `yaml:"owner"`
	Sibling  string           `yaml:"sibling,omitempty"`
	Self     string           `yaml:"self,omitempty"`
	Property string           `yaml:"property,omitempty"`
	Mode     string           `yaml:"mode"`
	Value    interface{}      `yaml:"value,omitempty"`
	Delta    interface{}      `yaml:"delta,omitempty"`
	Min      interface{}      `yaml:"min,omitempty"`
	Max      interface{}      `yaml:"max,omitempty"`
	Text     string           `yaml:"text,omitempty"`
	Format   textcodec.Format `yaml:"format,omitempty"`
	Duration time.Duration    `yaml:"duration,omitempty"`
	Easing   string           `yaml:"easing,omitempty"`
	Batch    *tween.BatchList `yaml:"batch,omitempty"`
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes and validates a YAML configuration.
func Read(r io.Reader) (*Config, error) {
	c := new(Config)
	decoder := yaml.NewDecoder(r)
	decoder.SetStrict(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.FrameRate <= 0 {
		c.FrameRate = DefaultFrameRate
	}
	if c.HTTP.Listen == "" {
		c.HTTP.Listen = DefaultListen
	}
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = DefaultClientID
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	for i := range c.Transitions {
		t := &c.Transitions[i]
		if t.Duration == 0 {
			t.Duration = progress.DefaultDuration
		}
		t.Format = t.Format.Normalize()
	}
}

// Validate checks names, modes, property types and easings.
func (c *Config) Validate() error {
	targets := make(map[string]bool)
	for _, t := range c.Targets {
		if targets[t.Name] {
			return fmt.Errorf("target %q: %w", t.Name, ErrDuplicate)
		}
		targets[t.Name] = true
		if _, err := t.Descriptors(); err != nil {
			return fmt.Errorf("target %q: %w", t.Name, err)
		}
	}
	names := make(map[string]bool)
	for _, t := range c.Transitions {
		if t.Name == "" {
			return fmt.Errorf("transition without a name: %w", ErrMissingField)
		}
		if names[t.Name] {
			return fmt.Errorf("transition %q: %w", t.Name, ErrDuplicate)
		}
		names[t.Name] = true
		if _, err := t.BuildMode(); err != nil {
			return fmt.Errorf("transition %q: %w", t.Name, err)
		}
		if _, err := t.EasingFunc(); err != nil {
			return fmt.Errorf("transition %q: %w", t.Name, err)
		}
	}
	return nil
}

// Transition finds a transition by name.
func (c *Config) Transition(name string) (Transition, bool) {
	for _, t := range c.Transitions {
		if t.Name == name {
			return t, true
		}
	}
	return Transition{}, false
}

// NewStore builds an in-memory property store seeded with the targets.
func (c *Config) NewStore() (*store.Memory, error) {
	m := store.NewMemory()
	for _, t := range c.Targets {
		descs, err := t.Descriptors()
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", t.Name, err)
		}
		m.AddOwner(t.Name, descs)
		if err := t.seedValues(m, t.Properties); err != nil {
			return nil, fmt.Errorf("target %q: %w", t.Name, err)
		}
		if t.Gain != nil {
			m.SetGain(t.Name, *t.Gain)
		}
	}
	return m, nil
}

func (t Target) seedValues(m *store.Memory, props []Property) error {
	for _, p := range props {
		if len(p.Children) > 0 {
			if err := t.seedValues(m, p.Children); err != nil {
				return err
			}
			continue
		}
		if p.Value == nil {
			continue
		}
		typ := tween.ParsePropType(p.Type)
		v, err := propValue(typ, p.Value)
		if err != nil {
			return fmt.Errorf("property %q: %w", p.Name, err)
		}
		m.Set(t.Name, p.Name, v)
	}
	return nil
}

// Descriptors converts the configured properties into store descriptors.
func (t Target) Descriptors() ([]tween.Descriptor, error) {
	return descriptors(t.Properties)
}

func descriptors(props []Property) ([]tween.Descriptor, error) {
	descs := make([]tween.Descriptor, 0, len(props))
	for _, p := range props {
		typ := tween.ParsePropType(p.Type)
		if typ == tween.PropInvalid {
			return nil, fmt.Errorf("property %q type %q: %w", p.Name, p.Type, ErrUnknownKind)
		}
		d := tween.Descriptor{
			Name:     p.Name,
			Type:     typ,
			Min:      p.Min,
			Max:      p.Max,
			Decimals: p.Decimals,
			Hidden:   p.Hidden,
		}
		if typ == tween.PropGroup {
			children, err := descriptors(p.Children)
			if err != nil {
				return nil, err
			}
			d.Children = children
		} else if p.Default != nil {
			v, err := propValue(typ, p.Default)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", p.Name, err)
			}
			d.Default = v
		}
		descs = append(descs, d)
	}
	return descs, nil
}

// propValue converts a YAML scalar into the value type of a property.
func propValue(typ tween.PropType, raw interface{}) (value.Value, error) {
	v, err := ParseValue(raw)
	if err != nil {
		return nil, err
	}
	switch typ {
	case tween.PropInt:
		return value.Int(value.AsInt(v)), nil
	case tween.PropFloat:
		return value.Float(value.AsFloat(v)), nil
	case tween.PropColor, tween.PropColorAlpha:
		return value.AsRGBA(v), nil
	case tween.PropText:
		return value.Text(value.AsText(v)), nil
	}
	return v, nil
}

// ParseValue converts a YAML scalar into a value. Strings starting with '#'
// are hex colors.
func ParseValue(raw interface{}) (value.Value, error) {
	switch raw := raw.(type) {
	case nil:
		return nil, nil
	case int:
		return value.Int(raw), nil
	case int64:
		return value.Int(raw), nil
	case uint64:
		return value.Int(int64(raw)), nil
	case float64:
		return value.Float(raw), nil
	case bool:
		if raw {
			return value.Int(1), nil
		}
		return value.Int(0), nil
	case string:
		if strings.HasPrefix(raw, "#") {
			c, err := value.ParseHex(raw)
			if err != nil {
				return nil, fmt.Errorf("color %q: %w", raw, err)
			}
			return c, nil
		}
		return value.Text(raw), nil
	}
	return nil, fmt.Errorf("unsupported value %v (%T)", raw, raw)
}

// BuildMode converts the mode fields into a tween mode.
func (t Transition) BuildMode() (tween.Mode, error) {
	switch strings.ToLower(t.Mode) {
	case ModeSingle:
		v, err := t.required("value", t.Value)
		if err != nil {
			return nil, err
		}
		return tween.SingleSetting{Value: v}, nil
	case ModeAdd:
		v, err := t.required("delta", t.Delta)
		if err != nil {
			return nil, err
		}
		return tween.SettingAdd{Delta: v}, nil
	case ModeRandom:
		lo, err := t.required("min", t.Min)
		if err != nil {
			return nil, err
		}
		hi, err := t.required("max", t.Max)
		if err != nil {
			return nil, err
		}
		return tween.Random{Min: lo, Max: hi}, nil
	case ModeTyping:
		return tween.Typing{Text: t.Text}, nil
	case ModeBatch:
		list := t.Batch
		if list == nil {
			list = tween.NewBatchList()
		}
		return tween.BatchSettings{List: list}, nil
	}
	return nil, fmt.Errorf("%q: %w", t.Mode, ErrUnknownMode)
}

func (t Transition) required(field string, raw interface{}) (value.Value, error) {
	if raw == nil {
		return nil, fmt.Errorf("%s mode needs %s: %w", t.Mode, field, ErrMissingField)
	}
	return ParseValue(raw)
}

// EasingFunc returns the configured easing curve.
func (t Transition) EasingFunc() (progress.Easing, error) {
	e, ok := progress.EasingByName(t.Easing)
	if !ok {
		return nil, fmt.Errorf("%q: %w", t.Easing, ErrUnknownEasing)
	}
	return e, nil
}
