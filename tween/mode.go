package tween

import "github.com/matt-g-everett/valuetx/value"

// Mode decides how the target value of a transition is derived.
type Mode interface {
	isMode()
}

// SingleSetting moves to a configured literal.
type SingleSetting struct {
	Value value.Value
}

// SettingAdd moves by a delta from the current value.
type SettingAdd struct {
	Delta value.Value
}

// Random moves to a uniform draw between Min and Max.
type Random struct {
	Min, Max value.Value
}

// Typing deletes and retypes text until it reads Text.
type Typing struct {
	Text string
}

// BatchSettings moves every property of a list to its configured value.
type BatchSettings struct {
	List *BatchList
}

func (SingleSetting) isMode() {}
func (SettingAdd) isMode()    {}
func (Random) isMode()        {}
func (Typing) isMode()        {}
func (BatchSettings) isMode() {}
