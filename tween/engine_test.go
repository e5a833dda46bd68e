package tween_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/valuetx/store"
	"github.com/matt-g-everett/valuetx/tween"
	"github.com/matt-g-everett/valuetx/value"
)

func get(t *testing.T, m *store.Memory, owner, name string) value.Value {
	t.Helper()
	v, ok := m.Get(owner, name)
	require.True(t, ok, "%s.%s", owner, name)
	return v
}

func TestEngineStartTickFinish(t *testing.T) {
	m := newStore()
	e := tween.NewEngine(m, "scene", "count", tween.SingleSetting{Value: value.Int(20)})

	require.True(t, e.Start())
	assert.True(t, e.Active())

	assert.Equal(t, 1, e.Tick(0.5, true))
	assert.Equal(t, value.Int(15), get(t, m, "scene", "count"))

	assert.Equal(t, 1, e.Tick(1, false))
	assert.Equal(t, value.Int(20), get(t, m, "scene", "count"))
	assert.False(t, e.Active())
	assert.Nil(t, e.State())

	assert.Equal(t, 0, e.Tick(0.5, true))
	assert.Equal(t, value.Int(20), get(t, m, "scene", "count"))
}

func TestEngineStopKeepsLastValue(t *testing.T) {
	m := newStore()
	e := tween.NewEngine(m, "scene", "count", tween.SingleSetting{Value: value.Int(20)})
	require.True(t, e.Start())
	e.Tick(0.3, true)
	e.Stop()

	assert.Equal(t, value.Int(13), get(t, m, "scene", "count"))
	assert.Equal(t, 0, e.Tick(1, false))
	assert.Equal(t, value.Int(13), get(t, m, "scene", "count"))
}

func TestEngineMissingOwnerIsNoop(t *testing.T) {
	m := newStore()
	e := tween.NewEngine(m, "nowhere", "count", tween.SingleSetting{Value: value.Int(20)})
	assert.False(t, e.Start())
	assert.False(t, e.Active())
	assert.Nil(t, e.State())
}

func TestEngineMissingPropertyNeverWrites(t *testing.T) {
	m := newStore()
	e := tween.NewEngine(m, "scene", "vanished", tween.SingleSetting{Value: value.Int(20)})
	require.True(t, e.Start())
	assert.Equal(t, 0, e.Tick(0.5, true))
	assert.Equal(t, 0, e.Tick(1, false))
	_, ok := m.Get("scene", "vanished")
	assert.False(t, ok)
}

func TestEngineSibling(t *testing.T) {
	m := newStore()
	m.AddOwner("filter", []tween.Descriptor{{Name: "count", Type: tween.PropInt, Default: value.Int(0)}})

	e := tween.NewEngine(m, "scene", "count", tween.SingleSetting{Value: value.Int(8)}, tween.WithSibling("ghost"))
	assert.False(t, e.Start(), "named sibling that does not exist")

	e.Retarget("filter")
	require.True(t, e.Start())
	e.Tick(1, false)
	assert.Equal(t, value.Int(8), get(t, m, "filter", "count"))
	assert.Equal(t, value.Int(10), get(t, m, "scene", "count"))

	e.Retarget("")
	owner, ok := e.Owner()
	require.True(t, ok)
	assert.Equal(t, "scene", owner)
}

func TestEngineFollowsRename(t *testing.T) {
	m := newStore()
	m.AddOwner("filter", []tween.Descriptor{{Name: "count", Type: tween.PropInt, Default: value.Int(0)}})
	e := tween.NewEngine(m, "scene", "count", tween.SingleSetting{Value: value.Int(10)}, tween.WithSibling("filter"))
	require.True(t, e.Start())
	e.Tick(0.2, true)

	require.True(t, m.RenameOwner("filter", "renamed"))
	e.OwnerRenamed("filter", "renamed")
	e.Tick(1, false)
	assert.Equal(t, value.Int(10), get(t, m, "renamed", "count"))
}

func TestEngineOwnerRemovedStops(t *testing.T) {
	m := newStore()
	e := tween.NewEngine(m, "scene", "count", tween.SingleSetting{Value: value.Int(20)})
	require.True(t, e.Start())
	e.OwnerRemoved("elsewhere")
	assert.True(t, e.Active())
	e.OwnerRemoved("scene")
	assert.False(t, e.Active())
}

func TestEngineTypingSuppressesRedundantWrites(t *testing.T) {
	m := newStore()
	e := tween.NewEngine(m, "scene", "caption", tween.Typing{Text: "car"})
	require.True(t, e.Start())

	assert.Equal(t, 0, e.Tick(0, true))
	assert.Equal(t, 0, e.Tick(0.25, true))
	assert.Equal(t, 1, e.Tick(0.5, true))
	assert.Equal(t, value.Text("ca"), get(t, m, "scene", "caption"))
	assert.Equal(t, 0, e.Tick(0.75, true))
	assert.Equal(t, 1, e.Tick(1, false))
	assert.Equal(t, value.Text("car"), get(t, m, "scene", "caption"))
}

func TestEngineVolumeWritesGain(t *testing.T) {
	m := newStore()
	m.SetGain("scene", 0.2)
	e := tween.NewEngine(m, "scene", tween.VolumeSetting, tween.SettingAdd{Delta: value.Float(30)})
	require.True(t, e.Start())
	e.Tick(1, false)

	g, ok := m.Gain("scene")
	require.True(t, ok)
	assert.InDelta(t, 0.5, g, 1e-12)
	_, ok = m.Get("scene", tween.VolumeSetting)
	assert.False(t, ok)
}

func TestEngineRandomIsDeterministicWithInjectedRand(t *testing.T) {
	run := func() value.Value {
		m := newStore()
		e := tween.NewEngine(m, "scene", "count",
			tween.Random{Min: value.Int(0), Max: value.Int(100)},
			tween.WithRand(rand.New(rand.NewSource(99))))
		require.True(t, e.Start())
		e.Tick(1, false)
		return get(t, m, "scene", "count")
	}
	assert.Equal(t, run(), run())
}

func TestEngineCaptureValue(t *testing.T) {
	m := newStore()
	m.Set("scene", "count", value.Int(42))

	e := tween.NewEngine(m, "scene", "count", tween.SingleSetting{Value: value.Int(0)})
	require.True(t, e.CaptureValue())
	assert.Equal(t, tween.SingleSetting{Value: value.Int(42)}, e.Mode())

	e.SetMode(tween.Random{})
	require.True(t, e.CaptureValue())
	assert.Equal(t, tween.Random{Min: value.Int(42), Max: value.Int(42)}, e.Mode())

	e.SetProperty("caption")
	e.SetMode(tween.Typing{})
	require.True(t, e.CaptureValue())
	assert.Equal(t, tween.Typing{Text: "cat"}, e.Mode())

	e.SetMode(tween.SettingAdd{})
	assert.False(t, e.CaptureValue())
}
