package tween_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/valuetx/logging"
	"github.com/matt-g-everett/valuetx/store"
	"github.com/matt-g-everett/valuetx/textcodec"
	"github.com/matt-g-everett/valuetx/tween"
	"github.com/matt-g-everett/valuetx/value"
)

func newStore() *store.Memory {
	m := store.NewMemory()
	m.AddOwner("scene", []tween.Descriptor{
		{Name: "count", Type: tween.PropInt, Min: 0, Max: 100, Default: value.Int(10)},
		{Name: "opacity", Type: tween.PropFloat, Min: 0, Max: 1, Default: value.Float(1.5)},
		{Name: "tint", Type: tween.PropColor, Default: value.RGBA(0xff000000)},
		{Name: "overlay", Type: tween.PropColorAlpha, Default: value.RGBA(0xff101010)},
		{Name: "text", Type: tween.PropText, Default: value.Text("10.00")},
		{Name: "clock", Type: tween.PropText, Default: value.Text("00:01:00")},
		{Name: "caption", Type: tween.PropText, Default: value.Text("cat")},
		{Name: "mystery", Type: tween.PropInvalid},
	})
	return m
}

func newResolver(m *store.Memory, seed int64) *tween.Resolver {
	return tween.NewResolver(m, rand.New(rand.NewSource(seed)), logging.NewNop())
}

func ref(name string) tween.TargetRef {
	return tween.TargetRef{Owner: "scene", Name: name}
}

func TestResolveIntegerSingleSetting(t *testing.T) {
	r := newResolver(newStore(), 1)
	s := r.Resolve(ref("count"), tween.SingleSetting{Value: value.Int(20)})
	require.False(t, s.Noop())

	assert.Equal(t, value.Integer{Min: 0, Max: 100}, s.Kind)
	assert.Equal(t, value.Int(10), s.ValueAt(0))
	assert.Equal(t, value.Int(15), s.ValueAt(0.5))
	assert.Equal(t, value.Int(20), s.ValueAt(1))
}

func TestResolveRealSettingAdd(t *testing.T) {
	r := newResolver(newStore(), 1)
	s := r.Resolve(ref("opacity"), tween.SettingAdd{Delta: value.Float(2)})
	assert.Equal(t, value.Float(1.5), s.From)
	assert.Equal(t, value.Float(3.5), s.To)
	assert.Equal(t, value.Float(2.5), s.ValueAt(0.5))
}

func TestResolveIntegerRandomSwapTolerant(t *testing.T) {
	m := newStore()
	for seed := int64(0); seed < 50; seed++ {
		s := newResolver(m, seed).Resolve(ref("count"), tween.Random{Min: value.Int(40), Max: value.Int(30)})
		to := value.AsInt(s.To)
		assert.GreaterOrEqual(t, to, int64(30))
		assert.LessOrEqual(t, to, int64(40))
	}
}

func TestResolveRealRandom(t *testing.T) {
	s := newResolver(newStore(), 7).Resolve(ref("opacity"), tween.Random{Min: value.Float(0.2), Max: value.Float(0.4)})
	to := value.AsFloat(s.To)
	assert.True(t, to >= 0.2 && to < 0.4, "got %v", to)
}

func TestResolveColorBoundaries(t *testing.T) {
	r := newResolver(newStore(), 1)
	s := r.Resolve(ref("tint"), tween.SingleSetting{Value: value.RGBA(0xffffffff)})
	assert.Equal(t, value.Color{}, s.Kind)
	assert.Equal(t, value.RGBA(0xff000000), s.ValueAt(0))
	assert.Equal(t, value.RGBA(0xffffffff), s.ValueAt(1))

	mid := value.Unpack(value.AsRGBA(s.ValueAt(0.5)))
	assert.Greater(t, mid.R, 0.7)
}

func TestResolveColorSettingAdd(t *testing.T) {
	r := newResolver(newStore(), 1)
	s := r.Resolve(ref("overlay"), tween.SettingAdd{Delta: value.RGBA(0x00101010)})
	assert.Equal(t, value.Color{Alpha: true}, s.Kind)
	assert.Equal(t, value.RGBA(0xff202020), s.To)
	assert.Equal(t, value.RGBA(0xff202020), s.ValueAt(1))
	assert.Equal(t, value.RGBA(0xff101010), s.ValueAt(0))
}

func TestResolveColorRandom(t *testing.T) {
	r := newResolver(newStore(), 3)
	s := r.Resolve(ref("tint"), tween.Random{Min: value.RGBA(0x80336699), Max: value.RGBA(0x80336699)})
	assert.Equal(t, value.RGBA(0x80336699), s.To)
	assert.Equal(t, value.RGBA(0x80336699), s.ValueAt(1))

	s = r.Resolve(ref("tint"), tween.Random{Min: value.RGBA(0xff000000), Max: value.RGBA(0xff0000ff)})
	ch := value.Unpack(value.AsRGBA(s.To))
	assert.Equal(t, 0.0, ch.G)
	assert.Equal(t, 0.0, ch.B)
	assert.Equal(t, 1.0, ch.A)
}

func TestResolveTextNumeric(t *testing.T) {
	r := newResolver(newStore(), 1)
	r.Format = textcodec.Decimals(2)
	s := r.Resolve(ref("text"), tween.SingleSetting{Value: value.Float(20)})
	assert.Equal(t, value.Float(10), s.From)
	assert.Equal(t, value.Text("10.00"), s.ValueAt(0))
	assert.Equal(t, value.Text("15.00"), s.ValueAt(0.5))
	assert.Equal(t, value.Text("20.00"), s.ValueAt(1))
}

func TestResolveTextTime(t *testing.T) {
	r := newResolver(newStore(), 1)
	r.Format = textcodec.Time("%X")
	s := r.Resolve(ref("clock"), tween.SettingAdd{Delta: value.Float(60)})
	assert.Equal(t, value.Float(60), s.From)
	assert.Equal(t, value.Text("00:01:30"), s.ValueAt(0.5))
	assert.Equal(t, value.Text("00:02:00"), s.ValueAt(1))
}

func TestResolveTextLiteralsUseFormat(t *testing.T) {
	r := newResolver(newStore(), 1)
	r.Format = textcodec.Time("%X")
	s := r.Resolve(ref("clock"), tween.SingleSetting{Value: value.Text("00:02:00")})
	assert.Equal(t, value.Float(60), s.From)
	assert.Equal(t, value.Float(120), s.To)
	assert.Equal(t, value.Text("00:02:00"), s.ValueAt(1))

	s = r.Resolve(ref("clock"), tween.SettingAdd{Delta: value.Text("00:00:30")})
	assert.Equal(t, value.Text("00:01:30"), s.ValueAt(1))

	s = r.Resolve(ref("clock"), tween.Random{Min: value.Text("00:05:00"), Max: value.Text("00:05:00")})
	assert.Equal(t, value.Text("00:05:00"), s.ValueAt(1))

	r.Format = textcodec.Decimals(2)
	s = r.Resolve(ref("text"), tween.SingleSetting{Value: value.Text("20 pts")})
	assert.Equal(t, value.Float(20), s.To)
	assert.Equal(t, value.Text("20.00"), s.ValueAt(1))
}

func TestResolveTyping(t *testing.T) {
	r := newResolver(newStore(), 1)
	s := r.Resolve(ref("caption"), tween.Typing{Text: "car"})
	require.False(t, s.Noop())
	assert.Equal(t, value.TextTyping{}, s.Kind)
	assert.Equal(t, value.Text("cat"), s.From)
	assert.Equal(t, 2, s.Typing().Same)
	assert.Equal(t, 2, s.Typing().Total)
	assert.Equal(t, value.Text("cat"), s.ValueAt(0))
	assert.Equal(t, value.Text("ca"), s.ValueAt(0.5))
	assert.Equal(t, value.Text("car"), s.ValueAt(1))
}

func TestResolveTypingRawTextIsNotParsed(t *testing.T) {
	r := newResolver(newStore(), 1)
	s := r.Resolve(ref("text"), tween.Typing{Text: "12"})
	assert.Equal(t, value.Text("10.00"), s.From)
}

func TestResolveNoops(t *testing.T) {
	r := newResolver(newStore(), 1)

	assert.Nil(t, r.Resolve(tween.TargetRef{Owner: "gone", Name: "count"}, tween.SingleSetting{Value: value.Int(1)}))
	assert.True(t, r.Resolve(ref("missing"), tween.SingleSetting{Value: value.Int(1)}).Noop())
	assert.True(t, r.Resolve(ref("mystery"), tween.SingleSetting{Value: value.Int(1)}).Noop())
	assert.True(t, r.Resolve(ref("count"), tween.Typing{Text: "x"}).Noop())
	assert.True(t, r.Resolve(ref(tween.VolumeSetting), tween.SingleSetting{Value: value.Float(1)}).Noop())
}

func TestResolveVolume(t *testing.T) {
	m := newStore()
	m.SetGain("scene", 0.5)
	r := newResolver(m, 1)

	s := r.Resolve(ref(tween.VolumeSetting), tween.SingleSetting{Value: value.Float(100)})
	require.False(t, s.Noop())
	assert.Equal(t, value.Real{Min: 0, Max: 100}, s.Kind)
	assert.Equal(t, value.Float(50), s.From)
	assert.Equal(t, value.Float(75), s.ValueAt(0.5))
}
