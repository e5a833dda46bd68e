package stream

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/valuetx/store"
	"github.com/matt-g-everett/valuetx/tween"
	"github.com/matt-g-everett/valuetx/value"
)

// plainStore hides the gain methods of a Memory store.
type plainStore struct {
	tween.Store
}

func TestRecorderCollectsWrites(t *testing.T) {
	m := store.NewMemory()
	m.AddOwner("scene", []tween.Descriptor{{Name: "count", Type: tween.PropInt, Default: value.Int(0)}})
	m.SetGain("scene", 1)
	r := NewRecorder(m)

	r.Set("scene", "count", value.Int(4))
	r.SetDefault("scene", "count", value.Int(2))
	r.SetGain("scene", 0.25)

	writes := r.Flush()
	require.Len(t, writes, 2)
	assert.Equal(t, Write{Owner: "scene", Name: "count", Value: value.Int(4)}, writes[0])
	assert.Equal(t, Write{Owner: "scene", Name: tween.VolumeSetting, Value: value.Float(25)}, writes[1])
	assert.Empty(t, r.Flush())

	v, _ := r.Get("scene", "count")
	assert.Equal(t, value.Int(4), v)
	def, _ := r.Default("scene", "count")
	assert.Equal(t, value.Int(2), def)
	g, ok := r.Gain("scene")
	require.True(t, ok)
	assert.Equal(t, 0.25, g)
}

func TestRecorderWithoutGain(t *testing.T) {
	m := store.NewMemory()
	m.AddOwner("scene", nil)
	m.SetGain("scene", 1)
	r := NewRecorder(plainStore{m})

	_, ok := r.Gain("scene")
	assert.False(t, ok)
	r.SetGain("scene", 0.5)
	assert.Empty(t, r.Flush())
}

func TestFrameJSON(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	f := NewFrame(7, at, []Write{
		{Owner: "a", Name: "tint", Value: value.RGBA(0x80ff0000)},
		{Owner: "a", Name: "label", Value: value.Text("hi")},
		{Owner: "a", Name: "gain", Value: value.Float(0.5)},
	})
	assert.False(t, f.Empty())

	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"seq": 7,
		"time": "2024-01-02T03:04:05Z",
		"writes": [
			{"owner": "a", "name": "tint", "kind": "color", "value": "#0000ff80"},
			{"owner": "a", "name": "label", "kind": "text", "value": "hi"},
			{"owner": "a", "name": "gain", "kind": "float", "value": 0.5}
		]
	}`, string(b))

	kind, raw := EncodeValue(nil)
	assert.Equal(t, "none", kind)
	assert.Nil(t, raw)
}
