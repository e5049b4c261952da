package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	A int
	F float64
}

type sampleConf struct {
	A int     `json:"a"`
	F float64 `json:"f"`
}

func newSample(conf map[string]any) (*sample, error) {
	var c sampleConf
	if err := Decode(conf, &c); err != nil {
		return nil, err
	}
	return &sample{A: c.A, F: c.F}, nil
}

func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sample]()
	require.NoError(t, reg.Register("s", newSample))
	inst, err := reg.Create(ModuleConfig{Type: "S", Conf: map[string]any{"a": 3, "f": "0.5"}})
	require.NoError(t, err)
	assert.Equal(t, 3, inst.A)
	assert.InDelta(t, 0.5, inst.F, 1e-9)
}

func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	require.NoError(t, reg.Register("x", func(map[string]any) (int, error) { return 1, nil }))
	assert.Error(t, reg.Register("X", func(map[string]any) (int, error) { return 2, nil }))
	assert.Error(t, reg.Register("y", nil))
	_, err := reg.Create(ModuleConfig{Type: "y"})
	assert.Error(t, err)
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry[int]()
	for _, n := range []string{"b", "a", "C"} {
		require.NoError(t, reg.Register(n, func(map[string]any) (int, error) { return 0, nil }))
	}
	assert.Equal(t, []string{"a", "b", "c"}, reg.Names())
}
