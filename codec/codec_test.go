package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	NeedRun bool              `json:"need_run"`
	Labels  map[string]string `json:"labels"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("protobuf")
	assert.False(t, ok)
	assert.Panics(t, func() { MustByName("protobuf") })
}

func TestCodecsInterchangeable(t *testing.T) {
	in := sample{NeedRun: true, Labels: map[string]string{"cat": "0", "dog": "1"}}

	b, err := JSON{}.Marshal(in)
	require.NoError(t, err)

	var out sample
	require.NoError(t, GoJSON{}.Unmarshal(b, &out))
	assert.Equal(t, in, out)

	b, err = GoJSON{}.Marshal(in)
	require.NoError(t, err)

	out = sample{}
	require.NoError(t, JSON{}.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}
