package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestJSONRoundTrip(t *testing.T) {
	type record struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	}

	in := []record{{ID: "a", Text: "hello"}, {ID: "b", Text: "wörld"}}

	data, err := JSON{}.Marshal(in)
	require.NoError(t, err)

	var out []record
	require.NoError(t, JSON{}.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
