package gif

import (
	"bytes"
	"image/gif"
	"testing"

	"github.com/gorgonia/c4uct/game"
	"github.com/gorgonia/c4uct/game/c4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type metaState struct {
	g game.State
}

func (m metaState) Name() string      { return "Connect Four" }
func (m metaState) GameNumber() int   { return 1 }
func (m metaState) State() game.State { return m.g }

func TestEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewGifEncoder(&buf, 1000, 1000)

	g := c4.Connect4()
	moves := []game.Single{0, 1, 0, 1, 0, 1, 0}
	for _, m := range moves {
		require.NoError(t, g.Apply(m))
		require.NoError(t, enc.Encode(metaState{g}))
	}
	assert.Equal(t, len(moves), enc.Frames())
	assert.True(t, enc.W > 0 && enc.W <= 1000)
	assert.True(t, enc.H > 0 && enc.H <= 1000)
	require.NoError(t, enc.Flush())

	out, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, out.Image, len(moves))
	assert.Equal(t, finalDelay, out.Delay[len(moves)-1])
	assert.Equal(t, moveDelay, out.Delay[0])
}

func TestEncoderSmallFrame(t *testing.T) {
	var buf bytes.Buffer
	enc := NewGifEncoder(&buf, 50, 60)
	require.NoError(t, enc.Encode(metaState{c4.Connect4()}))
	assert.Equal(t, 50, enc.H)
	assert.Equal(t, 60, enc.W)
}

func TestEncoderFlushEmpty(t *testing.T) {
	var buf bytes.Buffer
	enc := NewGifEncoder(&buf, 100, 100)
	assert.NoError(t, enc.Flush())
	assert.Zero(t, buf.Len())
}

func TestEncoderFlushNoWriter(t *testing.T) {
	enc := NewGifEncoder(nil, 100, 100)
	require.NoError(t, enc.Encode(metaState{c4.Connect4()}))
	assert.Error(t, enc.Flush())
}
