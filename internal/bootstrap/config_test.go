package bootstrap

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorgonia/c4uct"
	"github.com/gorgonia/c4uct/mcts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDefaults(t *testing.T) {
	cfg, err := Setup("")
	require.NoError(t, err)
	assert.Equal(t, c4uct.Medium, cfg.Level())
	assert.Equal(t, 10, cfg.Games)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.Options())
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c4uct.yaml")
	conf := []byte("DIFFICULTY: Hard\nITERATIONS: 64\nTIMEOUT: 250ms\nSEED: 7\nGAMES: 3\nLOG_LEVEL: debug\n")
	require.NoError(t, os.WriteFile(path, conf, 0644))

	cfg, err := Setup(path)
	require.NoError(t, err)
	assert.Equal(t, c4uct.Hard, cfg.Level())
	assert.Equal(t, 64, cfg.Iterations)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 3, cfg.Games)

	m := mcts.New(mcts.DefaultConfig(), cfg.Options()...)
	assert.Equal(t, 64, m.Iterations)
	assert.Equal(t, 250*time.Millisecond, m.Timeout)
}

func TestSetupEnv(t *testing.T) {
	t.Setenv("C4UCT_DIFFICULTY", "easy")
	t.Setenv("C4UCT_GAMES", "42")
	cfg, err := Setup("")
	require.NoError(t, err)
	assert.Equal(t, c4uct.Easy, cfg.Level())
	assert.Equal(t, 500, cfg.Level().Iterations())
	assert.Equal(t, 42, cfg.Games)
}

func TestSetupMissingFile(t *testing.T) {
	_, err := Setup(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: "warn"}
	l, err := cfg.Logger(&buf)
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	cfg.LogLevel = "loud"
	_, err = cfg.Logger(&buf)
	assert.Error(t, err)
}
