package bootstrap

import (
	"io"
	"time"

	"github.com/gorgonia/c4uct"
	"github.com/gorgonia/c4uct/mcts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that override the config file, e.g. C4UCT_DIFFICULTY.
const EnvPrefix = "C4UCT"

type Config struct {
	Difficulty string        `mapstructure:"DIFFICULTY"`
	Iterations int           `mapstructure:"ITERATIONS"` // overrides the difficulty's budget when positive
	Timeout    time.Duration `mapstructure:"TIMEOUT"`
	Seed       uint64        `mapstructure:"SEED"` // 0 seeds from the clock
	Games      int           `mapstructure:"GAMES"`
	Addr       string        `mapstructure:"ADDR"`
	LogLevel   string        `mapstructure:"LOG_LEVEL"`
	GifPath    string        `mapstructure:"GIF_PATH"`
	StatsPath  string        `mapstructure:"STATS_PATH"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("DIFFICULTY", string(c4uct.Medium))
	v.SetDefault("ITERATIONS", 0)
	v.SetDefault("TIMEOUT", time.Duration(0))
	v.SetDefault("SEED", 0)
	v.SetDefault("GAMES", 10)
	v.SetDefault("ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GIF_PATH", "")
	v.SetDefault("STATS_PATH", "")
}

// Setup reads the config file at cfgPath, if any, and applies environment overrides.
// An empty cfgPath uses the defaults and the environment only.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "unable to read config %q", cfgPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}
	return &cfg, nil
}

// Level returns the configured difficulty.
func (c *Config) Level() c4uct.Difficulty { return c4uct.ParseDifficulty(c.Difficulty) }

// Options returns the search options the config asks for.
func (c *Config) Options() []mcts.Option {
	var opts []mcts.Option
	if c.Iterations > 0 {
		opts = append(opts, mcts.WithIterations(c.Iterations))
	}
	if c.Timeout > 0 {
		opts = append(opts, mcts.WithTimeout(c.Timeout))
	}
	if c.Seed != 0 {
		opts = append(opts, mcts.WithSeed(c.Seed))
	}
	return opts
}

// Logger builds a console logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.Nop(), errors.Wrapf(err, "bad log level %q", c.LogLevel)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().Timestamp().Logger(), nil
}
