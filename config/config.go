package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config wraps a viper instance. Every knob can be set by command-line
// flag or by environment variable (WORDHOUND_WORD_LENGTH and friends).
type Config struct {
	v    *viper.Viper
	args []string
}

func (c *Config) Load(args []string) error {
	c.v = viper.New()

	fs := pflag.NewFlagSet("wordhound", pflag.ContinueOnError)
	fs.Int("word-length", 5, "length of the words in play")
	fs.String("dictionary-path", "./data/dictionary.txt", "path to the word list, one word per line")
	fs.Int("threads", 0, "number of search threads; 0 means all but one CPU")
	fs.Bool("memo", true, "memoize best-guess results per candidate set")
	fs.Float64("memo-fraction", 0.25, "fraction of system memory budgeted for the memo table")
	fs.Bool("debug", false, "debug logging")
	fs.String("cpu-profile", "", "write a CPU profile to this file")
	fs.String("mem-profile", "", "write a memory profile to this file on exit")

	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	c.v.SetEnvPrefix("wordhound")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	return c.v.BindPFlags(fs)
}

func (c *Config) GetString(key string) string   { return c.v.GetString(key) }
func (c *Config) GetInt(key string) int         { return c.v.GetInt(key) }
func (c *Config) GetBool(key string) bool       { return c.v.GetBool(key) }
func (c *Config) GetFloat64(key string) float64 { return c.v.GetFloat64(key) }

func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// Args returns the positional arguments left over after flag parsing.
func (c *Config) Args() []string { return c.args }

// AllSettings returns the settings for display.
func (c *Config) AllSettings() string {
	return fmt.Sprintf("%v", c.v.AllSettings())
}

// DefaultConfig returns a config loaded with no arguments; mostly for tests.
func DefaultConfig() Config {
	c := Config{}
	if err := c.Load(nil); err != nil {
		panic(err)
	}
	return c
}
