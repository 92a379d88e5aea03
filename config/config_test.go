package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 5, c.GetInt("word-length"))
	assert.True(t, c.GetBool("memo"))
	assert.Equal(t, 0.25, c.GetFloat64("memo-fraction"))
	assert.Equal(t, 0, c.GetInt("threads"))
}

func TestFlagsAndArgs(t *testing.T) {
	c := Config{}
	err := c.Load([]string{"--word-length", "4", "--memo=false", "load", "solve"})
	assert.NoError(t, err)
	assert.Equal(t, 4, c.GetInt("word-length"))
	assert.False(t, c.GetBool("memo"))
	assert.Equal(t, []string{"load", "solve"}, c.Args())
}
