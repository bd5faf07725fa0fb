package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"generate"},
		{"serve"},
		{"history", "list"},
		{"history", "export"},
		{"history", "prune"},
		{"llm", "stats"},
		{"config", "show"},
		{"config", "init"},
		{"version"},
	} {
		c, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], c.Name())
		assert.True(t, c.HasParent(), "%v should not be the root", path)
	}
	assert.False(t, rootCmd.HasParent())
}

func TestPersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "db", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}
