package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbfkit/dbfkit/pkg/dbf"
)

func TestDecodeOptions(t *testing.T) {
	require.NoError(t, rootCmd.PersistentFlags().Set("encoding", "cp1252"))
	require.NoError(t, rootCmd.PersistentFlags().Set("mode", "loose"))
	require.NoError(t, rootCmd.PersistentFlags().Set("deleted", "true"))
	defer func() {
		_ = rootCmd.PersistentFlags().Set("encoding", "latin1")
		_ = rootCmd.PersistentFlags().Set("mode", "strict")
		_ = rootCmd.PersistentFlags().Set("deleted", "false")
	}()

	opts, err := decodeOptions(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, "cp1252", opts.Encoding)
	assert.Equal(t, dbf.ModeLoose, opts.Mode)
	assert.True(t, opts.IncludeDeleted)
}

func TestDecodeOptions_InvalidMode(t *testing.T) {
	require.NoError(t, rootCmd.PersistentFlags().Set("mode", "sloppy"))
	defer func() { _ = rootCmd.PersistentFlags().Set("mode", "strict") }()

	_, err := decodeOptions(rootCmd)
	assert.Error(t, err)
}
