package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawCommand(t *testing.T) {
	t.Setenv("BINGO_CONFIG", "")
	path := filepath.Join(t.TempDir(), "extra.txt")
	require.NoError(t, os.WriteFile(path, []byte("zebra crossing\n\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"draw", "--seed", "7", "--file", path})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		phraseFile = ""
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Headshot")
}

func TestDrawCommandMissingFile(t *testing.T) {
	t.Setenv("BINGO_CONFIG", "")
	rootCmd.SetArgs([]string{"draw", "--file", filepath.Join(t.TempDir(), "missing.txt")})
	rootCmd.SetOut(&bytes.Buffer{})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		phraseFile = ""
	})

	assert.Error(t, rootCmd.Execute())
}
