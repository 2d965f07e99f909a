// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tab-transposer/pkg/types"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		// Flag values persist on the package-level commands between runs.
		for _, name := range []string{"from", "to", "out"} {
			transposeCmd.Flags().Set(name, "")
		}
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTransposeCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "song.txt")
	require.NoError(t, os.WriteFile(in, []byte("A D E\nI walk the line\n"), 0o644))

	out, err := execute(t, "", "transpose", "--from", "A", "--to", "C", in)
	require.NoError(t, err)
	assert.Equal(t, "C F G\nI walk the line\n", out)
}

func TestTransposeCommandStdinToFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.txt")

	_, err := execute(t, "G C D\n", "transpose", "--from", "g", "--to", "a", "--out", outPath)
	require.NoError(t, err)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "A D E\n", string(data))
}

func TestTransposeCommandRefusesOutputOverInput(t *testing.T) {
	in := filepath.Join(t.TempDir(), "song.txt")
	require.NoError(t, os.WriteFile(in, []byte("A D E\nla la\n"), 0o644))

	_, err := execute(t, "", "transpose", "--from", "A", "--to", "C", "--out", in, in)
	assert.ErrorContains(t, err, "is the input file")

	data, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, "A D E\nla la\n", string(data))
}

func TestTransposeCommandErrors(t *testing.T) {
	_, err := execute(t, "", "transpose", "--from", "A")
	assert.ErrorContains(t, err, "both --from and --to are required")

	_, err = execute(t, "", "transpose", "--from", "H", "--to", "C")
	assert.ErrorContains(t, err, "--from")
}

func TestTransposeCommandInteractive(t *testing.T) {
	out, err := execute(t, "A\nC\nA D E\nend\n", "transpose")
	require.NoError(t, err)
	assert.Contains(t, out, "C F G\n")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "tab-transposer dev\n", out)
}

func TestFormatSongList(t *testing.T) {
	var w bytes.Buffer
	require.NoError(t, formatSongList(&w, nil, false))
	assert.Equal(t, "No songs found.\n", w.String())

	w.Reset()
	require.NoError(t, formatSongList(&w, nil, true))
	assert.Equal(t, "[]\n", w.String())

	w.Reset()
	songs := []types.Song{{ID: "id-1", Key: "Bb", Title: strings.Repeat("x", 40), Artist: "Someone"}}
	require.NoError(t, formatSongList(&w, songs, false))
	assert.Contains(t, w.String(), strings.Repeat("x", 27)+"...")
	assert.Contains(t, w.String(), "1 songs")

	w.Reset()
	songs = []types.Song{{ID: "id-2", Key: "A", Title: strings.Repeat("é", 40)}}
	require.NoError(t, formatSongList(&w, songs, false))
	assert.Contains(t, w.String(), strings.Repeat("é", 27)+"...")
	assert.True(t, utf8.ValidString(w.String()))

	w.Reset()
	songs = []types.Song{{ID: "id-3", Key: "A", Title: strings.Repeat("é", 30)}}
	require.NoError(t, formatSongList(&w, songs, false))
	assert.Contains(t, w.String(), strings.Repeat("é", 30)+"  ")
	assert.NotContains(t, w.String(), "...")
}
