// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tab-transposer/internal/pitch"
	"github.com/pdiddy/tab-transposer/internal/tab"
)

func TestAskKeyRetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(strings.NewReader("H\n\n  bb  extra\n"), &out)

	k, err := s.AskKey("Key?")
	require.NoError(t, err)
	assert.Equal(t, "bb", k.Name())
	assert.Equal(t, 2, k.Class())
	// The first prompt plus one per rejected word; blank lines are skipped.
	assert.Equal(t, 2, strings.Count(out.String(), "\n> "))
	assert.True(t, strings.HasPrefix(out.String(), "Key?"))

	next, err := s.AskKey("Again?")
	assert.ErrorIs(t, err, ErrNoInput, "extra is not a note")
	assert.Equal(t, pitch.Key{}, next)
}

func TestAskKeyBothKeysOnOneLine(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(strings.NewReader("a c\n"), &out)

	from, err := s.AskKey("From?")
	require.NoError(t, err)
	to, err := s.AskKey("To?")
	require.NoError(t, err)
	assert.Equal(t, "a", from.Name())
	assert.Equal(t, "c", to.Name())
	assert.Equal(t, 2, strings.Count(out.String(), "\n> "))
}

func TestAskKeyRejectsEachWord(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(strings.NewReader("x y G\n"), &out)

	k, err := s.AskKey("Key?")
	require.NoError(t, err)
	assert.Equal(t, "G", k.String())
	assert.Equal(t, 3, strings.Count(out.String(), "\n> "))
}

func TestAskKeyEOF(t *testing.T) {
	s := NewSession(strings.NewReader("x\ny"), &bytes.Buffer{})
	_, err := s.AskKey("Key?")
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestAskKeyLastLineWithoutNewline(t *testing.T) {
	s := NewSession(strings.NewReader("G"), &bytes.Buffer{})
	k, err := s.AskKey("Key?")
	require.NoError(t, err)
	assert.Equal(t, "G", k.String())
}

func TestReadTab(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"stops at sentinel", "A D\nla la\nend\nignored\n", "A D\nla la\n"},
		{"crlf sentinel", "A D\r\nend\r\n", "A D\n"},
		{"sentinel must match exactly", "the end\nEnd\nend\n", "the end\nEnd\n"},
		{"eof without sentinel", "A D\nE", "A D\nE\n"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(strings.NewReader(tt.in), &bytes.Buffer{})
			got, err := s.ReadTab()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRun(t *testing.T) {
	in := strings.Join([]string{
		"k",     // rejected
		"A",     // from
		"C",     // to
		"A D E", // tab
		"Hello there",
		"end",
	}, "\n") + "\n"

	var out bytes.Buffer
	s := NewSession(strings.NewReader(in), &out)
	sum, err := s.Run(context.Background(), tab.New(tab.Options{}))
	require.NoError(t, err)

	assert.Equal(t, tab.Summary{Lines: 2, ChordLines: 1, Chords: 3}, sum)
	assert.Contains(t, out.String(), "Here is your transposed tab!")
	assert.True(t, strings.HasSuffix(out.String(), "C F G\nHello there\n\n"))
}

func TestRunKeysOnOneLine(t *testing.T) {
	in := "a c extra\nA D E\nend\n"

	var out bytes.Buffer
	s := NewSession(strings.NewReader(in), &out)
	sum, err := s.Run(context.Background(), tab.New(tab.Options{}))
	require.NoError(t, err)

	assert.Equal(t, tab.Summary{Lines: 1, ChordLines: 1, Chords: 3}, sum)
	assert.True(t, strings.HasSuffix(out.String(), "C F G\n\n"))
}

func TestRunNoKeys(t *testing.T) {
	s := NewSession(strings.NewReader(""), &bytes.Buffer{})
	_, err := s.Run(context.Background(), tab.New(tab.Options{}))
	assert.ErrorIs(t, err, ErrNoInput)
}
