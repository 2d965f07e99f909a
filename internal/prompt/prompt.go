// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt runs the interactive console exchange: it asks for the two
// keys until each is a valid note, reads a pasted tab up to the "end"
// sentinel, and prints the transposed result between banners.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/tab-transposer/internal/pitch"
	"github.com/pdiddy/tab-transposer/internal/tab"
)

// Sentinel is the line that ends a pasted tab.
const Sentinel = "end"

// ErrNoInput is returned when input ends before a required answer.
var ErrNoInput = errors.New("no input")

const rule = "~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~/~"

const (
	askFrom = "Welcome to the tab transposer. What is the tonic note in the\n" +
		"original key? (Ex: for the key of A minor you would type 'A')"
	askTo        = "\nWhat is the tonic note in the key you would like to transpose to?"
	instructions = "\nGreat, now paste the original tab below and type the word \"" + Sentinel + "\"\n" +
		"on a line of its own."
	presentHeader = "\n\n" + rule + "\n\n  Here is your transposed tab! Copy and paste the text below.\n\n" + rule + "\n\n"
)

// Session reads answers from in and writes prompts to out.
type Session struct {
	in  *bufio.Reader
	out io.Writer

	// pending holds the words of the last answer line not yet consumed, so
	// "a c" on one line answers both key questions.
	pending []string
}

// NewSession returns a Session over r and w.
func NewSession(r io.Reader, w io.Writer) *Session {
	return &Session{in: bufio.NewReader(r), out: w}
}

// readLine returns the next line without its terminator. err is io.EOF only
// when nothing at all was read.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			err = nil
		} else {
			return "", err
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// AskKey writes question and then a "> " prompt, and reads answer words
// until one is a valid note name. Every rejected word gets a fresh prompt;
// blank lines are skipped.
func (s *Session) AskKey(question string) (pitch.Key, error) {
	fmt.Fprint(s.out, question)
	fmt.Fprint(s.out, "\n> ")
	for {
		word, err := s.nextWord()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return pitch.Key{}, fmt.Errorf("reading key: %w", ErrNoInput)
			}
			return pitch.Key{}, fmt.Errorf("reading key: %w", err)
		}
		if k, err := pitch.ParseKey(word); err == nil {
			return k, nil
		}
		fmt.Fprint(s.out, "\n> ")
	}
}

func (s *Session) nextWord() (string, error) {
	for len(s.pending) == 0 {
		line, err := s.readLine()
		if err != nil {
			return "", err
		}
		s.pending = strings.Fields(line)
	}
	word := s.pending[0]
	s.pending = s.pending[1:]
	return word, nil
}

// ReadTab collects lines until one equals Sentinel or input ends. Each
// collected line is followed by a newline. Unused words left on the last
// answer line are dropped.
func (s *Session) ReadTab() (string, error) {
	s.pending = nil
	var b strings.Builder
	for {
		line, err := s.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return b.String(), nil
			}
			return b.String(), fmt.Errorf("reading tab: %w", err)
		}
		if line == Sentinel {
			return b.String(), nil
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

// Present writes the transposed tab between banners.
func (s *Session) Present(result string) {
	fmt.Fprint(s.out, presentHeader)
	fmt.Fprintln(s.out, result)
}

// Run performs the whole exchange with t and returns the counts of the
// transposition.
func (s *Session) Run(ctx context.Context, t *tab.Transposer) (tab.Summary, error) {
	from, err := s.AskKey(askFrom)
	if err != nil {
		return tab.Summary{}, err
	}
	to, err := s.AskKey(askTo)
	if err != nil {
		return tab.Summary{}, err
	}

	fmt.Fprintln(s.out, instructions)
	text, err := s.ReadTab()
	if err != nil {
		return tab.Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return tab.Summary{}, err
	}

	out, sum := t.TransposeSummary(text, from, to)
	s.Present(out)
	return sum, nil
}
