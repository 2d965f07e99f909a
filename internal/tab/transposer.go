// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tab

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/tab-transposer/internal/chord"
	"github.com/pdiddy/tab-transposer/internal/pitch"
)

// Options configures a Transposer.
type Options struct {
	// LegacySlashQuality selects the historic slash-chord quality cut.
	// See chord.Engine.
	LegacySlashQuality bool
}

// Summary counts what a transposition run touched.
type Summary struct {
	Lines      int `json:"lines" yaml:"lines"`
	ChordLines int `json:"chord_lines" yaml:"chord_lines"`
	Chords     int `json:"chords" yaml:"chords"`
}

// Add accumulates another summary into s.
func (s *Summary) Add(o Summary) {
	s.Lines += o.Lines
	s.ChordLines += o.ChordLines
	s.Chords += o.Chords
}

// Transposer rewrites whole tabs.
type Transposer struct {
	engine chord.Engine
}

// New returns a Transposer configured by opts.
func New(opts Options) *Transposer {
	return &Transposer{engine: chord.Engine{LegacySlashQuality: opts.LegacySlashQuality}}
}

// Line rewrites a single line (without its newline). Lines that are not
// chord lines come back unchanged with a zero count.
func (t *Transposer) Line(line string, from, to pitch.Key) (string, int, bool) {
	if !IsChordLine(line) {
		return line, 0, false
	}
	out, n := rewriteLine(t.engine, line, from, to)
	return out, n, true
}

// Transpose rewrites the chords of text and terminates every line with a
// newline.
func (t *Transposer) Transpose(text string, from, to pitch.Key) string {
	out, _ := t.TransposeSummary(text, from, to)
	return out
}

// TransposeSummary is Transpose that also reports counts.
func (t *Transposer) TransposeSummary(text string, from, to pitch.Key) (string, Summary) {
	var (
		b   strings.Builder
		sum Summary
	)
	b.Grow(len(text) + 1)
	for _, line := range Lines(text) {
		out, n, ok := t.Line(line, from, to)
		sum.Lines++
		if ok {
			sum.ChordLines++
			sum.Chords += n
		}
		b.WriteString(out)
		b.WriteByte('\n')
	}
	return b.String(), sum
}

// Run streams a tab from r to w line by line. It stops early with the
// context's error when ctx is cancelled.
func (t *Transposer) Run(ctx context.Context, r io.Reader, w io.Writer, from, to pitch.Key) (Summary, error) {
	var sum Summary
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	for {
		select {
		case <-ctx.Done():
			return sum, ctx.Err()
		default:
		}

		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return sum, fmt.Errorf("reading tab: %w", err)
		}
		if line == "" && err != nil {
			break
		}
		line = strings.TrimSuffix(line, "\n")

		out, n, ok := t.Line(line, from, to)
		sum.Lines++
		if ok {
			sum.ChordLines++
			sum.Chords += n
		}
		if _, werr := bw.WriteString(out + "\n"); werr != nil {
			return sum, fmt.Errorf("writing tab: %w", werr)
		}
		if err != nil {
			break
		}
	}

	if err := bw.Flush(); err != nil {
		return sum, fmt.Errorf("writing tab: %w", err)
	}
	return sum, nil
}
