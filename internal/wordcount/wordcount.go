// Package wordcount implements a progressive loader that counts words line
// by line and reports the most frequent ones.
package wordcount

import (
	"sort"
	"strings"
	"unicode"

	"github.com/kbukum/progressive/progressive"
)

// Options is passed to every Operate and Finish call.
type Options struct {
	// CaseFold counts words case-insensitively.
	CaseFold bool
	// Top limits the report to the N most frequent words. Zero keeps all.
	Top int
}

// LineStats is the progress update for one line.
type LineStats struct {
	// Line is the 1-based number of the line just processed.
	Line int
	// Words is the number of words on that line.
	Words int
}

// WordFreq is one entry of the frequency table.
type WordFreq struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Report is the final output.
type Report struct {
	Lines int        `json:"lines"`
	Words int        `json:"words"`
	Top   []WordFreq `json:"top"`
}

// Counter counts words. The zero value is not usable; call New.
type Counter struct {
	lines int
	words int
	freq  map[string]int
}

var _ progressive.Loader[string, LineStats, Report, Options] = (*Counter)(nil)

// New creates an empty Counter.
func New() *Counter {
	return &Counter{freq: make(map[string]int)}
}

// Operate counts the words on one line.
func (c *Counter) Operate(line string, opts Options) LineStats {
	c.lines++
	words := Split(line)
	for _, w := range words {
		if opts.CaseFold {
			w = strings.ToLower(w)
		}
		c.freq[w]++
	}
	c.words += len(words)
	return LineStats{Line: c.lines, Words: len(words)}
}

// Finish builds the report, most frequent first and ties broken
// alphabetically.
func (c *Counter) Finish(opts Options) Report {
	top := make([]WordFreq, 0, len(c.freq))
	for w, n := range c.freq {
		top = append(top, WordFreq{Word: w, Count: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Word < top[j].Word
	})
	if opts.Top > 0 && len(top) > opts.Top {
		top = top[:opts.Top]
	}

	r := Report{Lines: c.lines, Words: c.words, Top: top}
	c.freq = nil
	return r
}

// Split returns the words of line. A word is a run of letters, digits and
// apostrophes; apostrophes at either end are dropped.
func Split(line string) []string {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	words := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, "'"); f != "" {
			words = append(words, f)
		}
	}
	return words
}
