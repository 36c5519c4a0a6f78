package wordcount

import (
	"reflect"
	"testing"
	"time"

	"github.com/kbukum/progressive/progressive"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"hello world", []string{"hello", "world"}},
		{"it's a dog's life", []string{"it's", "a", "dog's", "life"}},
		{"'quoted' words", []string{"quoted", "words"}},
		{"a,b;c--d", []string{"a", "b", "c", "d"}},
		{"version 2 of 10", []string{"version", "2", "of", "10"}},
		{"' '' '''", []string{}},
		{"café über", []string{"café", "über"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := Split(tt.line)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestCounter_Operate(t *testing.T) {
	c := New()
	opts := Options{}

	if got := c.Operate("one two", opts); got != (LineStats{Line: 1, Words: 2}) {
		t.Errorf("unexpected stats %+v", got)
	}
	if got := c.Operate("", opts); got != (LineStats{Line: 2, Words: 0}) {
		t.Errorf("unexpected stats %+v", got)
	}
	if got := c.Operate("three", opts); got != (LineStats{Line: 3, Words: 1}) {
		t.Errorf("unexpected stats %+v", got)
	}
}

func TestCounter_Finish(t *testing.T) {
	lines := []string{
		"The cat and the hat",
		"the end",
		"Cat",
	}

	tests := []struct {
		name string
		opts Options
		want Report
	}{
		{
			name: "case sensitive",
			opts: Options{},
			want: Report{Lines: 3, Words: 8, Top: []WordFreq{
				{"the", 2}, {"Cat", 1}, {"The", 1}, {"and", 1}, {"cat", 1}, {"end", 1}, {"hat", 1},
			}},
		},
		{
			name: "case folded",
			opts: Options{CaseFold: true},
			want: Report{Lines: 3, Words: 8, Top: []WordFreq{
				{"the", 3}, {"cat", 2}, {"and", 1}, {"end", 1}, {"hat", 1},
			}},
		},
		{
			name: "top two",
			opts: Options{CaseFold: true, Top: 2},
			want: Report{Lines: 3, Words: 8, Top: []WordFreq{
				{"the", 3}, {"cat", 2},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			for _, l := range lines {
				c.Operate(l, tt.opts)
			}
			got := c.Finish(tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Finish() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCounter_Empty(t *testing.T) {
	got := New().Finish(Options{Top: 5})
	if got.Lines != 0 || got.Words != 0 || len(got.Top) != 0 {
		t.Errorf("expected empty report, got %+v", got)
	}
}

func TestCounter_Progressive(t *testing.T) {
	lines := []string{"a b", "b c", "c d", "d e"}
	w := progressive.NewSized[string, LineStats, Report, Options](New(), progressive.FromSlice(lines))

	var updates []LineStats
	report := progressive.Drain(w.Waiter, 0, Options{Top: 1}, func(s LineStats) {
		updates = append(updates, s)
	})

	// A zero budget still makes one line of progress per call.
	if len(updates) != len(lines) {
		t.Fatalf("expected %d updates, got %d", len(lines), len(updates))
	}
	for i, u := range updates {
		if u.Line != i+1 || u.Words != 2 {
			t.Errorf("update %d = %+v", i, u)
		}
	}
	if report.Lines != 4 || report.Words != 8 {
		t.Errorf("unexpected totals %+v", report)
	}
	if len(report.Top) != 1 || report.Top[0] != (WordFreq{"b", 2}) {
		t.Errorf("unexpected top %+v", report.Top)
	}
	if w.Progress() != 1 {
		t.Errorf("expected progress 1, got %f", w.Progress())
	}
}

func TestCounter_SingleSlice(t *testing.T) {
	w := progressive.NewSized[string, LineStats, Report, Options](
		New(), progressive.FromSlice([]string{"x y z", "x"}),
	)
	res := w.Query(time.Hour, Options{})
	report, ok := res.Output()
	if !ok {
		t.Fatalf("expected Done, got %s", res)
	}
	if report.Top[0] != (WordFreq{"x", 2}) {
		t.Errorf("unexpected top %+v", report.Top)
	}
}
