package undo

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Granularity decides whether a new typing event extends the topmost
// typing bead or opens a new one.
type Granularity string

const (
	GranularityChar Granularity = "char"
	GranularityLine Granularity = "line"
	GranularityWord Granularity = "word"
	GranularityNode Granularity = "node"
)

// ParseGranularity parses a config string, falling back to "line" for any
// value outside the enumerated set (per the invalid-input error policy).
func ParseGranularity(s string) Granularity {
	switch Granularity(s) {
	case GranularityChar, GranularityLine, GranularityWord, GranularityNode:
		return Granularity(s)
	default:
		return GranularityLine
	}
}

// Point is a zero-based (row, column) text position, where column counts
// grapheme clusters rather than bytes or runes so combining-mark sequences
// and multi-rune emoji count as one column.
type Point struct {
	Row int
	Col int
}

// Selection is a text-selection range expressed as two Points.
type Selection struct {
	Start Point
	End   Point
}

// WordBoundaryFunc reports whether the transition from oldCluster to
// newCluster starts a new word, i.e. whether a typing bead should close.
// oldCluster and newCluster are single grapheme clusters (possibly empty at
// the start/end of a line).
type WordBoundaryFunc func(oldCluster, newCluster string) bool

// DefaultWordBoundary is the default recognizeStartOfTypingWord predicate:
// trailing whitespace coalesces with the word before it, and the boundary
// falls where a new, non-whitespace word starts after whitespace.
func DefaultWordBoundary(oldCluster, newCluster string) bool {
	return isSpaceCluster(oldCluster) && !isSpaceCluster(newCluster)
}

func isSpaceCluster(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	}
	return false
}

// lineAt returns the row'th line of text, split on "\n", or "" if out of
// range.
func lineAt(text string, row int) string {
	lines := strings.Split(text, "\n")
	if row < 0 || row >= len(lines) {
		return ""
	}
	return lines[row]
}

// clusterAtColumn returns the grapheme cluster at the given column (0-based,
// counted in clusters) of line, or "" if col is out of range.
func clusterAtColumn(line string, col int) string {
	if col < 0 {
		return ""
	}
	g := uniseg.NewGraphemes(line)
	i := 0
	for g.Next() {
		if i == col {
			return g.Str()
		}
		i++
	}
	return ""
}

// graphemeLen returns the number of grapheme clusters in s.
func graphemeLen(s string) int {
	n := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		n++
	}
	return n
}
