// Package transition converts binary scan lines into bar-width run sequences
// and normalizes them into module counts for the symbology decoders.
package transition

// Plausible transition counts for a 1-D symbology at typical image widths.
// Lines outside this band are rejected before any decode attempt.
const (
	MinTransitions = 20
	MaxTransitions = 300
)

// Runs is a sequence of bar/space widths between consecutive transitions.
// Widths[0] is the run immediately after the first transition; StartsDark
// reports whether that run is ink (binary 0) or substrate (binary 1).
type Runs struct {
	Widths     []int
	StartsDark bool
}

// Extract returns the transition indices of bits (positions where the value
// flips), ascending and unique by construction, and whether the count lies in
// the plausible barcode band.
func Extract(bits []uint8) ([]int, bool) {
	var transitions []int
	for i := 1; i < len(bits); i++ {
		if bits[i] != bits[i-1] {
			transitions = append(transitions, i)
		}
	}
	n := len(transitions)
	return transitions, n >= MinTransitions && n <= MaxTransitions
}

// RunsFromLine builds the run sequence for a binary line from its transition
// indices. The leading and trailing runs (quiet zones) are excluded since
// only consecutive-transition deltas carry bar-width information.
func RunsFromLine(bits []uint8, transitions []int) Runs {
	if len(transitions) < 2 {
		return Runs{}
	}
	widths := make([]int, len(transitions)-1)
	for i := 1; i < len(transitions); i++ {
		widths[i-1] = transitions[i] - transitions[i-1]
	}
	return Runs{
		Widths:     widths,
		StartsDark: bits[transitions[0]] == 0,
	}
}

// Normalize divides every width by the minimum observed width, rounding to
// the nearest integer module count >= 1. This recovers module counts under
// the assumption that the narrowest bar is exactly one module wide, which is
// fragile under blur and noise; that limitation is accepted rather than
// special-cased.
func Normalize(r Runs) Runs {
	if len(r.Widths) == 0 {
		return r
	}
	minWidth := r.Widths[0]
	for _, w := range r.Widths {
		if w < minWidth {
			minWidth = w
		}
	}
	if minWidth <= 0 {
		return Runs{}
	}
	normalized := make([]int, len(r.Widths))
	for i, w := range r.Widths {
		m := (2*w + minWidth) / (2 * minWidth) // round(w/minWidth)
		if m < 1 {
			m = 1
		}
		normalized[i] = m
	}
	return Runs{Widths: normalized, StartsDark: r.StartsDark}
}

// ModuleCount returns the total number of modules spanned by normalized runs.
func ModuleCount(r Runs) int {
	total := 0
	for _, w := range r.Widths {
		total += w
	}
	return total
}
