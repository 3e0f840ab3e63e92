// Package symbology implements the 1-D barcode decoders (EAN-13, EAN-8,
// UPC-A and a scoped-down numeric Code128) over normalized module-width run
// sequences.
package symbology

import (
	"github.com/strichware/bardec/internal/transition"
)

// Candidate is the outcome of a structural decode attempt. Only candidates
// with ChecksumOK may become a pipeline result.
type Candidate struct {
	Symbology  string
	Payload    string
	ChecksumOK bool
}

// Decoder decodes a normalized run sequence into a candidate. The boolean is
// false when the runs do not structurally match the symbology at all; a
// returned candidate with ChecksumOK=false matched the guard structure but
// failed checksum validation.
type Decoder interface {
	Name() string
	Decode(runs transition.Runs) (Candidate, bool)
}

// Decoders returns the decoders in fixed priority order: longer and more
// specific guard patterns first to reduce false positives.
func Decoders() []Decoder {
	return []Decoder{
		EAN13{},
		EAN8{},
		Code128{},
		UPCA{},
	}
}

// maxModules caps the expanded module sequence; anything longer is noise, not
// a barcode at a sane resolution.
const maxModules = 2048

// expandModules expands normalized runs into a per-module sequence where 1 is
// a dark (bar) module and 0 a light (space) module.
func expandModules(r transition.Runs) []uint8 {
	total := transition.ModuleCount(r)
	if total == 0 || total > maxModules {
		return nil
	}
	bits := make([]uint8, 0, total)
	dark := r.StartsDark
	for _, w := range r.Widths {
		v := uint8(0)
		if dark {
			v = 1
		}
		for itn := 0; itn < w; itn++ {
			bits = append(bits, v)
		}
		dark = !dark
	}
	return bits
}

// minAgreement is the fuzzy-match floor for a 7-module digit window: at least
// 6 of 7 module positions (>= 80%) must agree exactly. The same tolerance is
// applied uniformly at every digit position.
const minAgreement = 6

type patternSet struct {
	parity   byte
	patterns *[10][7]uint8
}

// matchDigit matches a 7-module window against the given pattern sets.
// Ambiguous ties are rejected rather than guessed.
func matchDigit(window []uint8, sets []patternSet) (digit int, parity byte, ok bool) {
	if len(window) < 7 {
		return 0, 0, false
	}
	bestDigit, bestParity, bestCount, ties := -1, byte(0), 0, 0
	for _, set := range sets {
		for d := 0; d < 10; d++ {
			count := 0
			for i := 0; i < 7; i++ {
				if window[i] == set.patterns[d][i] {
					count++
				}
			}
			switch {
			case count > bestCount:
				bestDigit, bestParity, bestCount, ties = d, set.parity, count, 1
			case count == bestCount:
				ties++
			}
		}
	}
	if bestCount < minAgreement || ties != 1 {
		return 0, 0, false
	}
	return bestDigit, bestParity, true
}

// hasGuard reports whether bits[off:] begins with the given guard pattern.
func hasGuard(bits []uint8, off int, guard []uint8) bool {
	if off < 0 || off+len(guard) > len(bits) {
		return false
	}
	for i, g := range guard {
		if bits[off+i] != g {
			return false
		}
	}
	return true
}

var (
	sideGuard   = []uint8{1, 0, 1}
	centerGuard = []uint8{0, 1, 0, 1, 0}
)
