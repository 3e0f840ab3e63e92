package symbology

import (
	"strings"

	"github.com/strichware/bardec/internal/transition"
)

// upcaMinModules is the cheap structural bail-out; a full UPC-A symbol spans
// the same 95 modules as EAN-13.
const upcaMinModules = 51

// UPCA decodes UPC-A symbols. Structurally an EAN-13 symbol whose left half
// uses odd parity only (the implied EAN-13 first digit is 0); the payload is
// the 12 encoded digits.
type UPCA struct{}

func (UPCA) Name() string { return "upca" }

func (UPCA) Decode(runs transition.Runs) (Candidate, bool) {
	if transition.ModuleCount(runs) < upcaMinModules {
		return Candidate{}, false
	}
	bits := expandModules(runs)
	for p := 0; p+ean13Modules <= len(bits); p++ {
		if p > 0 && bits[p-1] != 0 {
			continue
		}
		if !hasGuard(bits, p, sideGuard) {
			continue
		}
		if cand, ok := decodeUPCAAt(bits, p); ok {
			return cand, true
		}
	}
	return Candidate{}, false
}

func decodeUPCAAt(bits []uint8, p int) (Candidate, bool) {
	var digits strings.Builder

	leftSets := []patternSet{{parity: 'L', patterns: &leftOdd}}
	off := p + 3
	for itn := 0; itn < 6; itn++ {
		d, _, ok := matchDigit(bits[off:off+7], leftSets)
		if !ok {
			return Candidate{}, false
		}
		digits.WriteByte(byte('0' + d))
		off += 7
	}

	if !hasGuard(bits, off, centerGuard) {
		return Candidate{}, false
	}
	off += 5

	rightSets := []patternSet{{parity: 'R', patterns: &right}}
	for itn := 0; itn < 6; itn++ {
		d, _, ok := matchDigit(bits[off:off+7], rightSets)
		if !ok {
			return Candidate{}, false
		}
		digits.WriteByte(byte('0' + d))
		off += 7
	}

	if !hasGuard(bits, off, sideGuard) {
		return Candidate{}, false
	}

	payload := digits.String()
	return Candidate{
		Symbology:  "upca",
		Payload:    payload,
		ChecksumOK: ValidateChecksum(payload),
	}, true
}
