package symbology

import (
	"strings"

	"github.com/strichware/bardec/internal/transition"
)

// ean13Modules is the full symbol width: 3 + 42 + 5 + 42 + 3.
const ean13Modules = 95

// EAN13 decodes EAN-13 symbols. The first payload digit is not encoded as a
// pattern of its own; it is derived from the L/G parity word of the six
// left-half digits.
type EAN13 struct{}

func (EAN13) Name() string { return "ean13" }

func (EAN13) Decode(runs transition.Runs) (Candidate, bool) {
	if transition.ModuleCount(runs) < ean13Modules {
		return Candidate{}, false
	}
	bits := expandModules(runs)
	for p := 0; p+ean13Modules <= len(bits); p++ {
		if p > 0 && bits[p-1] != 0 {
			continue // start guard must open a dark run
		}
		if !hasGuard(bits, p, sideGuard) {
			continue
		}
		if cand, ok := decodeEAN13At(bits, p); ok {
			return cand, true
		}
	}
	return Candidate{}, false
}

func decodeEAN13At(bits []uint8, p int) (Candidate, bool) {
	var digits strings.Builder
	var parityWord strings.Builder

	leftSets := []patternSet{
		{parity: 'L', patterns: &leftOdd},
		{parity: 'G', patterns: &leftEven},
	}
	off := p + 3
	for itn := 0; itn < 6; itn++ {
		d, parity, ok := matchDigit(bits[off:off+7], leftSets)
		if !ok {
			return Candidate{}, false
		}
		digits.WriteByte(byte('0' + d))
		parityWord.WriteByte(parity)
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

	first := firstDigitFromParity(parityWord.String())
	if first < 0 {
		return Candidate{}, false
	}

	payload := string(byte('0'+first)) + digits.String()
	return Candidate{
		Symbology:  "ean13",
		Payload:    payload,
		ChecksumOK: ValidateChecksum(payload),
	}, true
}

func firstDigitFromParity(word string) int {
	for d, w := range firstDigitParity {
		if w == word {
			return d
		}
	}
	return -1
}
