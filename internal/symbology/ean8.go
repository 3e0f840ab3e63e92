package symbology

import (
	"strings"

	"github.com/strichware/bardec/internal/transition"
)

// ean8Modules is the full symbol width: 3 + 28 + 5 + 28 + 3.
const ean8Modules = 67

// EAN8 decodes EAN-8 symbols: four odd-parity left digits, four right digits,
// the last of which is the check digit.
type EAN8 struct{}

func (EAN8) Name() string { return "ean8" }

func (EAN8) Decode(runs transition.Runs) (Candidate, bool) {
	if transition.ModuleCount(runs) < ean8Modules {
		return Candidate{}, false
	}
	bits := expandModules(runs)
	for p := 0; p+ean8Modules <= len(bits); p++ {
		if p > 0 && bits[p-1] != 0 {
			continue
		}
		if !hasGuard(bits, p, sideGuard) {
			continue
		}
		if cand, ok := decodeEAN8At(bits, p); ok {
			return cand, true
		}
	}
	return Candidate{}, false
}

func decodeEAN8At(bits []uint8, p int) (Candidate, bool) {
	var digits strings.Builder

	leftSets := []patternSet{{parity: 'L', patterns: &leftOdd}}
	off := p + 3
	for itn := 0; itn < 4; itn++ {
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
	for itn := 0; itn < 4; itn++ {
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
		Symbology:  "ean8",
		Payload:    payload,
		ChecksumOK: ValidateChecksum(payload),
	}, true
}
