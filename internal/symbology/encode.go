package symbology

import (
	"fmt"

	"github.com/strichware/bardec/internal/transition"
)

// Module encoders, used by the round-trip tests and the synthetic fixture
// renderer. They intentionally accept payloads with invalid check digits so
// checksum rejection paths can be exercised.

// EncodeEAN13Modules renders a 13-digit payload into its 95-module sequence.
func EncodeEAN13Modules(payload string) ([]uint8, error) {
	if err := checkDigits(payload, 13); err != nil {
		return nil, err
	}
	first := int(payload[0] - '0')
	parity := firstDigitParity[first]

	bits := make([]uint8, 0, ean13Modules)
	bits = append(bits, sideGuard...)
	for i := 0; i < 6; i++ {
		d := int(payload[1+i] - '0')
		if parity[i] == 'L' {
			bits = append(bits, leftOdd[d][:]...)
		} else {
			bits = append(bits, leftEven[d][:]...)
		}
	}
	bits = append(bits, centerGuard...)
	for i := 0; i < 6; i++ {
		d := int(payload[7+i] - '0')
		bits = append(bits, right[d][:]...)
	}
	bits = append(bits, sideGuard...)
	return bits, nil
}

// EncodeEAN8Modules renders an 8-digit payload into its 67-module sequence.
func EncodeEAN8Modules(payload string) ([]uint8, error) {
	if err := checkDigits(payload, 8); err != nil {
		return nil, err
	}
	bits := make([]uint8, 0, ean8Modules)
	bits = append(bits, sideGuard...)
	for i := 0; i < 4; i++ {
		d := int(payload[i] - '0')
		bits = append(bits, leftOdd[d][:]...)
	}
	bits = append(bits, centerGuard...)
	for i := 0; i < 4; i++ {
		d := int(payload[4+i] - '0')
		bits = append(bits, right[d][:]...)
	}
	bits = append(bits, sideGuard...)
	return bits, nil
}

// EncodeUPCAModules renders a 12-digit payload into its 95-module sequence.
func EncodeUPCAModules(payload string) ([]uint8, error) {
	if err := checkDigits(payload, 12); err != nil {
		return nil, err
	}
	bits := make([]uint8, 0, ean13Modules)
	bits = append(bits, sideGuard...)
	for i := 0; i < 6; i++ {
		d := int(payload[i] - '0')
		bits = append(bits, leftOdd[d][:]...)
	}
	bits = append(bits, centerGuard...)
	for i := 0; i < 6; i++ {
		d := int(payload[6+i] - '0')
		bits = append(bits, right[d][:]...)
	}
	bits = append(bits, sideGuard...)
	return bits, nil
}

// RunsFromModules collapses a module sequence into the run representation the
// transition extractor would produce for a perfectly quantized symbol.
func RunsFromModules(bits []uint8) transition.Runs {
	if len(bits) == 0 {
		return transition.Runs{}
	}
	var widths []int
	width := 1
	for i := 1; i < len(bits); i++ {
		if bits[i] == bits[i-1] {
			width++
			continue
		}
		widths = append(widths, width)
		width = 1
	}
	widths = append(widths, width)
	return transition.Runs{Widths: widths, StartsDark: bits[0] == 1}
}

func checkDigits(payload string, wantLen int) error {
	if len(payload) != wantLen {
		return fmt.Errorf("payload must be %d digits, got %d", wantLen, len(payload))
	}
	for i := 0; i < len(payload); i++ {
		if payload[i] < '0' || payload[i] > '9' {
			return fmt.Errorf("payload must be numeric, got %q", payload)
		}
	}
	return nil
}
