package pipeline

// ValidatePayload reports whether a decoded payload looks like a plausible
// product code: after stripping non-digit characters, between 8 and 20 digits
// remain. QR payloads are free-form and bypass this check.
func ValidatePayload(payload string) bool {
	digits := 0
	for _, r := range payload {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 8 && digits <= 20
}

// NormalizePayload strips non-digit characters from a 1-D payload.
func NormalizePayload(payload string) string {
	out := make([]byte, 0, len(payload))
	for i := 0; i < len(payload); i++ {
		if payload[i] >= '0' && payload[i] <= '9' {
			out = append(out, payload[i])
		}
	}
	return string(out)
}
