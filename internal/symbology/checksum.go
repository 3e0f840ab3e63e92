package symbology

// ChecksumDigit computes the GS1 check digit for a digit string that does not
// yet include its check digit. Per GS1, the data digit adjacent to the check
// digit always carries weight 3, alternating 3-1-3-... leftwards. For the
// 12-digit EAN-13 body this phases out to weight 1 on even (0-indexed)
// positions; for the 7-digit EAN-8 and 11-digit UPC-A bodies to weight 3 on
// even positions.
func ChecksumDigit(digits string) int {
	sum := 0
	n := len(digits)
	for i := 0; i < n; i++ {
		d := int(digits[i] - '0')
		if (n-1-i)%2 == 0 {
			sum += 3 * d
		} else {
			sum += d
		}
	}
	return (10 - sum%10) % 10
}

// ValidateChecksum reports whether the final digit of payload is the correct
// GS1 check digit for the preceding digits.
func ValidateChecksum(payload string) bool {
	if len(payload) < 2 {
		return false
	}
	for i := 0; i < len(payload); i++ {
		if payload[i] < '0' || payload[i] > '9' {
			return false
		}
	}
	return ChecksumDigit(payload[:len(payload)-1]) == int(payload[len(payload)-1]-'0')
}
