package errors

import (
	"strings"
	"unicode"
)

// maxAddressLength bounds user-supplied node addresses. Chain addresses are
// far shorter; the limit only guards the HTTP and CLI inputs.
const maxAddressLength = 256

// ValidateAddress validates a node address received from an interaction event.
//
// Addresses are opaque identifiers, so the rules only reject input that can
// never name a node:
//   - No empty addresses
//   - No control characters
//   - Maximum length of 256 characters
func ValidateAddress(address string) error {
	if address == "" {
		return New(ErrCodeInvalidAddress, "address cannot be empty")
	}
	if len(address) > maxAddressLength {
		return New(ErrCodeInvalidAddress, "address too long (max %d characters)", maxAddressLength)
	}
	for _, r := range address {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidAddress, "address contains invalid characters")
		}
	}
	return nil
}

// ValidateStep validates a reveal step index. Only the steps that have a
// predefined subgraph are accepted; step 1 is the bootstrap graph.
func ValidateStep(step int) error {
	if step < 2 || step > 3 {
		return New(ErrCodeInvalidStep, "step %d has no reveal subgraph (want 2 or 3)", step)
	}
	return nil
}

// ValidateFormat validates an output format name against the allowed set.
func ValidateFormat(format string, allowed []string) error {
	for _, a := range allowed {
		if strings.EqualFold(format, a) {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
}
