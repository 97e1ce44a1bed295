package validate

import (
	"regexp"
)

var (
	// addressPattern matches a 20-byte hex address with 0x prefix.
	addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

	// bytes32Pattern matches a 32-byte hex value with 0x prefix.
	bytes32Pattern = regexp.MustCompile(`^0x[a-fA-F0-9]{64}$`)

	// amountPattern matches a base-10 unsigned integer string.
	amountPattern = regexp.MustCompile(`^\d+$`)
)

// IsAddress reports whether s is a well-formed 20-byte hex address.
func IsAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// IsBytes32 reports whether s is a well-formed 32-byte hex value.
func IsBytes32(s string) bool {
	return bytes32Pattern.MatchString(s)
}

// IsAmount reports whether s is a well-formed numeric amount string.
func IsAmount(s string) bool {
	return amountPattern.MatchString(s)
}
