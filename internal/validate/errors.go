package validate

import (
	"fmt"
)

// Kind classifies a validation error.
type Kind string

const (
	// KindParse covers malformed or unreadable JSON. Fatal for the file.
	KindParse Kind = "parse"

	// KindSchema covers a required field that is absent.
	KindSchema Kind = "schema"

	// KindFormat covers a field that is present but fails its format
	// predicate (address, bytes32, numeric string, enum membership).
	KindFormat Kind = "format"

	// KindConsistency covers cross-field or cross-file mismatches
	// (chainId vs chainName, tree root vs distribution merkleRoot).
	KindConsistency Kind = "consistency"

	// KindStructural covers collection-shape invariant violations
	// (duplicate indices, tree-length floor).
	KindStructural Kind = "structural"
)

// Error is one validation finding for a file. Validators accumulate these and
// return them as an immutable slice; they never mutate shared state.
type Error struct {
	Kind    Kind   `json:"kind"    yaml:"kind"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (e Error) Error() string {
	return e.Message
}

func newError(kind Kind, field string, format string, args ...any) Error {
	return Error{
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func parseError(err error) Error {
	return newError(KindParse, "", "Failed to parse JSON: %v", err)
}

func missingField(name string) Error {
	return newError(KindSchema, name, "Missing required field: %s", name)
}

func missingTokenField(name string) Error {
	return newError(KindSchema, "token."+name, "Missing required token field: %s", name)
}

func invalidAddress(field string, value string) Error {
	return newError(KindFormat, field, "Invalid address in %s: %s", field, value)
}

// Messages returns the rendered message of every error, in order.
func Messages(errs []Error) []string {
	if len(errs) == 0 {
		return nil
	}

	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Message)
	}

	return out
}
