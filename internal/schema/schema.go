// Package schema validates registry files against embedded JSON Schema
// documents. This is the strict, whole-document check behind
// 'validate schema'; the field-level validators remain the CI gate.
package schema

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Saturn-DEX/distributions/internal/discover"
)

//go:embed distribution.schema.json
var distributionSchema string

//go:embed merkle-tree.schema.json
var merkleTreeSchema string

// ForFile returns the embedded schema source for the given registry file,
// selected by base name.
func ForFile(path string) (string, error) {
	switch filepath.Base(path) {
	case discover.DistributionFilename:
		return distributionSchema, nil
	case discover.MerkleTreeFilename:
		return merkleTreeSchema, nil
	default:
		return "", fmt.Errorf("no schema for file: %s (expected %s or %s)",
			filepath.Base(path), discover.DistributionFilename, discover.MerkleTreeFilename)
	}
}

// ValidateFile checks one file against its schema and returns one message
// per violation. An empty slice means the document conforms.
func ValidateFile(path string) ([]string, error) {
	schemaSrc, err := ForFile(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaSrc),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate %s: %w", path, err)
	}

	if result.Valid() {
		return nil, nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, violation := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", violation.Field(), violation.Description()))
	}

	return msgs, nil
}
