// Package validate implements the structural checks applied to registry
// artifacts (distribution.json, merkle-tree.json) before merge. Validators are
// pure functions over file contents: every applicable check runs and is
// reported, so one invocation surfaces the complete defect list for a file.
package validate

import (
	"encoding/json"
	"os"
	"slices"

	"github.com/Saturn-DEX/distributions/internal/chains"
)

// requiredDistributionFields are the top-level fields every
// distribution.json must carry.
var requiredDistributionFields = []string{
	"chainId",
	"chainName",
	"name",
	"description",
	"token",
	"distributor",
	"registry",
	"merkleRoot",
	"createdAt",
	"totalRecipients",
	"totalAmount",
	"createdBy",
}

// requiredTokenFields are the fields required inside the token object.
var requiredTokenFields = []string{"address", "name", "symbol", "decimals", "type"}

// tokenTypes enumerates the accepted token type values.
var tokenTypes = []string{"NATIVE", "ERC20", "ERC223"}

// ValidateDistributionFile reads and validates one distribution.json.
// The returned slice is empty for a valid file. An unreadable or unparsable
// file yields a single parse error; all other checks accumulate.
func ValidateDistributionFile(path string, table chains.Table) []Error {
	data, err := os.ReadFile(path)
	if err != nil {
		return []Error{parseError(err)}
	}

	return ValidateDistribution(data, table)
}

// ValidateDistribution validates the raw contents of a distribution.json
// against the given chain table.
func ValidateDistribution(data []byte, table chains.Table) []Error {
	// The top level decodes to a raw field map so that field presence is
	// distinguishable from zero values. Each present field then decodes to
	// its typed form; a failed typed decode is a format error for that
	// field, never a whole-document parse error.
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return []Error{parseError(err)}
	}

	var errs []Error

	for _, name := range requiredDistributionFields {
		if _, ok := doc[name]; !ok {
			errs = append(errs, missingField(name))
		}
	}

	chainName, hasChainName := asString(doc["chainName"])
	chainID, hasChainID := asInt(doc["chainId"])

	if hasChainName {
		expectedID, known := table.ID(chainName)
		if !known {
			errs = append(errs, newError(KindFormat, "chainName", "Unsupported chain: %s", chainName))
		} else if hasChainID && expectedID != chainID {
			errs = append(errs, newError(KindConsistency, "chainId",
				"Chain ID mismatch: chainId is %d but %s has chain ID %d", chainID, chainName, expectedID))
		}
	}
	if raw, ok := doc["chainId"]; ok && !hasChainID {
		errs = append(errs, newError(KindFormat, "chainId", "Invalid chainId value: %s", rawValue(raw)))
	}

	for _, field := range []string{"distributor", "registry", "createdBy"} {
		errs = checkAddress(errs, doc[field], field)
	}

	if raw, ok := doc["token"]; ok {
		errs = append(errs, validateToken(raw)...)
	}

	if raw, ok := doc["merkleRoot"]; ok {
		if root, isStr := asString(raw); !isStr || !IsBytes32(root) {
			errs = append(errs, newError(KindFormat, "merkleRoot", "Invalid merkleRoot format: %s", rawValue(raw)))
		}
	}

	if raw, ok := doc["totalRecipients"]; ok {
		if n, isNum := asFloat(raw); !isNum || n < 0 {
			errs = append(errs, newError(KindFormat, "totalRecipients", "Invalid totalRecipients value: %s", rawValue(raw)))
		}
	}

	return errs
}

// MerkleRootFromFile returns the merkleRoot field of a distribution.json, or
// "" when the file is missing, unparsable, or the field is absent or not a
// string. Used to source the expected root for the sibling merkle tree check.
func MerkleRootFromFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var doc struct {
		MerkleRoot string `json:"merkleRoot"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return ""
	}

	return doc.MerkleRoot
}

func validateToken(raw json.RawMessage) []Error {
	var token map[string]json.RawMessage
	if err := json.Unmarshal(raw, &token); err != nil {
		return []Error{newError(KindFormat, "token", "Invalid token value: must be an object")}
	}

	var errs []Error
	for _, name := range requiredTokenFields {
		if _, ok := token[name]; !ok {
			errs = append(errs, missingTokenField(name))
		}
	}

	errs = checkAddress(errs, token["address"], "token.address")

	if rawType, ok := token["type"]; ok {
		if typ, isStr := asString(rawType); !isStr || !slices.Contains(tokenTypes, typ) {
			errs = append(errs, newError(KindFormat, "token.type",
				"Invalid token type: %s (expected one of NATIVE, ERC20, ERC223)", rawValue(rawType)))
		}
	}

	return errs
}

// checkAddress appends an error when raw is present but is not a well-formed
// address. Absent fields are skipped: they are already caught by the
// required-field check.
func checkAddress(errs []Error, raw json.RawMessage, field string) []Error {
	if raw == nil {
		return errs
	}

	if addr, isStr := asString(raw); !isStr || !IsAddress(addr) {
		return append(errs, invalidAddress(field, rawValue(raw)))
	}

	return errs
}

func asString(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}

	return s, true
}

func asFloat(raw json.RawMessage) (float64, bool) {
	if raw == nil {
		return 0, false
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}

	return n, true
}

func asInt(raw json.RawMessage) (int64, bool) {
	if raw == nil {
		return 0, false
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}

	i, err := n.Int64()
	if err != nil {
		return 0, false
	}

	return i, true
}

// rawValue renders a raw JSON value for an error message, unquoting plain
// strings so messages read naturally.
func rawValue(raw json.RawMessage) string {
	if s, ok := asString(raw); ok {
		return s
	}

	return string(raw)
}
