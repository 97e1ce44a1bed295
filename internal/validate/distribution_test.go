package validate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saturn-DEX/distributions/internal/chains"
)

const (
	testAddress = "0x1234567890abcdef1234567890abcdef12345678"
	testRoot    = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

// validDistribution returns a distribution document that passes every check,
// as a mutable map so tests can break individual fields.
func validDistribution() map[string]any {
	return map[string]any{
		"chainId":   int64(8453),
		"chainName": "base",
		"name":      "Test Drop",
		"description": "Season one rewards for testnet participants, " +
			"claimable via the registry distributor.",
		"token": map[string]any{
			"address":  testAddress,
			"name":     "Test Token",
			"symbol":   "TST",
			"decimals": 18,
			"type":     "ERC20",
		},
		"distributor":     testAddress,
		"registry":        testAddress,
		"createdBy":       testAddress,
		"merkleRoot":      testRoot,
		"createdAt":       "2024-06-01T00:00:00Z",
		"totalRecipients": 3,
		"totalAmount":     "3000",
	}
}

func marshal(t *testing.T, doc any) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func TestValidateDistribution_Valid(t *testing.T) {
	errs := ValidateDistribution(marshal(t, validDistribution()), chains.Builtin())
	assert.Empty(t, errs)
}

func TestValidateDistribution_ParseFailure(t *testing.T) {
	errs := ValidateDistribution([]byte("{not json"), chains.Builtin())

	require.Len(t, errs, 1)
	assert.Equal(t, KindParse, errs[0].Kind)
	assert.Contains(t, errs[0].Message, "Failed to parse JSON")
}

func TestValidateDistribution_MissingFields(t *testing.T) {
	errs := ValidateDistribution([]byte(`{}`), chains.Builtin())

	require.Len(t, errs, len(requiredDistributionFields))
	for i, name := range requiredDistributionFields {
		assert.Equal(t, KindSchema, errs[i].Kind)
		assert.Equal(t, "Missing required field: "+name, errs[i].Message)
	}
}

func TestValidateDistribution_MissingTokenProducesNoSubFieldErrors(t *testing.T) {
	doc := validDistribution()
	delete(doc, "token")

	errs := ValidateDistribution(marshal(t, doc), chains.Builtin())

	require.Len(t, errs, 1)
	assert.Equal(t, "Missing required field: token", errs[0].Message)
}

func TestValidateDistribution_ChainIDMismatch(t *testing.T) {
	doc := validDistribution()
	doc["chainName"] = "ethereum"
	doc["chainId"] = int64(61)

	errs := ValidateDistribution(marshal(t, doc), chains.Builtin())

	require.Len(t, errs, 1)
	assert.Equal(t, KindConsistency, errs[0].Kind)
	assert.Contains(t, errs[0].Message, "61")
	assert.Contains(t, errs[0].Message, "1")
}

func TestValidateDistribution_UnsupportedChain(t *testing.T) {
	doc := validDistribution()
	doc["chainName"] = "hyperspace"
	delete(doc, "chainId")

	errs := ValidateDistribution(marshal(t, doc), chains.Builtin())

	require.Len(t, errs, 2)
	assert.Equal(t, "Missing required field: chainId", errs[0].Message)
	assert.Equal(t, "Unsupported chain: hyperspace", errs[1].Message)
}

func TestValidateDistribution_Addresses(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
	}{
		{name: "distributor not hex", field: "distributor", value: "0x123"},
		{name: "registry missing prefix", field: "registry", value: strings.Repeat("ab", 20)},
		{name: "createdBy wrong type", field: "createdBy", value: 42},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := validDistribution()
			doc[tc.field] = tc.value

			errs := ValidateDistribution(marshal(t, doc), chains.Builtin())

			require.Len(t, errs, 1)
			assert.Equal(t, KindFormat, errs[0].Kind)
			assert.Contains(t, errs[0].Message, "Invalid address in "+tc.field)
		})
	}
}

func TestValidateDistribution_TokenChecks(t *testing.T) {
	t.Run("missing token fields", func(t *testing.T) {
		doc := validDistribution()
		doc["token"] = map[string]any{"address": testAddress}

		errs := ValidateDistribution(marshal(t, doc), chains.Builtin())

		require.Len(t, errs, 4)
		for _, e := range errs {
			assert.Contains(t, e.Message, "Missing required token field:")
		}
	})

	t.Run("invalid token type", func(t *testing.T) {
		doc := validDistribution()
		token := doc["token"].(map[string]any)
		token["type"] = "ERC721"

		errs := ValidateDistribution(marshal(t, doc), chains.Builtin())

		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "Invalid token type: ERC721")
	})

	t.Run("invalid token address", func(t *testing.T) {
		doc := validDistribution()
		token := doc["token"].(map[string]any)
		token["address"] = "not-an-address"

		errs := ValidateDistribution(marshal(t, doc), chains.Builtin())

		require.Len(t, errs, 1)
		assert.Equal(t, "Invalid address in token.address: not-an-address", errs[0].Message)
	})

	t.Run("token is not an object", func(t *testing.T) {
		doc := validDistribution()
		doc["token"] = "ERC20"

		errs := ValidateDistribution(marshal(t, doc), chains.Builtin())

		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "Invalid token value")
	})
}

func TestValidateDistribution_MerkleRootFormat(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "too short", value: "0x" + strings.Repeat("a", 63)},
		{name: "missing prefix", value: strings.Repeat("a", 64)},
		{name: "wrong type", value: 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := validDistribution()
			doc["merkleRoot"] = tc.value

			errs := ValidateDistribution(marshal(t, doc), chains.Builtin())

			require.Len(t, errs, 1)
			assert.Contains(t, errs[0].Message, "Invalid merkleRoot format")
		})
	}
}

func TestValidateDistribution_TotalRecipients(t *testing.T) {
	tests := []struct {
		name        string
		value       any
		expectError bool
	}{
		{name: "zero", value: 0, expectError: false},
		{name: "positive", value: 100, expectError: false},
		{name: "negative", value: -1, expectError: true},
		{name: "string", value: "3", expectError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := validDistribution()
			doc["totalRecipients"] = tc.value

			errs := ValidateDistribution(marshal(t, doc), chains.Builtin())

			if tc.expectError {
				require.Len(t, errs, 1)
				assert.Contains(t, errs[0].Message, "Invalid totalRecipients value")
				return
			}
			assert.Empty(t, errs)
		})
	}
}

func TestValidateDistribution_ExtraFieldsIgnored(t *testing.T) {
	doc := validDistribution()
	doc["website"] = "https://example.com"
	doc["tags"] = []string{"airdrop"}

	errs := ValidateDistribution(marshal(t, doc), chains.Builtin())
	assert.Empty(t, errs)
}

func TestValidateDistributionFile_Unreadable(t *testing.T) {
	errs := ValidateDistributionFile(filepath.Join(t.TempDir(), "missing.json"), chains.Builtin())

	require.Len(t, errs, 1)
	assert.Equal(t, KindParse, errs[0].Kind)
}

func TestMerkleRootFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("present", func(t *testing.T) {
		path := filepath.Join(dir, "distribution.json")
		require.NoError(t, os.WriteFile(path, marshal(t, validDistribution()), 0o644))
		assert.Equal(t, testRoot, MerkleRootFromFile(path))
	})

	t.Run("missing file", func(t *testing.T) {
		assert.Empty(t, MerkleRootFromFile(filepath.Join(dir, "nope.json")))
	})

	t.Run("unparsable file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
		assert.Empty(t, MerkleRootFromFile(path))
	})
}
