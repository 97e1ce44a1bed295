package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saturn-DEX/distributions/internal/chains"
	"github.com/Saturn-DEX/distributions/internal/discover"
	"github.com/Saturn-DEX/distributions/internal/merkle"
	"github.com/Saturn-DEX/distributions/internal/validate"
)

const testAddress = "0x1234567890abcdef1234567890abcdef12345678"

func testRoot(c string) string {
	return "0x" + strings.Repeat(c, 64)
}

func writeJSON(t *testing.T, path string, doc any) {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// seedPair writes a well-formed distribution/tree pair for chain base into a
// distributor folder and returns the two file paths.
func seedPair(t *testing.T, dir string, root string) (string, string) {
	t.Helper()

	distribution := map[string]any{
		"chainId":     8453,
		"chainName":   "base",
		"name":        "Season One",
		"description": "Rewards",
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
		"merkleRoot":      root,
		"createdAt":       "2024-06-01T00:00:00Z",
		"totalRecipients": 3,
		"totalAmount":     "3000",
	}

	leaves := make([]any, 0, 3)
	for i := 0; i < 3; i++ {
		leaves = append(leaves, map[string]any{
			"leafIndex": i,
			"address":   fmt.Sprintf("0x%040d", i+1),
			"amount":    "1000",
		})
	}
	tree := map[string]any{"root": root, "leaves": leaves}

	distPath := filepath.Join(dir, discover.DistributionFilename)
	treePath := filepath.Join(dir, discover.MerkleTreeFilename)
	writeJSON(t, distPath, distribution)
	writeJSON(t, treePath, tree)

	return distPath, treePath
}

func TestRunner_EndToEndValidPair(t *testing.T) {
	dir := t.TempDir()
	distPath, treePath := seedPair(t, dir, testRoot("a"))

	run := New(hclog.NewNullLogger(), chains.Builtin())

	results := run.Distributions([]string{distPath})
	results = append(results, run.Trees([]string{treePath})...)

	require.Len(t, results, 2)
	for _, res := range results {
		assert.True(t, res.Valid(), "unexpected errors for %s: %v", res.Path, res.Errors)
	}
	assert.Zero(t, FailureCount(results))
}

func TestRunner_Distributions_CollectsErrors(t *testing.T) {
	dir := t.TempDir()

	badPath := filepath.Join(dir, discover.DistributionFilename)
	writeJSON(t, badPath, map[string]any{"chainName": "base"})

	run := New(hclog.NewNullLogger(), chains.Builtin())
	results := run.Distributions([]string{badPath})

	require.Len(t, results, 1)
	assert.False(t, results[0].Valid())
	assert.Contains(t, results[0].Errors, "Missing required field: chainId")
	assert.Equal(t, 1, FailureCount(results))
}

func TestRunner_Trees_RootMismatchWithSibling(t *testing.T) {
	dir := t.TempDir()
	_, treePath := seedPair(t, dir, testRoot("a"))

	// Rewrite the tree with a different root than the sibling records.
	writeJSON(t, treePath, map[string]any{
		"root":   testRoot("b"),
		"leaves": []any{},
	})

	run := New(hclog.NewNullLogger(), chains.Builtin())
	results := run.Trees([]string{treePath})

	require.Len(t, results, 1)
	require.Len(t, results[0].Errors, 1)
	assert.Contains(t, results[0].Errors[0], "Merkle root mismatch")
}

func TestRunner_Trees_MissingSiblingSkipsCrossCheck(t *testing.T) {
	dir := t.TempDir()

	treePath := filepath.Join(dir, discover.MerkleTreeFilename)
	writeJSON(t, treePath, map[string]any{
		"root": testRoot("b"),
		"leaves": []any{
			map[string]any{"leafIndex": 0, "address": testAddress, "amount": "1"},
		},
	})

	run := New(hclog.NewNullLogger(), chains.Builtin())
	results := run.Trees([]string{treePath})

	require.Len(t, results, 1)
	assert.True(t, results[0].Valid(), "errors: %v", results[0].Errors)
}

func TestRunner_Trees_ParseFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	treePath := filepath.Join(dir, discover.MerkleTreeFilename)
	require.NoError(t, os.WriteFile(treePath, []byte("{broken"), 0o644))

	run := New(hclog.NewNullLogger(), chains.Builtin())
	results := run.Trees([]string{treePath})

	require.Len(t, results, 1)
	require.Len(t, results[0].Errors, 1)
	assert.Contains(t, results[0].Errors[0], "parse JSON")
}

func TestRunner_Trees_VerifyRoot(t *testing.T) {
	dir := t.TempDir()

	leaves := []validate.TreeLeaf{
		{Index: 0, Address: testAddress, Amount: "100"},
		{Index: 1, Address: "0x" + strings.Repeat("2", 40), Amount: "200"},
	}
	computed, err := merkle.ComputeRoot(leaves)
	require.NoError(t, err)

	treeDoc := map[string]any{
		"root": computed,
		"leaves": []any{
			map[string]any{"leafIndex": 0, "address": testAddress, "amount": "100"},
			map[string]any{"leafIndex": 1, "address": "0x" + strings.Repeat("2", 40), "amount": "200"},
		},
	}
	treePath := filepath.Join(dir, discover.MerkleTreeFilename)
	writeJSON(t, treePath, treeDoc)

	t.Run("matching root passes", func(t *testing.T) {
		run := New(hclog.NewNullLogger(), chains.Builtin(), WithRootVerification(true))
		results := run.Trees([]string{treePath})

		require.Len(t, results, 1)
		assert.True(t, results[0].Valid(), "errors: %v", results[0].Errors)
	})

	t.Run("stale root fails only with verification on", func(t *testing.T) {
		staleDoc := treeDoc
		staleDoc["root"] = testRoot("d")
		stalePath := filepath.Join(t.TempDir(), discover.MerkleTreeFilename)
		writeJSON(t, stalePath, staleDoc)

		run := New(hclog.NewNullLogger(), chains.Builtin())
		results := run.Trees([]string{stalePath})
		require.Len(t, results, 1)
		assert.True(t, results[0].Valid())

		run = New(hclog.NewNullLogger(), chains.Builtin(), WithRootVerification(true))
		results = run.Trees([]string{stalePath})
		require.Len(t, results, 1)
		require.Len(t, results[0].Errors, 1)
		assert.Contains(t, results[0].Errors[0], "Root verification failed")
	})
}
