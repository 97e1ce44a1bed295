// Package merkle recomputes a tree root from document leaves. This is the
// opt-in integrity stage behind --verify-root; the default validation path
// only compares stored root fields.
package merkle

import (
	"fmt"
	"strings"

	merkletree "github.com/wealdtech/go-merkletree/v2"
	"github.com/wealdtech/go-merkletree/v2/sha3"

	"github.com/Saturn-DEX/distributions/internal/validate"
)

// ComputeRoot builds a merkle tree over the given leaves (sha3-256, sorted
// pairing) and returns its root as 0x-prefixed hex.
func ComputeRoot(leaves []validate.TreeLeaf) (string, error) {
	if len(leaves) == 0 {
		return "", fmt.Errorf("no leaves to build a tree from")
	}

	data := make([][]byte, 0, len(leaves))
	for _, leaf := range leaves {
		data = append(data, leafData(leaf))
	}

	tree, err := merkletree.NewTree(
		merkletree.WithData(data),
		merkletree.WithHashType(sha3.New256()),
		merkletree.WithSorted(true),
	)
	if err != nil {
		return "", fmt.Errorf("failed to build merkle tree: %w", err)
	}

	return fmt.Sprintf("0x%x", tree.Root()), nil
}

// VerifyRoot compares the document's stored root against a recomputation
// from its leaves.
func VerifyRoot(doc *validate.TreeDocument) error {
	stored := doc.Root()
	if stored == "" {
		return fmt.Errorf("document has no root to verify")
	}

	computed, err := ComputeRoot(doc.Leaves())
	if err != nil {
		return err
	}

	if !strings.EqualFold(computed, stored) {
		return fmt.Errorf("computed root %s does not match stored root %s", computed, stored)
	}

	return nil
}

// leafData serializes one leaf for hashing. Addresses are lowercased so that
// checksummed and plain forms hash identically.
func leafData(leaf validate.TreeLeaf) []byte {
	return []byte(fmt.Sprintf("%d:%s:%s", leaf.Index, strings.ToLower(leaf.Address), leaf.Amount))
}
