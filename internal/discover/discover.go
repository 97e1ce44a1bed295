// Package discover resolves the set of registry files a validation run
// operates on: either the CI-supplied changed-file list, or a walk over the
// per-chain registry folders.
package discover

import (
	"os"
	"path/filepath"
)

const (
	// DistributionFilename is the per-distributor metadata file.
	DistributionFilename = "distribution.json"

	// MerkleTreeFilename is the per-distributor merkle tree file.
	MerkleTreeFilename = "merkle-tree.json"
)

// FilterChanged returns the entries of the changed-file list whose base name
// matches filename, preserving list order.
func FilterChanged(changed []string, filename string) []string {
	var out []string
	for _, path := range changed {
		if filepath.Base(path) == filename {
			out = append(out, path)
		}
	}

	return out
}

// WalkRegistry enumerates every <root>/<chainFolder>/<distributor>/<filename>
// that exists on disk. Chain folders are visited in the given order;
// distributor folders in directory-listing order. Folders that do not exist
// are skipped silently: the registry only grows chains as they are published.
func WalkRegistry(root string, chainFolders []string, filename string) []string {
	var out []string

	for _, chain := range chainFolders {
		chainDir := filepath.Join(root, chain)

		entries, err := os.ReadDir(chainDir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			path := filepath.Join(chainDir, entry.Name(), filename)
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				out = append(out, path)
			}
		}
	}

	return out
}

// Resolve returns the working file set for one validator run: the matching
// entries of the changed-file list when any are present, otherwise a full
// registry walk.
func Resolve(root string, changed []string, chainFolders []string, filename string) []string {
	if files := FilterChanged(changed, filename); len(files) > 0 {
		return files
	}

	return WalkRegistry(root, chainFolders, filename)
}
