// Package runner drives the validators over a resolved file set and collects
// per-file results. Files are processed sequentially, in discovery order.
package runner

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/Saturn-DEX/distributions/internal/chains"
	"github.com/Saturn-DEX/distributions/internal/discover"
	"github.com/Saturn-DEX/distributions/internal/merkle"
	"github.com/Saturn-DEX/distributions/internal/validate"
)

// FileResult is the outcome of validating one file.
type FileResult struct {
	Path   string   `json:"path"             yaml:"path"`
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Valid reports whether the file passed every check.
func (r FileResult) Valid() bool {
	return len(r.Errors) == 0
}

// Runner validates registry files against a chain table.
type Runner struct {
	logger     hclog.Logger
	table      chains.Table
	verifyRoot bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithRootVerification enables the opt-in cryptographic recomputation of the
// merkle root from the document's leaves. Off by default; the structural
// checks never depend on it.
func WithRootVerification(enabled bool) Option {
	return func(r *Runner) {
		r.verifyRoot = enabled
	}
}

func New(logger hclog.Logger, table chains.Table, opt ...Option) *Runner {
	r := &Runner{
		logger: logger,
		table:  table,
	}
	for _, o := range opt {
		o(r)
	}

	return r
}

// Distributions validates every distribution.json in paths, in order.
func (r *Runner) Distributions(paths []string) []FileResult {
	results := make([]FileResult, 0, len(paths))

	for _, path := range paths {
		errs := validate.ValidateDistributionFile(path, r.table)
		r.logger.Debug("validated distribution", "path", path, "errors", len(errs))

		results = append(results, FileResult{
			Path:   path,
			Errors: validate.Messages(errs),
		})
	}

	return results
}

// Trees validates every merkle-tree.json in paths, in order. The expected
// root for each file is sourced from the sibling distribution.json, or
// omitted when that file is missing or unparsable.
func (r *Runner) Trees(paths []string) []FileResult {
	results := make([]FileResult, 0, len(paths))

	for _, path := range paths {
		results = append(results, r.tree(path))
	}

	return results
}

func (r *Runner) tree(path string) FileResult {
	doc, err := validate.ParseTreeFile(path)
	if err != nil {
		return FileResult{Path: path, Errors: []string{err.Error()}}
	}

	sibling := filepath.Join(filepath.Dir(path), discover.DistributionFilename)
	expectedRoot := validate.MerkleRootFromFile(sibling)

	msgs := validate.Messages(doc.Validate(expectedRoot))

	if r.verifyRoot {
		if err := merkle.VerifyRoot(doc); err != nil {
			msgs = append(msgs, fmt.Sprintf("Root verification failed: %v", err))
		}
	}

	r.logger.Debug("validated merkle tree", "path", path, "shape", doc.Shape(), "errors", len(msgs))

	return FileResult{Path: path, Errors: msgs}
}

// FailureCount returns how many results carry at least one error.
func FailureCount(results []FileResult) int {
	n := 0
	for _, res := range results {
		if !res.Valid() {
			n++
		}
	}

	return n
}
