package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
)

// FormatStandardV1 identifies the tree document format where the root is the
// first element of the flattened tree array rather than a dedicated field.
const FormatStandardV1 = "standard-v1"

// TreeShape identifies which of the two accepted merkle-tree.json layouts a
// document uses.
type TreeShape string

const (
	// ShapeSimple is {root, leaves: [{leafIndex, address, amount}, ...]}.
	ShapeSimple TreeShape = "simple"

	// ShapeStandard is {format: "standard-v1", tree, values, leafEncoding}.
	ShapeStandard TreeShape = "standard"
)

// TreeLeaf is one normalized (index, address, amount) entry, available for
// well-formed entries of either shape.
type TreeLeaf struct {
	Index   int64
	Address string
	Amount  string
}

// TreeDocument is the typed view of one merkle-tree.json, decoded once at the
// boundary. Downstream checks operate on its typed fields rather than probing
// raw JSON.
type TreeDocument struct {
	shape TreeShape

	format    string
	hasFormat bool

	root    string
	hasRoot bool

	leaves    []json.RawMessage
	hasLeaves bool
	leavesOK  bool

	tree   []json.RawMessage
	hasTree bool
	treeOK  bool

	values    []json.RawMessage
	hasValues bool
	valuesOK  bool

	hasLeafEncoding bool
	leafEncodingOK  bool
}

// ParseTreeFile reads and decodes one merkle-tree.json. Unlike the
// distribution validator, a read or parse failure here is fatal for the call;
// the caller wraps it into a reported error for the file.
func ParseTreeFile(path string) (*TreeDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseTree(data)
}

// ParseTree decodes the raw contents of a merkle-tree.json.
func ParseTree(data []byte) (*TreeDocument, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	doc := &TreeDocument{}

	if rawFormat, ok := raw["format"]; ok {
		doc.hasFormat = true
		doc.format, _ = asString(rawFormat)
	}
	if rawRoot, ok := raw["root"]; ok {
		doc.hasRoot = true
		doc.root, _ = asString(rawRoot)
	}
	if rawLeaves, ok := raw["leaves"]; ok {
		doc.hasLeaves = true
		doc.leavesOK = json.Unmarshal(rawLeaves, &doc.leaves) == nil
	}
	if rawTree, ok := raw["tree"]; ok {
		doc.hasTree = true
		doc.treeOK = json.Unmarshal(rawTree, &doc.tree) == nil
	}
	if rawValues, ok := raw["values"]; ok {
		doc.hasValues = true
		doc.valuesOK = json.Unmarshal(rawValues, &doc.values) == nil
	}
	if rawEncoding, ok := raw["leafEncoding"]; ok {
		doc.hasLeafEncoding = true
		var encoding []string
		doc.leafEncodingOK = json.Unmarshal(rawEncoding, &encoding) == nil
	}

	// A document with a leaves array is the simple shape; everything else is
	// held to the standard shape's requirements.
	if doc.hasLeaves {
		doc.shape = ShapeSimple
	} else {
		doc.shape = ShapeStandard
	}

	return doc, nil
}

// Shape returns the detected document shape.
func (d *TreeDocument) Shape() TreeShape {
	return d.shape
}

// Root returns the document's resolved root: tree[0] for standard-v1
// documents with a non-empty tree, else the root field. Empty when neither
// is present.
func (d *TreeDocument) Root() string {
	if d.format == FormatStandardV1 && d.treeOK && len(d.tree) > 0 {
		if root, ok := asString(d.tree[0]); ok {
			return root
		}
		return rawValue(d.tree[0])
	}

	return d.root
}

// Validate runs all structural checks. expectedRoot is the merkleRoot of the
// sibling distribution.json, or "" when that file is missing or unparsable
// (in which case the cross-check is skipped).
func (d *TreeDocument) Validate(expectedRoot string) []Error {
	var errs []Error

	switch d.shape {
	case ShapeSimple:
		if !d.leavesOK {
			errs = append(errs, newError(KindFormat, "leaves", "Invalid leaves value: must be an array"))
		}
	case ShapeStandard:
		errs = append(errs, d.checkStandardFields()...)
	}

	if expectedRoot != "" {
		if actual := d.Root(); actual == "" {
			errs = append(errs, newError(KindConsistency, "root",
				"Merkle root mismatch: distribution.json has %s but the tree document has no root", expectedRoot))
		} else if actual != expectedRoot {
			errs = append(errs, newError(KindConsistency, "root",
				"Merkle root mismatch: distribution.json has %s but merkle-tree.json has %s", expectedRoot, actual))
		}
	}

	switch d.shape {
	case ShapeSimple:
		if d.leavesOK {
			errs = append(errs, d.validateLeaves()...)
		}
	case ShapeStandard:
		// Per-entry checks need both arrays; a missing values or tree array
		// was already reported above.
		if d.hasValues && d.valuesOK && d.hasTree && d.treeOK {
			errs = append(errs, d.validateValues()...)
			errs = append(errs, d.checkTreeLength()...)
		}
	}

	return errs
}

func (d *TreeDocument) checkStandardFields() []Error {
	var errs []Error

	if !d.hasValues {
		errs = append(errs, missingField("values"))
	} else if !d.valuesOK {
		errs = append(errs, newError(KindFormat, "values", "Invalid values value: must be an array"))
	}

	if !d.hasTree {
		errs = append(errs, missingField("tree"))
	} else if !d.treeOK {
		errs = append(errs, newError(KindFormat, "tree", "Invalid tree value: must be an array"))
	}

	if !d.hasLeafEncoding {
		errs = append(errs, missingField("leafEncoding"))
	} else if !d.leafEncodingOK {
		errs = append(errs, newError(KindFormat, "leafEncoding", "Invalid leafEncoding value: must be an array of strings"))
	}

	return errs
}

func (d *TreeDocument) validateLeaves() []Error {
	var errs []Error
	var indices []float64

	for i, rawLeaf := range d.leaves {
		var leaf map[string]json.RawMessage
		if err := json.Unmarshal(rawLeaf, &leaf); err != nil {
			errs = append(errs, newError(KindFormat, "leaves", "Leaf %d: must be an object", i))
			continue
		}

		if idx, ok := asFloat(leaf["leafIndex"]); ok {
			indices = append(indices, idx)
		} else {
			errs = append(errs, newError(KindFormat, "leaves", "Leaf %d: leafIndex must be a number", i))
		}

		if addr, ok := asString(leaf["address"]); !ok || !IsAddress(addr) {
			errs = append(errs, newError(KindFormat, "leaves", "Leaf %d: invalid address %s", i, rawValue(leaf["address"])))
		}

		if amount, ok := asString(leaf["amount"]); !ok || !IsAmount(amount) {
			errs = append(errs, newError(KindFormat, "leaves", "Leaf %d: invalid amount %s", i, rawValue(leaf["amount"])))
		}
	}

	if dupes := duplicates(indices); dupes != "" {
		errs = append(errs, newError(KindStructural, "leaves", "Duplicate leafIndex values found: %s", dupes))
	}

	return errs
}

func (d *TreeDocument) validateValues() []Error {
	var errs []Error
	var indices []float64

	for i, rawEntry := range d.values {
		var entry map[string]json.RawMessage
		if err := json.Unmarshal(rawEntry, &entry); err != nil {
			errs = append(errs, newError(KindFormat, "values", "Entry %d: must be an object", i))
			continue
		}

		var value []json.RawMessage
		if err := json.Unmarshal(entry["value"], &value); err != nil || len(value) != 3 {
			errs = append(errs, newError(KindFormat, "values",
				"Entry %d: value must be an array of [index, address, amount]", i))
		} else {
			if idx, ok := asFloat(value[0]); ok {
				indices = append(indices, idx)
			} else {
				errs = append(errs, newError(KindFormat, "values", "Entry %d: index must be a number", i))
			}

			if addr, ok := asString(value[1]); !ok || !IsAddress(addr) {
				errs = append(errs, newError(KindFormat, "values", "Entry %d: invalid address %s", i, rawValue(value[1])))
			}

			if amount, ok := asString(value[2]); !ok || !IsAmount(amount) {
				errs = append(errs, newError(KindFormat, "values", "Entry %d: invalid amount %s", i, rawValue(value[2])))
			}
		}

		if _, ok := asFloat(entry["treeIndex"]); !ok {
			errs = append(errs, newError(KindFormat, "values", "Entry %d: treeIndex must be a number", i))
		}
	}

	if dupes := duplicates(indices); dupes != "" {
		errs = append(errs, newError(KindStructural, "values", "Duplicate index values found: %s", dupes))
	}

	return errs
}

// checkTreeLength enforces the floor on the flattened tree array:
// a tree over n values needs at least max(1, ceil(log2(n))*2) nodes.
func (d *TreeDocument) checkTreeLength() []Error {
	if !d.hasTree || !d.treeOK {
		return nil
	}

	valueCount := len(d.values)
	minLength := 1
	if valueCount > 1 {
		minLength = int(math.Ceil(math.Log2(float64(valueCount)))) * 2
		if minLength < 1 {
			minLength = 1
		}
	}

	if len(d.tree) < minLength {
		return []Error{newError(KindStructural, "tree",
			"Tree array too short: %d nodes for %d values (expected at least %d)",
			len(d.tree), valueCount, minLength)}
	}

	return nil
}

// Leaves returns the normalized (index, address, amount) entries for every
// well-formed leaf or value in the document, in document order. Malformed
// entries are skipped; they are already reported by Validate.
func (d *TreeDocument) Leaves() []TreeLeaf {
	var out []TreeLeaf

	appendLeaf := func(rawIndex, rawAddress, rawAmount json.RawMessage) {
		idx, okIdx := asInt(rawIndex)
		addr, okAddr := asString(rawAddress)
		amount, okAmount := asString(rawAmount)
		if okIdx && okAddr && IsAddress(addr) && okAmount && IsAmount(amount) {
			out = append(out, TreeLeaf{Index: idx, Address: addr, Amount: amount})
		}
	}

	switch d.shape {
	case ShapeSimple:
		for _, rawLeaf := range d.leaves {
			var leaf map[string]json.RawMessage
			if json.Unmarshal(rawLeaf, &leaf) != nil {
				continue
			}
			appendLeaf(leaf["leafIndex"], leaf["address"], leaf["amount"])
		}
	case ShapeStandard:
		for _, rawEntry := range d.values {
			var entry map[string]json.RawMessage
			if json.Unmarshal(rawEntry, &entry) != nil {
				continue
			}
			var value []json.RawMessage
			if json.Unmarshal(entry["value"], &value) != nil || len(value) != 3 {
				continue
			}
			appendLeaf(value[0], value[1], value[2])
		}
	}

	return out
}

// duplicates returns the indices that appear more than once, each reported
// once, in first-appearance order. Empty when there are no duplicates.
func duplicates(indices []float64) string {
	counts := make(map[float64]int, len(indices))
	for _, idx := range indices {
		counts[idx]++
	}

	var list string
	reported := make(map[float64]struct{})
	for _, idx := range indices {
		if counts[idx] < 2 {
			continue
		}
		if _, ok := reported[idx]; ok {
			continue
		}
		reported[idx] = struct{}{}
		if list != "" {
			list += ", "
		}
		list += strconv.FormatFloat(idx, 'f', -1, 64)
	}

	return list
}
