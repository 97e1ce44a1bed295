// Package output renders command results as text, JSON, or YAML.
package output

import "io"

// Handler renders a collection of results, or an error, to its writer.
type Handler[T any] interface {
	// Writer returns the io.Writer this Handler will write to.
	Writer() io.Writer

	// HandleResults renders the given collection of items.
	HandleResults(items []T) error

	// HandleError renders the error.
	HandleError(err error) error
}

// ListPrinter formats individual items for text output, with optional
// header/footer lines around the collection.
type ListPrinter[T any] interface {
	// Header is called once before any Item.
	Header(w io.Writer, count int)

	// Item prints one element.
	Item(w io.Writer, item T) error

	// Footer is called once after all Items.
	Footer(w io.Writer, count int)
}

// ResultsPayload wraps multiple result values under a "results" key for
// structured output formats.
type ResultsPayload[T any] struct {
	Results []T `json:"results" yaml:"results"`
}

// ErrorPayload wraps an error message under an "error" key for structured
// output formats.
type ErrorPayload struct {
	Error string `json:"error" yaml:"error"`
}
