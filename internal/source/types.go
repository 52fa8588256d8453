// Package source discovers pattern documents in the configured library
// directory. It applies the fixed file-name suffix convention and exposes
// each match as an immutable Document with raw text and a derived short
// name for downstream stages.
package source

// Document is one discovered pattern source file.
type Document struct {
	// ShortName is the file name with its extension stripped
	// (e.g. "genserver_patterns" for genserver_patterns.txt).
	ShortName string

	// FileName is the file name as found on disk.
	FileName string

	// Path is the absolute path of the file.
	Path string

	// Text is the full raw file content.
	Text string
}
