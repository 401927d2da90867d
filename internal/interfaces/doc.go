// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - AnnotationSource: resolves a Zotero document and lists its annotations
//     (internal/exporters/generic.go), implemented by zotero.Store
//
// ## External Tool Interfaces
//
//   - Extractor: reads a PDF outline (internal/outline/outline.go),
//     implemented by DumpPDF and Nop
//
// ## Conversion Interfaces
//
//   - Converter: turns markup into another format (internal/exporters/generic.go),
//     implemented by snipd.Converter
//   - Node: a self-rendering piece of Org markup (internal/org/structs.go)
//
// # Adding a New Outline Source
//
// To read outlines with another tool:
//
//  1. Implement Extractor in internal/outline/
//
//     type MutoolOutline struct {
//         Command string
//     }
//
//     func (m *MutoolOutline) Extract(ctx context.Context, path string) ([]Entry, error)
//
//  2. Return nil entries when the PDF has no outline, and
//     *MalformedOutlineError when an entry lacks its page or coordinates.
//
//  3. Select it in internal/cli/zotero_extract.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the checks of this codebase.
package interfaces
