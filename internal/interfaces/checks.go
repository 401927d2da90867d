package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/orgutils/internal/exporters"
	"github.com/mrlokans/orgutils/internal/org"
	"github.com/mrlokans/orgutils/internal/outline"
	"github.com/mrlokans/orgutils/internal/snipd"
	"github.com/mrlokans/orgutils/internal/zotero"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// AnnotationSource implementations
var _ exporters.AnnotationSource = (*zotero.Store)(nil)

// =============================================================================
// External Tools
// =============================================================================

// Extractor implementations
var _ outline.Extractor = (*outline.DumpPDF)(nil)
var _ outline.Extractor = outline.Nop{}

// =============================================================================
// Converters
// =============================================================================

// Converter implementations
var _ exporters.Converter = (*snipd.Converter)(nil)

// =============================================================================
// Render Tree
// =============================================================================

// Node implementations
var _ org.Node = org.Heading{}
var _ org.Node = org.Paragraph{}
var _ org.Node = org.QuoteBlock{}
var _ org.Node = org.Group{}
