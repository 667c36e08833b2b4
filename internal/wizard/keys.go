package wizard

import "strings"

// Form fields in the libraries step encode their target in the field name:
//
//	{type}-library_{id}-{facet}_{subkey}
//
// e.g. "mov-library_Movies-collection_actors". ParseLibraryKey is the single
// place this pattern is interpreted; every grouping pass goes through it so
// collections, overlays, attributes and templates agree on library identity.

// LibraryType distinguishes movie and show libraries.
type LibraryType string

const (
	TypeMovie LibraryType = "mov"
	TypeShow  LibraryType = "sho"
)

// LibraryTypes lists the supported types in output order.
var LibraryTypes = []LibraryType{TypeMovie, TypeShow}

// Facet is one category of per-library data.
type Facet string

const (
	FacetLibrary      Facet = "library"
	FacetCollection   Facet = "collection"
	FacetOverlay      Facet = "overlay"
	FacetAttribute    Facet = "attribute"
	FacetTemplateVars Facet = "template_variables"
	FacetTopLevel     Facet = "top_level"
)

// TaggedKey is the parsed form of a library-scoped field name.
type TaggedKey struct {
	Type    LibraryType
	Library string
	Facet   Facet
	Subkey  string
}

// facetMarkers are searched in the text after the library id. Order matters
// only for disambiguation when a library name itself contains a marker; the
// earliest match in the key wins.
var facetMarkers = []struct {
	marker string
	facet  Facet
}{
	{"-collection_", FacetCollection},
	{"-overlay_", FacetOverlay},
	{"-attribute_", FacetAttribute},
	{"-template_variables", FacetTemplateVars},
	{"-top_level_", FacetTopLevel},
}

// ParseLibraryKey splits a prefix-encoded field name into its parts.
// Keys that do not match the pattern return ok=false and are skipped by
// callers; a malformed key never aborts an assembly pass.
func ParseLibraryKey(key string) (TaggedKey, bool) {
	var typ LibraryType
	switch {
	case strings.HasPrefix(key, string(TypeMovie)+"-library_"):
		typ = TypeMovie
	case strings.HasPrefix(key, string(TypeShow)+"-library_"):
		typ = TypeShow
	default:
		return TaggedKey{}, false
	}

	rest := key[len(string(typ))+len("-library_"):]
	if rest == "" {
		return TaggedKey{}, false
	}

	// Find the earliest facet marker after a non-empty library id.
	best := -1
	var bestFacet Facet
	var bestMarker string
	for _, fm := range facetMarkers {
		idx := strings.Index(rest, fm.marker)
		if idx >= 1 && (best == -1 || idx < best) {
			best = idx
			bestFacet = fm.facet
			bestMarker = fm.marker
		}
	}

	if best >= 1 {
		subkey := rest[best+len(bestMarker):]
		if bestFacet == FacetTemplateVars {
			// Compound form: ...-template_variables[sep_style]
			subkey = strings.TrimSuffix(strings.TrimPrefix(subkey, "["), "]")
		}
		return TaggedKey{Type: typ, Library: rest[:best], Facet: bestFacet, Subkey: subkey}, true
	}

	// The selection checkbox itself: {type}-library_{id}-library
	if id, ok := strings.CutSuffix(rest, "-library"); ok && id != "" {
		return TaggedKey{Type: typ, Library: id, Facet: FacetLibrary}, true
	}

	return TaggedKey{}, false
}
