// Package sections implements the closed per-entity section vocabularies
// and the "all"-expansion parser every orchestrator validates its caller's
// section-selection vector against (spec §4.4 point 1, §9 "Section
// vocabulary").
package sections

import (
	"sort"
	"strings"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
)

// Set is a validated, closed selection of section names for one entity
// kind. Zero value is the empty selection.
type Set map[string]bool

// Has reports whether name was requested.
func (s Set) Has(name string) bool { return s[name] }

// vocab is the fixed section name list per entity kind, keyed the way
// orchestrators reference it (spec §4.4 "Representative orchestrators").
var vocab = map[string][]string{
	"gene": {"function", "interactions", "pathways", "go", "domains", "pharmacogenomics", "civic"},
	"variant": {"predict", "predictions", "clinvar", "population", "conservation", "cosmic",
		"cgi", "civic", "cbioportal", "gwas"},
	"disease": {"genes", "pathways", "phenotypes", "variants", "models", "prevalence", "civic"},
	"drug": {"label", "shortage", "targets", "indications", "interactions", "civic", "approvals"},
	"article": {"full-text", "pubtator"},
}

// allKeyword expands to every section name in the entity's vocabulary.
const allKeyword = "all"

// Parse validates raw against the closed vocabulary for kind, expanding
// "all" to every section name. Unknown names fail before any upstream call
// (spec §3 invariant "unknown section names cause an input-validation
// failure before any upstream call").
func Parse(kind string, raw []string) (Set, error) {
	names, ok := vocab[kind]
	if !ok {
		return nil, biomcperr.InvalidArgument("unknown entity kind %q for section parsing", kind)
	}

	out := make(Set, len(names))
	for _, r := range raw {
		name := strings.ToLower(strings.TrimSpace(r))
		if name == "" {
			continue
		}
		if name == "--json" || name == "-j" {
			continue
		}
		if name == allKeyword {
			for _, n := range names {
				out[n] = true
			}
			continue
		}
		if !contains(names, name) {
			return nil, biomcperr.InvalidArgument(
				"unknown section %q for %s (valid: %s)", r, kind, strings.Join(sortedCopy(names), ", "))
		}
		out[name] = true
	}
	return out, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func sortedCopy(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out
}

// Vocabulary returns the closed section name list for kind, for use by CLI
// help text and MCP tool schemas.
func Vocabulary(kind string) []string {
	names, ok := vocab[kind]
	if !ok {
		return nil
	}
	out := make([]string, len(names))
	copy(out, names)
	return out
}
