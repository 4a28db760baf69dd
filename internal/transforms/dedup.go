package transforms

import "github.com/biomcp-go/biomcp/internal/entities"

// MergeStringLists concatenates one or more upstream list fields and
// case-insensitively deduplicates the result, capped at max (0 means
// entities.DedupMaxDefault). No orchestrator calls it; the transforms and
// orchestrators call entities.DedupStrings directly.
func MergeStringLists(max int, lists ...[]string) []string {
	if max <= 0 {
		max = entities.DedupMaxDefault
	}
	var all []string
	for _, l := range lists {
		all = append(all, l...)
	}
	return entities.DedupStrings(all, max)
}

// MapKeys returns the map's keys as a slice, for an upstream that delivers
// a set of names as map keys rather than a list. Nothing in the module
// calls it.
func MapKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
