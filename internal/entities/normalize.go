package entities

import (
	"regexp"
	"strings"
)

var (
	rsidPattern   = regexp.MustCompile(`^rs\d+$`)
	hpoPattern    = regexp.MustCompile(`^HP:\d+$`)
	hgvsGPattern  = regexp.MustCompile(`^chr[0-9XYM]+:g\.\d+[ACGT]>[ACGT]$`)
)

// NormalizeGeneSymbol upper-cases a gene symbol for identifier matching
// (spec §3 invariant "gene symbols upper-cased").
func NormalizeGeneSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeRSID lower-cases an rsID and reports whether the result matches
// rs\d+ (spec §3 invariant).
func NormalizeRSID(s string) (string, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	return norm, rsidPattern.MatchString(norm)
}

// NormalizeDiseaseID colon-prefixes and upper-cases a MONDO/DOID identifier,
// tolerating input with or without the prefix already present (spec §3
// invariant "MONDO/DOID ids colon-prefixed and upper-cased").
func NormalizeDiseaseID(s string) string {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	if strings.Contains(upper, ":") {
		return upper
	}
	for _, prefix := range []string{"MONDO", "DOID"} {
		if strings.HasPrefix(upper, prefix) {
			rest := strings.TrimPrefix(upper, prefix)
			return prefix + ":" + rest
		}
	}
	return upper
}

// IsValidHPOID reports whether s matches HP:\d+ (spec §3 invariant).
func IsValidHPOID(s string) bool {
	return hpoPattern.MatchString(s)
}

// IsValidGenomicHGVS reports whether s matches the genomic HGVS pattern
// chr[0-9XYM]+:g.\d+[ACGT]>[ACGT] (spec §3 invariant).
func IsValidGenomicHGVS(s string) bool {
	return hgvsGPattern.MatchString(s)
}

const (
	// DedupMaxDefault is the default truncation length for multi-source
	// list fields (spec §3 invariant "typically 5-20").
	DedupMaxDefault = 10
	// CivicEvidenceMax caps Variant.CivicEvidence (spec §4.3).
	CivicEvidenceMax = 20
)

// DedupStrings case-insensitively deduplicates ss, preserving first-seen
// order, and truncates to max (0 means unbounded).
func DedupStrings(ss []string, max int) []string {
	seen := make(map[string]struct{}, len(ss))
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}
