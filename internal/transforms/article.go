package transforms

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/biomcp-go/biomcp/internal/entities"
)

var htmlTagPattern = regexp.MustCompile(`(?is)<[^>]+>`)

var htmlEntityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&nbsp;", " ",
)

func cleanText(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(htmlEntityReplacer.Replace(s), ""))
}

// CleanTitle strips inline HTML tags and decodes entities before
// TruncateTitle is applied (spec §4.5 article.rs "clean_title").
func CleanTitle(title string) string {
	return TruncateTitle(cleanText(title))
}

// CleanAbstract strips inline HTML tags and decodes entities before
// TruncateAbstract is applied.
func CleanAbstract(abstract string) string {
	trimmed := cleanText(abstract)
	if trimmed == "" {
		return ""
	}
	return TruncateAbstract(trimmed)
}

// pubTypeAliases maps a lowercased substring of a raw publication-type
// string to its controlled-vocabulary label (spec §4.3 "Article
// publication-type normalization to controlled vocabulary").
var pubTypeAliases = []struct {
	substr string
	pubtype entities.PublicationType
}{
	{"meta-analysis", entities.PublicationMetaAnalysis},
	{"review", entities.PublicationReview},
	{"case report", entities.PublicationCaseReport},
	{"research-article", entities.PublicationResearchArticle},
	{"journal article", entities.PublicationResearchArticle},
}

// NormalizePublicationType maps one raw EuropePMC pubType string to the
// controlled vocabulary, returning it unchanged when no alias matches.
func NormalizePublicationType(raw string) entities.PublicationType {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	for _, alias := range pubTypeAliases {
		if strings.Contains(lower, alias.substr) {
			return alias.pubtype
		}
	}
	return entities.PublicationType(trimmed)
}

// PublicationTypes flattens EuropePMC's pubType/pubTypeList fields (either
// may be a string, an array of strings, or an array of {"name": ...}
// objects) into a deduplicated list of raw type strings.
func PublicationTypes(pubType, pubTypeList any) []string {
	var out []string
	collectPublicationTypeStrings(pubType, &out)
	collectPublicationTypeStrings(pubTypeList, &out)
	return entities.DedupStrings(out, 0)
}

func collectPublicationTypeStrings(value any, out *[]string) {
	switch v := value.(type) {
	case string:
		for _, token := range strings.Split(v, ";") {
			token = strings.TrimSpace(token)
			if token != "" {
				*out = append(*out, token)
			}
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					*out = append(*out, s)
					continue
				}
			}
			if m, ok := item.(map[string]any); ok {
				if name, ok := m["name"].(string); ok && strings.TrimSpace(name) != "" {
					*out = append(*out, strings.TrimSpace(name))
					continue
				}
			}
			collectPublicationTypeStrings(item, out)
		}
	case map[string]any:
		for _, inner := range v {
			collectPublicationTypeStrings(inner, out)
		}
	}
}

// ParsePublicationType picks the first recognized controlled-vocabulary
// type out of the flattened pubType list, per EuropePMC's documented field
// pair.
func ParsePublicationType(pubType, pubTypeList any) entities.PublicationType {
	for _, raw := range PublicationTypes(pubType, pubTypeList) {
		if mapped := NormalizePublicationType(raw); mapped != entities.PublicationType(raw) {
			return mapped
		}
	}
	types := PublicationTypes(pubType, pubTypeList)
	if len(types) > 0 {
		return NormalizePublicationType(types[0])
	}
	return ""
}

// IsRetracted reports whether any of the article's declared publication
// types is "retracted publication" — the only documented signal; title
// text is never scanned for retraction (spec §9 "do not infer from title
// text").
func IsRetracted(pubType, pubTypeList any) bool {
	for _, raw := range PublicationTypes(pubType, pubTypeList) {
		if strings.Contains(strings.ToLower(raw), "retracted publication") {
			return true
		}
	}
	return false
}

// ParseOpenAccess normalizes EuropePMC's isOpenAccess field, which may
// arrive as a bool, a Y/N string, or a 0/1 number.
func ParseOpenAccess(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToUpper(strings.TrimSpace(v)) {
		case "Y", "YES", "TRUE", "1":
			return true
		default:
			return false
		}
	case float64:
		return v > 0
	default:
		return false
	}
}

// ParseCitationCount accepts either a JSON number or numeric string, as
// EuropePMC returns both across endpoints.
func ParseCitationCount(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}
