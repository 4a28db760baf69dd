package transforms

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/biomcp-go/biomcp/internal/entities"
)

// myDiseaseDoc mirrors mydisease.go's fixed field projection (mondo,
// disease_ontology, hpo, orphanet, ctd, umls).
type myDiseaseDoc struct {
	ID    string `json:"_id"`
	Mondo struct {
		Label    string        `json:"label"`
		Def      string        `json:"definition"`
		Synonym  stringOrSlice `json:"synonym"`
		Parents  stringOrSlice `json:"parents"`
		Xrefs    map[string]stringOrSlice `json:"xrefs"`
	} `json:"mondo"`
	DiseaseOntology struct {
		Name string `json:"name"`
	} `json:"disease_ontology"`
	HPO struct {
		PhenotypeRelatedToDisease []struct {
			HPOID     string `json:"hpo_id"`
			HPOName   string `json:"hpo_name"`
			Frequency string `json:"frequency"`
			Onset     string `json:"onset"`
			Sex       string `json:"sex"`
		} `json:"phenotype_related_to_disease"`
	} `json:"hpo"`
	Orphanet struct {
		Prevalence []struct {
			PrevalenceClass string `json:"prevalence_class"`
			PrevalenceGeographic string `json:"prevalence_geographic"`
		} `json:"prevalence"`
	} `json:"orphanet"`
}

// BuildDisease parses one MyDisease projection document into a Disease
// entity record (spec §4.4 "Disease").
func BuildDisease(raw json.RawMessage) (entities.Disease, error) {
	var doc myDiseaseDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return entities.Disease{}, err
	}

	d := entities.Disease{
		ID:         entities.NormalizeDiseaseID(doc.ID),
		Name:       doc.Mondo.Label,
		Definition: strings.TrimSpace(doc.Mondo.Def),
		Synonyms:   entities.DedupStrings(doc.Mondo.Synonym, entities.DedupMaxDefault),
		Parents:    entities.DedupStrings(doc.Mondo.Parents, entities.DedupMaxDefault),
	}
	if d.Name == "" {
		d.Name = doc.DiseaseOntology.Name
	}

	if len(doc.Mondo.Xrefs) > 0 {
		d.Xrefs = make(map[string]string, len(doc.Mondo.Xrefs))
		for source, ids := range doc.Mondo.Xrefs {
			if len(ids) > 0 {
				d.Xrefs[source] = ids[0]
			}
		}
	}

	for _, p := range doc.HPO.PhenotypeRelatedToDisease {
		if p.HPOID == "" {
			continue
		}
		d.Phenotypes = append(d.Phenotypes, entities.PhenotypeAssociation{
			HPOID:     p.HPOID,
			Term:      p.HPOName,
			Frequency: p.Frequency,
			Onset:     p.Onset,
			Sex:       p.Sex,
		})
	}

	for _, p := range doc.Orphanet.Prevalence {
		if p.PrevalenceClass == "" {
			continue
		}
		d.Prevalence = append(d.Prevalence, entities.PrevalenceEvidence{
			Source:     "orphanet",
			Value:      p.PrevalenceClass,
			Population: p.PrevalenceGeographic,
		})
	}

	return d, nil
}

// ResolveDiseaseScore scores a candidate disease name against the query,
// penalizing subtype markers and falling back between "carcinoma" and
// "cancer" phrasing (spec §4.6 "Disease resolver prefers broad form ...
// penalizing subtype markers + carcinoma<->cancer fallback").
func ResolveDiseaseScore(query, candidate string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	c := strings.ToLower(strings.TrimSpace(candidate))
	if q == "" || c == "" {
		return 0
	}

	score := 0
	switch {
	case c == q:
		score += 100
	case strings.Contains(c, q):
		score += 60
	case strings.Contains(q, c):
		score += 40
	}

	swapped := swapCarcinomaCancer(q)
	if swapped != q && (c == swapped || strings.Contains(c, swapped)) {
		score += 50
	}

	queryHasSubtype := hasSubtypeMarker(query)
	candidateHasSubtype := hasSubtypeMarker(candidate)
	if candidateHasSubtype && !queryHasSubtype {
		score -= 60
	}
	if !candidateHasSubtype && queryHasSubtype {
		score -= 20
	}

	return score
}

// diseaseSubtypeMarkers are the clinically-meaningful qualifiers that
// distinguish a disease subtype from its broad form (spec §4.4 "disease
// resolver penalizes subtype markers").
var diseaseSubtypeMarkers = []string{
	"sporadic", "hereditary", "familial", "metastatic", "recurrent",
	"adenocarcinoma", "squamous", "triple negative", "triple positive",
	"er positive", "er negative", "pr positive", "pr negative",
	"her2 positive", "her2 negative", "in situ",
}

// hasSubtypeMarker reports whether value names a disease subtype, either via
// a fixed marker or a "type N" qualifier (e.g. "type 2").
func hasSubtypeMarker(value string) bool {
	normalized := normalizeDiseaseText(value)
	if normalized == "" {
		return false
	}
	for _, marker := range diseaseSubtypeMarkers {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	words := strings.Fields(normalized)
	for i := 0; i+1 < len(words); i++ {
		if words[i] == "type" && isAllDigits(words[i+1]) {
			return true
		}
	}
	return false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// normalizeDiseaseText lowercases value and collapses non-alphanumeric runs
// to single spaces, for marker matching independent of punctuation.
func normalizeDiseaseText(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func swapCarcinomaCancer(s string) string {
	switch {
	case strings.Contains(s, "carcinoma"):
		return strings.ReplaceAll(s, "carcinoma", "cancer")
	case strings.Contains(s, "cancer"):
		return strings.ReplaceAll(s, "cancer", "carcinoma")
	default:
		return s
	}
}
