package transforms

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/biomcp-go/biomcp/internal/entities"
)

// myGeneDoc mirrors the fixed field projection mygene.go requests
// (symbol, entrezgene, ensembl.gene, HGNC, alias, name, summary,
// genomic_pos, pathway, go, interpro, pharmgkb).
type myGeneDoc struct {
	ID         string      `json:"_id"`
	Symbol     string      `json:"symbol"`
	EntrezGene json.Number `json:"entrezgene"`
	Ensembl    struct {
		Gene stringOrSlice `json:"gene"`
	} `json:"ensembl"`
	HGNC    stringOrSlice `json:"HGNC"`
	Alias   stringOrSlice `json:"alias"`
	Name    string        `json:"name"`
	Summary string        `json:"summary"`
	GenomicPos struct {
		Chr     string `json:"chr"`
		Start   int64  `json:"start"`
		End     int64  `json:"end"`
		Strand  int    `json:"strand"`
	} `json:"genomic_pos"`
	Pathway  map[string][]namedRef `json:"pathway"`
	GO       map[string][]goRow    `json:"go"`
	Interpro []interproRow         `json:"interpro"`
}

type namedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type goRow struct {
	ID    string `json:"id"`
	Term  string `json:"term"`
}

type interproRow struct {
	ID    string `json:"id"`
	Desc  string `json:"desc"`
	Short string `json:"short_desc"`
}

// stringOrSlice unmarshals a MyGene field that may arrive as a bare string
// or as an array of strings, a pattern BioThings uses throughout (spec §9
// "upstream fields are loosely typed; transforms normalize, never
// propagate ambiguity").
type stringOrSlice []string

func (s *stringOrSlice) UnmarshalJSON(data []byte) error {
	var multi []string
	if err := json.Unmarshal(data, &multi); err == nil {
		*s = multi
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single != "" {
		*s = []string{single}
	}
	return nil
}

// BuildGene parses one MyGene projection document into a Gene entity
// record (spec §4.4 "Gene").
func BuildGene(raw json.RawMessage) (entities.Gene, error) {
	var doc myGeneDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return entities.Gene{}, err
	}

	g := entities.Gene{
		Symbol:   entities.NormalizeGeneSymbol(doc.Symbol),
		Function: strings.TrimSpace(doc.Summary),
		Synonyms: entities.DedupStrings(append([]string(nil), doc.Alias...), entities.DedupMaxDefault),
	}
	if doc.EntrezGene != "" {
		g.EntrezID = doc.EntrezGene.String()
	}
	if len(doc.Ensembl.Gene) > 0 {
		g.EnsemblID = doc.Ensembl.Gene[0]
	}
	if len(doc.HGNC) > 0 {
		g.HGNCID = "HGNC:" + doc.HGNC[0]
	}
	if doc.GenomicPos.Chr != "" {
		g.Location = &entities.GenomicLocation{
			Chromosome: doc.GenomicPos.Chr,
			Start:      doc.GenomicPos.Start,
			End:        doc.GenomicPos.End,
			Assembly:   "GRCh38",
		}
	}

	for source, refs := range doc.Pathway {
		for _, ref := range refs {
			g.Pathways = append(g.Pathways, entities.PathwayRef{ID: ref.ID, Name: ref.Name, Source: source})
		}
	}
	for category, rows := range doc.GO {
		for _, row := range rows {
			g.GOTerms = append(g.GOTerms, entities.GOTerm{ID: row.ID, Term: row.Term, Category: category})
		}
	}
	for _, row := range doc.Interpro {
		name := row.Desc
		if name == "" {
			name = row.Short
		}
		g.Domains = append(g.Domains, entities.ProteinDomain{Name: name, Source: "interpro"})
	}

	return g, nil
}

// InteractionsFromSTRING maps STRING-DB interaction-partner rows into the
// entity shape, the teacher's pattern of reading a numeric combined_score
// string out of an untyped JSON row.
func InteractionsFromSTRING(rows []map[string]any) []entities.Interaction {
	var out []entities.Interaction
	for _, row := range rows {
		partner, _ := row["preferredName_B"].(string)
		if partner == "" {
			partner, _ = row["partner"].(string)
		}
		if partner == "" {
			continue
		}
		var score float64
		switch v := row["score"].(type) {
		case float64:
			score = v
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				score = f
			}
		}
		out = append(out, entities.Interaction{Partner: partner, Source: "string-db", Score: score})
	}
	return out
}

// PGxAnnotationsFromPharmGKB maps PharmGKB clinical-annotation rows into
// the Gene-embedded PGx summary (spec §4.4 "Gene" pharmgkb section).
func PGxAnnotationsFromPharmGKB(rows []map[string]any) []entities.PGxAnnotation {
	var out []entities.PGxAnnotation
	for _, row := range rows {
		drug, _ := row["drug"].(string)
		if drug == "" {
			continue
		}
		phenotype, _ := row["phenotype"].(string)
		level, _ := row["level"].(string)
		out = append(out, entities.PGxAnnotation{Drug: drug, Phenotype: phenotype, Level: level})
	}
	return out
}

// CivicContextFromEvidence summarizes a CIViC evidence list into Gene's,
// Disease's, and Drug's shared embedded CivicContext block (spec §4.4,
// "top_drugs" capped at entities.DedupMaxDefault).
func CivicContextFromEvidence(evidence []entities.CivicEvidenceItem) *entities.CivicContext {
	if len(evidence) == 0 {
		return nil
	}
	var drugs []string
	for _, e := range evidence {
		if e.Drug != "" {
			drugs = append(drugs, e.Drug)
		}
	}
	return &entities.CivicContext{
		EvidenceCount: len(evidence),
		TopDrugs:      entities.DedupStrings(drugs, entities.DedupMaxDefault),
	}
}
