package transforms

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/biomcp-go/biomcp/internal/entities"
)

// significanceRank mirrors the teacher's acmg_rule_engine.go severity
// reduction, adapted to MyVariant's free-text clinical_significance strings
// rather than ACMG criteria (spec §4.4 "Variant").
func significanceRank(value string) int {
	v := strings.ToLower(strings.TrimSpace(value))
	switch {
	case strings.Contains(v, "pathogenic") && !strings.Contains(v, "likely"):
		return 5
	case strings.Contains(v, "likely pathogenic"):
		return 4
	case strings.Contains(v, "uncertain") || strings.Contains(v, "vus"):
		return 3
	case strings.Contains(v, "likely benign"):
		return 2
	case strings.Contains(v, "benign"):
		return 1
	default:
		return 0
	}
}

// clinvarRCV is one ClinVar RCV accession's significance/review fields as
// projected by MyVariant's clinvar.rcv sub-object.
type clinvarRCV struct {
	ClinicalSignificance string `json:"clinical_significance"`
	ReviewStatus         string `json:"review_status"`
}

// PickSignificance picks the highest-severity clinical significance across
// a variant's RCV rows (spec §4.3 "ClinVar highest-severity-row picking").
func PickSignificance(rcvs []clinvarRCV) entities.ClinicalSignificance {
	bestRank := -1
	best := ""
	for _, r := range rcvs {
		if r.ClinicalSignificance == "" {
			continue
		}
		rank := significanceRank(r.ClinicalSignificance)
		if rank > bestRank {
			bestRank = rank
			best = r.ClinicalSignificance
		}
	}
	return mapSignificance(best)
}

func mapSignificance(raw string) entities.ClinicalSignificance {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case v == "":
		return entities.SignificanceUnknown
	case strings.Contains(v, "conflicting"):
		return entities.SignificanceConflicting
	case strings.Contains(v, "pathogenic") && !strings.Contains(v, "likely"):
		return entities.SignificancePathogenic
	case strings.Contains(v, "likely pathogenic"):
		return entities.SignificanceLikelyPathogenic
	case strings.Contains(v, "uncertain") || strings.Contains(v, "vus"):
		return entities.SignificanceUncertain
	case strings.Contains(v, "likely benign"):
		return entities.SignificanceLikelyBenign
	case strings.Contains(v, "benign"):
		return entities.SignificanceBenign
	default:
		return entities.SignificanceUnknown
	}
}

// ReviewStars maps a ClinVar review_status string to its 0-4 star rating,
// reporting false when the status is unrecognized (spec §4.4 "ClinVar star
// mapping (0-4)").
func ReviewStars(status string) (int, bool) {
	v := strings.ToLower(strings.TrimSpace(status))
	switch {
	case v == "":
		return 0, false
	case strings.Contains(v, "practice guideline"):
		return 4, true
	case strings.Contains(v, "reviewed by expert panel"):
		return 3, true
	case strings.Contains(v, "multiple submitters") && strings.Contains(v, "no conflicts"):
		return 2, true
	case strings.Contains(v, "single submitter") || strings.Contains(v, "conflicting interpretations"):
		return 1, true
	case strings.Contains(v, "no assertion"):
		return 0, true
	default:
		return 0, false
	}
}

// PickReviewStars returns the highest star rating found across a variant's
// RCV rows (spec's pick_review_status: the highest-confidence row wins,
// not the first or last).
func PickReviewStars(rcvs []clinvarRCV) int {
	best := -1
	for _, r := range rcvs {
		stars, ok := ReviewStars(r.ReviewStatus)
		if !ok {
			continue
		}
		if stars > best {
			best = stars
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// NormalizeSIFT maps MyVariant's single-letter SIFT prediction code to its
// label (spec §4.3 "SIFT/PolyPhen code to label mapping").
func NormalizeSIFT(pred string) string {
	switch strings.TrimSpace(pred) {
	case "D", "d":
		return "Deleterious"
	case "T", "t":
		return "Tolerated"
	default:
		return pred
	}
}

// NormalizePolyPhen maps MyVariant's single-letter PolyPhen2 prediction
// code to its label.
func NormalizePolyPhen(pred string) string {
	switch strings.TrimSpace(pred) {
	case "D", "d":
		return "Probably damaging"
	case "P", "p":
		return "Possibly damaging"
	case "B", "b":
		return "Benign"
	default:
		return pred
	}
}

// gnomadAF is the subset of MyVariant's gnomad_exome/gnomad_genome af
// sub-object this transform reads.
type gnomadAF struct {
	AF       *float64 `json:"af"`
	AFAfr    *float64 `json:"af_afr"`
	AFEas    *float64 `json:"af_eas"`
	AFNfe    *float64 `json:"af_nfe"`
	AFSas    *float64 `json:"af_sas"`
	AFAmr    *float64 `json:"af_amr"`
	AFAsj    *float64 `json:"af_asj"`
	AFFin    *float64 `json:"af_fin"`
}

// PopulationFrequencies builds the exome-preferred, genome-fallback,
// subpopulation-broken-down frequency list (spec §4.3 "gnomAD
// exome-preferred/genome/subpopulation frequency picking").
func PopulationFrequencies(exome, genome *gnomadAF) []entities.PopulationFrequency {
	af := exome
	source := "exome"
	if af == nil || af.AF == nil {
		af = genome
		source = "genome"
	}
	if af == nil || af.AF == nil {
		return nil
	}

	sub := map[string]float64{}
	for label, v := range map[string]*float64{
		"African/African American":  af.AFAfr,
		"East Asian":                af.AFEas,
		"Non-Finnish European":      af.AFNfe,
		"South Asian":               af.AFSas,
		"Latino/Admixed American":   af.AFAmr,
		"Ashkenazi Jewish":          af.AFAsj,
		"Finnish":                   af.AFFin,
	} {
		if v != nil {
			sub[label] = *v
		}
	}

	return []entities.PopulationFrequency{{
		Source:         source,
		AlleleFreq:     *af.AF,
		Subpopulations: sub,
	}}
}

// CivicEvidenceFromMolecularProfiles flattens MyVariant's cached civic
// sub-object ({"molecularProfiles": [{"evidenceItems": [...]}]}) into a
// flat, capped evidence list (spec §4.3 "CIViC evidence flattening capped
// at 20 items", entities.CivicEvidenceMax).
func CivicEvidenceFromMolecularProfiles(raw json.RawMessage) []entities.CivicEvidenceItem {
	if len(raw) == 0 {
		return nil
	}
	var doc struct {
		MolecularProfiles []struct {
			Name          string `json:"name"`
			EvidenceItems []struct {
				ID            json.Number `json:"id"`
				EvidenceLevel string      `json:"evidenceLevel"`
				Significance  string      `json:"significance"`
				Status        string      `json:"status"`
				Disease       struct {
					DisplayName string `json:"displayName"`
					Name        string `json:"name"`
				} `json:"disease"`
				Therapies []struct {
					Name string `json:"name"`
				} `json:"therapies"`
			} `json:"evidenceItems"`
		} `json:"molecularProfiles"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}

	var out []entities.CivicEvidenceItem
	for _, profile := range doc.MolecularProfiles {
		for _, item := range profile.EvidenceItems {
			disease := item.Disease.DisplayName
			if disease == "" {
				disease = item.Disease.Name
			}
			var drug string
			if len(item.Therapies) > 0 {
				drug = item.Therapies[0].Name
			}
			out = append(out, entities.CivicEvidenceItem{
				ID:            item.ID.String(),
				Disease:       disease,
				Drug:          drug,
				EvidenceLevel: item.EvidenceLevel,
				Significance:  item.Significance,
				Description:   profile.Name,
			})
			if len(out) >= entities.CivicEvidenceMax {
				return out
			}
		}
	}
	return out
}

// cgiAssociationMax caps the CGI drug-association list (spec §4.5
// "exact COSMIC tumor-context shape, CGI drug-association row shape ...
// present in original_source").
const cgiAssociationMax = 10

// CGIAssociationsFromRows maps raw CGI rows (drug, association,
// evidence_level) into the entity shape, capped at cgiAssociationMax.
func CGIAssociationsFromRows(rows []map[string]any) []entities.DrugAssociation {
	var out []entities.DrugAssociation
	for _, row := range rows {
		drug, _ := row["drug"].(string)
		if drug == "" {
			continue
		}
		assoc, _ := row["association"].(string)
		evidence, _ := row["evidence_level"].(string)
		if evidence == "" {
			evidence, _ = row["evidence"].(string)
		}
		out = append(out, entities.DrugAssociation{
			Drug:        drug,
			Association: assoc,
			Evidence:    evidence,
		})
		if len(out) >= cgiAssociationMax {
			break
		}
	}
	return out
}

// TumorContextFromCOSMIC builds the tumor-context summary from COSMIC's
// mutation-frequency rows (spec §4.5 "exact COSMIC tumor-context shape").
func TumorContextFromCOSMIC(tumorSites []string, sampleCount int) *entities.TumorContext {
	sites := entities.DedupStrings(tumorSites, entities.DedupMaxDefault)
	if len(sites) == 0 && sampleCount == 0 {
		return nil
	}
	return &entities.TumorContext{TumorTypes: sites, SampleCount: sampleCount}
}

// myVariantDoc mirrors myvariant.go's fixed field projection (clinvar,
// dbnsfp, dbsnp, cosmic, gnomad_exome, gnomad_genome, cadd, civic, vcf).
type myVariantDoc struct {
	ID     string `json:"_id"`
	Dbnsfp struct {
		Genename stringOrSlice `json:"genename"`
		Hgvsp    stringOrSlice `json:"hgvsp"`
		Hgvsc    stringOrSlice `json:"hgvsc"`
		Sift     struct {
			Pred stringOrSlice `json:"pred"`
		} `json:"sift"`
		Polyphen2 struct {
			Hdiv struct {
				Pred stringOrSlice `json:"pred"`
			} `json:"hdiv"`
		} `json:"polyphen2"`
		Revel struct {
			Score json.Number `json:"score"`
		} `json:"revel"`
		Alphamissense struct {
			Score json.Number `json:"score"`
		} `json:"alphamissense"`
		Phylop struct {
			Way100Vertebrate struct {
				Rankscore json.Number `json:"rankscore"`
			} `json:"100way_vertebrate"`
		} `json:"phylop"`
		Phastcons struct {
			Way100Vertebrate struct {
				Rankscore json.Number `json:"rankscore"`
			} `json:"100way_vertebrate"`
		} `json:"phastcons"`
		Gerp struct {
			RS json.Number `json:"rs"`
		} `json:"gerp++"`
	} `json:"dbnsfp"`
	Dbsnp struct {
		RSID string `json:"rsid"`
	} `json:"dbsnp"`
	Clinvar struct {
		VariantID json.Number  `json:"variant_id"`
		RCV       []clinvarRCV `json:"rcv"`
	} `json:"clinvar"`
	Cosmic struct {
		CosmicID  stringOrSlice `json:"cosmic_id"`
		MutFreq   json.Number   `json:"mut_freq"`
		TumorSite stringOrSlice `json:"tumor_site"`
	} `json:"cosmic"`
	GnomadExome struct {
		AF gnomadAF `json:"af"`
	} `json:"gnomad_exome"`
	GnomadGenome struct {
		AF gnomadAF `json:"af"`
	} `json:"gnomad_genome"`
	Cadd struct {
		Phred json.Number `json:"phred"`
	} `json:"cadd"`
	Civic json.RawMessage `json:"civic"`
}

func numPtr(n json.Number) *float64 {
	if n == "" {
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil
	}
	return &f
}

// BuildVariant parses one MyVariant projection document into the base
// Variant entity record; callers fill in the remaining CGI/CIViC-GraphQL/
// cBioPortal/AlphaGenome/GWAS sections separately since those come from
// other source clients (spec §4.4 "Variant").
func BuildVariant(raw json.RawMessage) (entities.Variant, error) {
	var doc myVariantDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return entities.Variant{}, err
	}

	v := entities.Variant{
		GenomicID: doc.ID,
		RSID:      doc.Dbsnp.RSID,
	}
	if len(doc.Dbnsfp.Genename) > 0 {
		v.Gene = entities.NormalizeGeneSymbol(doc.Dbnsfp.Genename[0])
	}
	if len(doc.Dbnsfp.Hgvsp) > 0 {
		v.HGVSP = doc.Dbnsfp.Hgvsp[0]
	}
	if len(doc.Dbnsfp.Hgvsc) > 0 {
		v.HGVSC = doc.Dbnsfp.Hgvsc[0]
	}
	if len(doc.Cosmic.CosmicID) > 0 {
		v.COSMICID = doc.Cosmic.CosmicID[0]
	}

	v.Significance = PickSignificance(doc.Clinvar.RCV)
	v.ClinVarReviewStars = PickReviewStars(doc.Clinvar.RCV)

	v.PopulationFrequency = PopulationFrequencies(&doc.GnomadExome.AF, &doc.GnomadGenome.AF)

	conservation := &entities.ConservationScores{
		PhyloP:    numPtr(doc.Dbnsfp.Phylop.Way100Vertebrate.Rankscore),
		PhastCons: numPtr(doc.Dbnsfp.Phastcons.Way100Vertebrate.Rankscore),
		GERP:      numPtr(doc.Dbnsfp.Gerp.RS),
	}
	if conservation.PhyloP != nil || conservation.PhastCons != nil || conservation.GERP != nil {
		v.Conservation = conservation
	}

	predictions := &entities.InSilicoPredictions{
		REVEL:         numPtr(doc.Dbnsfp.Revel.Score),
		AlphaMissense: numPtr(doc.Dbnsfp.Alphamissense.Score),
	}
	if len(doc.Dbnsfp.Sift.Pred) > 0 {
		predictions.SIFT = NormalizeSIFT(doc.Dbnsfp.Sift.Pred[0])
	}
	if predictions.REVEL != nil || predictions.AlphaMissense != nil || predictions.SIFT != "" {
		v.Predictions = predictions
	}

	mutFreq := numPtr(doc.Cosmic.MutFreq)
	var sampleCount int
	if mutFreq != nil {
		sampleCount = int(*mutFreq)
	}
	v.TumorContext = TumorContextFromCOSMIC(doc.Cosmic.TumorSite, sampleCount)

	v.CivicEvidence = CivicEvidenceFromMolecularProfiles(doc.Civic)

	return v, nil
}

// GWASAssociationsFromRows maps GWAS Catalog association rows into the
// entity shape (spec §4.5 "GWAS association row shape").
func GWASAssociationsFromRows(rows []map[string]any) []entities.GWASAssociation {
	var out []entities.GWASAssociation
	for _, row := range rows {
		trait, _ := row["trait"].(string)
		if trait == "" {
			continue
		}
		study, _ := row["study"].(string)
		var pValue float64
		switch v := row["p_value"].(type) {
		case float64:
			pValue = v
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				pValue = f
			}
		}
		out = append(out, entities.GWASAssociation{Trait: trait, Study: study, PValue: pValue})
	}
	return out
}
