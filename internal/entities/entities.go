// Package entities holds the fixed set of entity records the orchestrators
// produce and the renderers consume (spec §3). All fields have explicit
// semantic types; "optional" means an upstream did not provide the value,
// never that it is unknown at the type level.
package entities

// ClinicalSignificance is the severity-ranked pathogenicity label merged
// across sources, highest severity wins on conflict (see
// internal/transforms/variant.go).
type ClinicalSignificance string

const (
	SignificancePathogenic          ClinicalSignificance = "pathogenic"
	SignificanceLikelyPathogenic    ClinicalSignificance = "likely_pathogenic"
	SignificanceUncertain           ClinicalSignificance = "uncertain_significance"
	SignificanceLikelyBenign        ClinicalSignificance = "likely_benign"
	SignificanceBenign              ClinicalSignificance = "benign"
	SignificanceConflicting         ClinicalSignificance = "conflicting_interpretations"
	SignificanceUnknown             ClinicalSignificance = ""
)

// significanceRank orders ClinicalSignificance from most to least severe;
// lower is more severe. Used to pick a winner when two sources disagree.
var significanceRank = map[ClinicalSignificance]int{
	SignificancePathogenic:       0,
	SignificanceLikelyPathogenic: 1,
	SignificanceConflicting:      2,
	SignificanceUncertain:        3,
	SignificanceLikelyBenign:     4,
	SignificanceBenign:           5,
}

// Rank returns the severity rank of s; unranked values sort last.
func (s ClinicalSignificance) Rank() int {
	if r, ok := significanceRank[s]; ok {
		return r
	}
	return len(significanceRank)
}

// PublicationType is the normalized controlled vocabulary for Article.Type
// (spec §4.3).
type PublicationType string

const (
	PublicationReview        PublicationType = "Review"
	PublicationMetaAnalysis  PublicationType = "Meta-Analysis"
	PublicationCaseReport    PublicationType = "Case Report"
	PublicationResearchArticle PublicationType = "Research Article"
)

// TrialSource selects which upstream a Trial was or should be resolved
// against (spec §4.4 "Trial").
type TrialSource string

const (
	TrialSourceClinicalTrialsGov TrialSource = "clinicaltrials_gov"
	TrialSourceNCICTS            TrialSource = "nci_cts"
)

// GenomicLocation is a chr:start-end triple on a named assembly.
type GenomicLocation struct {
	Chromosome string `json:"chromosome,omitempty"`
	Start      int64  `json:"start,omitempty"`
	End        int64  `json:"end,omitempty"`
	Assembly   string `json:"assembly,omitempty"`
}

// ProteinDomain is one entry in Gene.Domains.
type ProteinDomain struct {
	Name     string `json:"name"`
	Source   string `json:"source,omitempty"`
	StartPos int    `json:"start_pos,omitempty"`
	EndPos   int    `json:"end_pos,omitempty"`
}

// PathwayRef is a shared pathway reference type used by Gene and Disease.
type PathwayRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Source string `json:"source,omitempty"`
}

// GOTerm is one Gene Ontology annotation.
type GOTerm struct {
	ID       string `json:"id"`
	Term     string `json:"term"`
	Category string `json:"category,omitempty"` // biological_process | molecular_function | cellular_component
}

// Interaction is one protein-protein interaction partner.
type Interaction struct {
	Partner string  `json:"partner"`
	Source  string  `json:"source,omitempty"`
	Score   float64 `json:"score,omitempty"`
}

// PGxAnnotation is the optional PharmGKB summary embedded in Gene.
type PGxAnnotation struct {
	Drug      string `json:"drug"`
	Phenotype string `json:"phenotype,omitempty"`
	Level     string `json:"level,omitempty"`
}

// CivicContext is the shared optional CIViC evidence summary embedded in
// Gene, Disease, Drug, and (separately, expanded) Variant.
type CivicContext struct {
	EvidenceCount int      `json:"evidence_count"`
	TopDrugs      []string `json:"top_drugs,omitempty"`
	Summary       string   `json:"summary,omitempty"`
}

// Gene is the gene entity record (spec §3, §4.4 "Gene").
type Gene struct {
	Symbol       string           `json:"symbol"`
	EntrezID     string           `json:"entrez_id,omitempty"`
	EnsemblID    string           `json:"ensembl_id,omitempty"`
	HGNCID       string           `json:"hgnc_id,omitempty"`
	Synonyms     []string         `json:"synonyms,omitempty"`
	Location     *GenomicLocation `json:"location,omitempty"`
	Function     string           `json:"function,omitempty"`
	Conditions   []string         `json:"conditions,omitempty"`
	Domains      []ProteinDomain  `json:"domains,omitempty"`
	Pathways     []PathwayRef     `json:"pathways,omitempty"`
	GOTerms      []GOTerm         `json:"go_terms,omitempty"`
	Interactions []Interaction    `json:"interactions,omitempty"`
	Pharmgkb     []PGxAnnotation  `json:"pharmgkb,omitempty"`
	Civic        *CivicContext    `json:"civic,omitempty"`
}

// InSilicoPredictions is Variant's expanded predictor panel (spec §3).
type InSilicoPredictions struct {
	REVEL         *float64 `json:"revel,omitempty"`
	AlphaMissense *float64 `json:"alphamissense,omitempty"`
	SIFT          string   `json:"sift,omitempty"`
	ClinPred      *float64 `json:"clinpred,omitempty"`
	MetaRNN       *float64 `json:"metarnn,omitempty"`
	BayesDel      *float64 `json:"bayesdel,omitempty"`
}

// PopulationFrequency is a gnomAD allele-frequency reading, optionally
// broken down by sub-population (spec §4.3 "exome-preferred, then genome,
// then subpopulation breakdowns").
type PopulationFrequency struct {
	Source         string             `json:"source"` // exome | genome
	AlleleFreq     float64            `json:"allele_freq"`
	AlleleCount    int64              `json:"allele_count,omitempty"`
	AlleleNumber   int64              `json:"allele_number,omitempty"`
	Subpopulations map[string]float64 `json:"subpopulations,omitempty"`
}

// ConservationScores holds cross-species conservation metrics.
type ConservationScores struct {
	PhyloP  *float64 `json:"phylop,omitempty"`
	PhastCons *float64 `json:"phastcons,omitempty"`
	GERP    *float64 `json:"gerp,omitempty"`
}

// TumorContext is the COSMIC tumor-type breakdown embedded in Variant.
type TumorContext struct {
	TumorTypes []string `json:"tumor_types,omitempty"`
	SampleCount int     `json:"sample_count,omitempty"`
}

// DrugAssociation is a CGI (Cancer Genome Interpreter) drug association.
type DrugAssociation struct {
	Drug       string `json:"drug"`
	Evidence   string `json:"evidence,omitempty"`
	Association string `json:"association,omitempty"` // Responsive | Resistant
}

// CivicEvidenceItem is one entry in Variant.CivicEvidence, capped at 20
// (spec §4.3 "flatten a civic JSON sub-object into a cached evidence list
// capped at 20 items").
type CivicEvidenceItem struct {
	ID          string `json:"id"`
	Disease     string `json:"disease,omitempty"`
	Drug        string `json:"drug,omitempty"`
	EvidenceLevel string `json:"evidence_level,omitempty"`
	Significance string `json:"significance,omitempty"`
	Description string `json:"description,omitempty"`
}

// CancerFrequency is a cBioPortal per-study mutation frequency reading.
type CancerFrequency struct {
	Study     string  `json:"study"`
	Frequency float64 `json:"frequency"`
	CaseCount int     `json:"case_count,omitempty"`
}

// GWASAssociation is one GWAS Catalog hit.
type GWASAssociation struct {
	Trait   string  `json:"trait"`
	PValue  float64 `json:"p_value,omitempty"`
	Study   string  `json:"study,omitempty"`
}

// AlphaGenomePrediction is the optional regulatory-effect prediction
// embedded in Variant.
type AlphaGenomePrediction struct {
	ExpressionEffect string  `json:"expression_effect,omitempty"`
	SpliceEffect     string  `json:"splice_effect,omitempty"`
	ChromatinEffect  string  `json:"chromatin_effect,omitempty"`
	TopGene          string  `json:"top_gene,omitempty"`
	Score            float64 `json:"score,omitempty"`
}

// Variant is the genomic-variant entity record (spec §3, §4.4 "Variant").
type Variant struct {
	GenomicID            string                 `json:"genomic_id"`
	Gene                 string                 `json:"gene,omitempty"`
	HGVSP                string                 `json:"hgvs_p,omitempty"`
	HGVSC                string                 `json:"hgvs_c,omitempty"`
	RSID                 string                 `json:"rsid,omitempty"`
	COSMICID             string                 `json:"cosmic_id,omitempty"`
	Significance         ClinicalSignificance   `json:"significance,omitempty"`
	ClinVarReviewStars   int                    `json:"clinvar_review_stars"`
	PopulationFrequency  []PopulationFrequency  `json:"population_frequency,omitempty"`
	Conservation         *ConservationScores    `json:"conservation,omitempty"`
	Predictions          *InSilicoPredictions   `json:"predictions,omitempty"`
	TumorContext         *TumorContext          `json:"tumor_context,omitempty"`
	CGIAssociations      []DrugAssociation      `json:"cgi_associations,omitempty"`
	CivicEvidence        []CivicEvidenceItem    `json:"civic_evidence,omitempty"`
	CancerFrequencies    []CancerFrequency      `json:"cancer_frequencies,omitempty"`
	GWASAssociations     []GWASAssociation      `json:"gwas_associations,omitempty"`
	AlphaGenome          *AlphaGenomePrediction `json:"alphagenome,omitempty"`
}

// PhenotypeAssociation is an HPO phenotype qualified with frequency, age of
// onset, and sex (spec §3 "phenotypes with HPO frequency/onset/sex
// qualifiers").
type PhenotypeAssociation struct {
	HPOID     string `json:"hpo_id"`
	Term      string `json:"term"`
	Frequency string `json:"frequency,omitempty"`
	Onset     string `json:"onset,omitempty"`
	Sex       string `json:"sex,omitempty"`
}

// PrevalenceEvidence is a single prevalence estimate for a disease.
type PrevalenceEvidence struct {
	Source     string  `json:"source"`
	Value      string  `json:"value"`
	Population string  `json:"population,omitempty"`
}

// Disease is the disease/condition entity record (spec §3, §4.4 "Disease").
type Disease struct {
	ID           string                 `json:"id"` // MONDO: or DOID:, colon-prefixed, upper-cased
	Name         string                 `json:"name"`
	Definition   string                 `json:"definition,omitempty"`
	Synonyms     []string               `json:"synonyms,omitempty"`
	Parents      []string               `json:"parents,omitempty"`
	Genes        []string               `json:"genes,omitempty"`
	Pathways     []PathwayRef           `json:"pathways,omitempty"`
	Phenotypes   []PhenotypeAssociation `json:"phenotypes,omitempty"`
	Variants     []string               `json:"variants,omitempty"`
	Models       []string               `json:"models,omitempty"`
	Prevalence   []PrevalenceEvidence   `json:"prevalence,omitempty"`
	Civic        *CivicContext          `json:"civic,omitempty"`
	Xrefs        map[string]string      `json:"xrefs,omitempty"`
}

// DrugLabel is the (truncated) FDA label text embedded in Drug.
type DrugLabel struct {
	Indications string `json:"indications,omitempty"`
	Warnings    string `json:"warnings,omitempty"`
	Dosage      string `json:"dosage,omitempty"`
}

// ShortageEntry is one active or historical drug-shortage record.
type ShortageEntry struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
	Since  string `json:"since,omitempty"`
}

// DrugApproval is one Drugs@FDA approval action.
type DrugApproval struct {
	ApplicationNumber string `json:"application_number"`
	Date              string `json:"date,omitempty"`
	Type              string `json:"type,omitempty"`
}

// DrugInteraction is one drug-drug interaction.
type DrugInteraction struct {
	Drug        string `json:"drug"`
	Description string `json:"description,omitempty"`
	Severity    string `json:"severity,omitempty"`
}

// Drug is the drug entity record (spec §3, §4.4 "Drug").
type Drug struct {
	Name          string                    `json:"name"`
	DrugBankID    string                    `json:"drugbank_id,omitempty"`
	ChEMBLID      string                    `json:"chembl_id,omitempty"`
	UNII          string                    `json:"unii,omitempty"`
	Mechanisms    []string                  `json:"mechanisms,omitempty"`
	Indications   []string                  `json:"indications,omitempty"`
	Targets       []string                  `json:"targets,omitempty"`
	BrandNames    []string                  `json:"brand_names,omitempty"`
	Route         string                    `json:"route,omitempty"`
	Label         *DrugLabel                `json:"label,omitempty"`
	Shortages     []ShortageEntry           `json:"shortages,omitempty"`
	Approvals     []DrugApproval            `json:"approvals,omitempty"`
	Civic         *CivicContext             `json:"civic,omitempty"`
	Interactions  []DrugInteraction         `json:"interactions,omitempty"`
}

// PubTatorCounts is the optional PubTator3 entity-annotation tally embedded
// in Article.
type PubTatorCounts struct {
	Genes     int `json:"genes"`
	Diseases  int `json:"diseases"`
	Chemicals int `json:"chemicals"`
	Mutations int `json:"mutations"`
}

// Article is the literature entity record (spec §3, §4.4 "Article").
type Article struct {
	PMID            string          `json:"pmid,omitempty"`
	PMCID           string          `json:"pmcid,omitempty"`
	DOI             string          `json:"doi,omitempty"`
	Title           string          `json:"title"`
	Authors         []string        `json:"authors,omitempty"` // abbreviated
	Journal         string          `json:"journal,omitempty"`
	Date            string          `json:"date,omitempty"`
	CitationCount   int             `json:"citation_count,omitempty"`
	Type            PublicationType `json:"type,omitempty"`
	Retracted       bool            `json:"retracted"`
	OpenAccess      bool            `json:"open_access"`
	Abstract        string          `json:"abstract,omitempty"` // truncated
	FullTextPath    string          `json:"full_text_path,omitempty"`
	PubTator        *PubTatorCounts `json:"pubtator,omitempty"`
}

// Trial is the minimal normalized façade over an upstream trial record
// (spec §3, §4.4 "Trial") — the orchestrator passes the upstream JSON
// through unchanged alongside this façade rather than fully remodeling it.
type Trial struct {
	Source        TrialSource       `json:"source"`
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Phase         string            `json:"phase,omitempty"`
	Status        string            `json:"status,omitempty"`
	Conditions    []string          `json:"conditions,omitempty"`
	Interventions []string          `json:"interventions,omitempty"`
	Raw           map[string]any    `json:"raw,omitempty"`
}

// PatientDemographics is the FAERS patient block embedded in AdverseEvent.
type PatientDemographics struct {
	Age    *float64 `json:"age,omitempty"`
	AgeUnit string  `json:"age_unit,omitempty"`
	Sex    string   `json:"sex,omitempty"`
	WeightKG *float64 `json:"weight_kg,omitempty"`
}

// AdverseEvent is a FAERS drug adverse-event report (spec §3, §4.4).
type AdverseEvent struct {
	ReportID            string              `json:"report_id"`
	SuspectDrug         string              `json:"suspect_drug"`
	Reactions           []string            `json:"reactions,omitempty"` // deduped
	OutcomeFlags        []string            `json:"outcome_flags,omitempty"`
	Patient             PatientDemographics `json:"patient"`
	ConcomitantMeds     []string            `json:"concomitant_meds,omitempty"`
	ReporterRole        string              `json:"reporter_role,omitempty"`
	ReporterCountry     string              `json:"reporter_country,omitempty"`
	Indication          string              `json:"indication,omitempty"`
	Serious             bool                `json:"serious"`
	Date                string              `json:"date,omitempty"`
}

// DeviceEvent is a FAERS/MAUDE medical-device adverse-event report.
type DeviceEvent struct {
	ReportID     string   `json:"report_id"`
	DeviceName   string   `json:"device_name"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	EventType    []string `json:"event_type,omitempty"`
	PatientOutcome []string `json:"patient_outcome,omitempty"`
	Date         string   `json:"date,omitempty"`
}

// DrugRecall is an openFDA drug-enforcement (recall) record.
type DrugRecall struct {
	RecallNumber string `json:"recall_number"`
	Product      string `json:"product"`
	Reason       string `json:"reason,omitempty"`
	Classification string `json:"classification,omitempty"` // Class I/II/III
	Status       string `json:"status,omitempty"`
	Date         string `json:"date,omitempty"`
}

// PGxPair is a resolved gene+drug pharmacogenomic pair (spec §3, §4.6
// supplemented pgx orchestrator).
type PGxPair struct {
	Gene string `json:"gene"`
	Drug string `json:"drug"`
}

// PGxRecommendation is a CPIC dosing recommendation for a PGxPair.
type PGxRecommendation struct {
	Phenotype      string `json:"phenotype"`
	Recommendation string `json:"recommendation"`
	Strength       string `json:"strength,omitempty"`
	Guideline      string `json:"guideline,omitempty"`
}

// PGxFrequency is an allele-frequency context reading for a PGx phenotype
// in a given population.
type PGxFrequency struct {
	Population string  `json:"population"`
	Phenotype  string  `json:"phenotype"`
	Frequency  float64 `json:"frequency"`
}

// PGxGuideline is a PharmGKB dosing guideline document reference.
type PGxGuideline struct {
	Source string `json:"source"` // cpic | pharmgkb
	Name   string `json:"name"`
	URL    string `json:"url,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// SearchPage is the uniform paginated-result envelope returned by search
// operations (spec §3 "SearchPage<T>").
type SearchPage[T any] struct {
	Results []T  `json:"results"`
	Total   *int `json:"total,omitempty"`
}
