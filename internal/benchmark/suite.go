package benchmark

// Case is one static benchmark case: a stable id, a kind, an argument
// vector passed to the compiled binary, and a tag set used for suite
// filtering (spec §4.5 "a static list of cases").
type Case struct {
	ID   string
	Kind CaseKind
	Args []string
	Tags []string
}

// fullSuite is the complete fixed command suite (spec §4.5), grounded on
// original_source's FULL_SUITE.
var fullSuite = []Case{
	{ID: "get_gene_braf", Kind: CaseSuccess, Args: []string{"get", "gene", "BRAF"}, Tags: []string{"core"}},
	{ID: "get_variant_braf_v600e", Kind: CaseSuccess, Args: []string{"get", "variant", "BRAF V600E"}, Tags: []string{"core"}},
	{ID: "get_trial_nct02576665", Kind: CaseSuccess, Args: []string{"get", "trial", "NCT02576665"}, Tags: []string{"core"}},
	{ID: "search_article_braf_limit_5", Kind: CaseSuccess, Args: []string{"search", "article", "-g", "BRAF", "--limit", "5"}, Tags: []string{"core"}},
	{ID: "get_drug_imatinib", Kind: CaseSuccess, Args: []string{"get", "drug", "imatinib"}, Tags: []string{"extended"}},
	{ID: "search_trial_melanoma_limit_5", Kind: CaseSuccess, Args: []string{"search", "trial", "-c", "melanoma", "--limit", "5"}, Tags: []string{"extended"}},
	{ID: "get_pgx_cyp2d6", Kind: CaseSuccess, Args: []string{"get", "pgx", "CYP2D6"}, Tags: []string{"extended"}},
	{ID: "search_variant_egfr_limit_5", Kind: CaseSuccess, Args: []string{"search", "variant", "-g", "EGFR", "--limit", "5"}, Tags: []string{"extended"}},
	{ID: "get_disease_mondo_0005105", Kind: CaseSuccess, Args: []string{"get", "disease", "MONDO:0005105"}, Tags: []string{"extended"}},
	{ID: "contract_invalid_article_since_2024_13_01", Kind: CaseContractFailure,
		Args: []string{"search", "article", "-g", "BRAF", "--since", "2024-13-01", "--limit", "1"},
		Tags: []string{"contract", "contract_core"}},
	{ID: "contract_invalid_trial_since_2024_02_30", Kind: CaseContractFailure,
		Args: []string{"search", "trial", "-c", "melanoma", "--since", "2024-02-30", "--limit", "1"},
		Tags: []string{"contract"}},
}

// SelectSuite returns the case list for mode, filtering to "core"/
// "contract_core"-tagged cases in quick mode.
func SelectSuite(mode Mode) []Case {
	if mode == ModeFull {
		return append([]Case(nil), fullSuite...)
	}
	out := make([]Case, 0, len(fullSuite))
	for _, c := range fullSuite {
		if hasTag(c.Tags, "core") || hasTag(c.Tags, "contract_core") {
			out = append(out, c)
		}
	}
	return out
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
