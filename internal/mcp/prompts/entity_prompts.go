package prompts

import (
	"context"
	"fmt"
	"time"
)

// GeneSummaryPrompt renders an instruction prompt for summarizing an
// aggregated gene record across its fetched sections.
type GeneSummaryPrompt struct{}

func NewGeneSummaryPrompt() *GeneSummaryPrompt { return &GeneSummaryPrompt{} }

func (p *GeneSummaryPrompt) SupportsPrompt(name string) bool { return name == "gene_summary" }

func (p *GeneSummaryPrompt) GetArgumentSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"symbol": map[string]interface{}{"type": "string"},
		},
		"required": []string{"symbol"},
	}
}

func (p *GeneSummaryPrompt) ValidateArguments(args map[string]interface{}) error {
	symbol, ok := args["symbol"].(string)
	if !ok || symbol == "" {
		return fmt.Errorf("gene_summary requires a non-empty string argument %q", "symbol")
	}
	return nil
}

func (p *GeneSummaryPrompt) GetPromptInfo() PromptInfo {
	return PromptInfo{
		Name:        "gene_summary",
		Description: "Summarize a gene's function, pathways, and pharmacogenomic relevance from its aggregated record",
		Version:     "1.0",
		Category:    "gene",
		Arguments: []ArgumentInfo{
			{Name: "symbol", Description: "Gene symbol, e.g. \"BRCA1\"", Type: "string", Required: true, Examples: []string{"BRCA1", "EGFR"}},
		},
	}
}

func (p *GeneSummaryPrompt) RenderPrompt(ctx context.Context, args map[string]interface{}) (*RenderedPrompt, error) {
	symbol, _ := args["symbol"].(string)
	system := "You are summarizing a gene record aggregated from MyGene.info, UniProt, Reactome, " +
		"Gene Ontology, PharmGKB, and CIViC. Cite the section a fact came from."
	user := fmt.Sprintf("Call get_gene for %q, then summarize its function, notable pathways, and any "+
		"pharmacogenomic annotations in under 200 words.", symbol)
	return &RenderedPrompt{
		Name:         "gene_summary",
		SystemPrompt: system,
		UserPrompt:   user,
		Content:      system + "\n\n" + user,
		Instructions: []string{
			"Prefer sections with explicit evidence over inferred summaries.",
			"Flag when a section was unavailable rather than silently omitting it.",
		},
		Arguments:   args,
		GeneratedAt: time.Now(),
	}, nil
}

// PGxConsultPrompt renders a prompt guiding a pharmacogenomic dosing consult.
type PGxConsultPrompt struct{}

func NewPGxConsultPrompt() *PGxConsultPrompt { return &PGxConsultPrompt{} }

func (p *PGxConsultPrompt) SupportsPrompt(name string) bool { return name == "pgx_consult" }

func (p *PGxConsultPrompt) GetArgumentSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"gene": map[string]interface{}{"type": "string"},
			"drug": map[string]interface{}{"type": "string"},
		},
		"required": []string{"gene", "drug"},
	}
}

func (p *PGxConsultPrompt) ValidateArguments(args map[string]interface{}) error {
	for _, key := range []string{"gene", "drug"} {
		v, ok := args[key].(string)
		if !ok || v == "" {
			return fmt.Errorf("pgx_consult requires a non-empty string argument %q", key)
		}
	}
	return nil
}

func (p *PGxConsultPrompt) GetPromptInfo() PromptInfo {
	return PromptInfo{
		Name:        "pgx_consult",
		Description: "Walk through CPIC dosing guidance and PharmGKB allele frequencies for a gene+drug pair",
		Version:     "1.0",
		Category:    "pharmacogenomics",
		Arguments: []ArgumentInfo{
			{Name: "gene", Description: "Gene symbol, e.g. \"CYP2C19\"", Type: "string", Required: true},
			{Name: "drug", Description: "Drug name, e.g. \"clopidogrel\"", Type: "string", Required: true},
		},
	}
}

func (p *PGxConsultPrompt) RenderPrompt(ctx context.Context, args map[string]interface{}) (*RenderedPrompt, error) {
	gene, _ := args["gene"].(string)
	drug, _ := args["drug"].(string)
	system := "You are presenting pharmacogenomic dosing guidance. Distinguish a CPIC " +
		"recommendation's strength from a PharmGKB guideline excerpt; never state a recommendation " +
		"more strongly than its source classification supports."
	user := fmt.Sprintf("Call get_pgx with gene=%q and drug=%q, then explain the recommendation, "+
		"its evidence strength, and any population-specific allele frequencies worth noting.", gene, drug)
	return &RenderedPrompt{
		Name:         "pgx_consult",
		SystemPrompt: system,
		UserPrompt:   user,
		Content:      system + "\n\n" + user,
		Arguments:    args,
		GeneratedAt:  time.Now(),
	}, nil
}

// LiteratureReviewPrompt renders a prompt for synthesizing article search
// results into a short review.
type LiteratureReviewPrompt struct{}

func NewLiteratureReviewPrompt() *LiteratureReviewPrompt { return &LiteratureReviewPrompt{} }

func (p *LiteratureReviewPrompt) SupportsPrompt(name string) bool { return name == "literature_review" }

func (p *LiteratureReviewPrompt) GetArgumentSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"gene":    map[string]interface{}{"type": "string"},
			"disease": map[string]interface{}{"type": "string"},
		},
	}
}

func (p *LiteratureReviewPrompt) ValidateArguments(args map[string]interface{}) error {
	gene, _ := args["gene"].(string)
	disease, _ := args["disease"].(string)
	if gene == "" && disease == "" {
		return fmt.Errorf("literature_review requires at least one of %q or %q", "gene", "disease")
	}
	return nil
}

func (p *LiteratureReviewPrompt) GetPromptInfo() PromptInfo {
	return PromptInfo{
		Name:        "literature_review",
		Description: "Synthesize a short literature review from Europe PMC article search results",
		Version:     "1.0",
		Category:    "literature",
		Arguments: []ArgumentInfo{
			{Name: "gene", Description: "Gene symbol filter", Type: "string", Required: false},
			{Name: "disease", Description: "Disease/condition filter", Type: "string", Required: false},
		},
	}
}

func (p *LiteratureReviewPrompt) RenderPrompt(ctx context.Context, args map[string]interface{}) (*RenderedPrompt, error) {
	gene, _ := args["gene"].(string)
	disease, _ := args["disease"].(string)
	system := "You are synthesizing recent literature. Group findings by theme rather than " +
		"listing articles one by one, and note publication recency."
	user := fmt.Sprintf("Call search_article with gene=%q and disease=%q (whichever is set), "+
		"then write a 3-5 bullet synthesis of what the results say.", gene, disease)
	return &RenderedPrompt{
		Name:         "literature_review",
		SystemPrompt: system,
		UserPrompt:   user,
		Content:      system + "\n\n" + user,
		Arguments:    args,
		GeneratedAt:  time.Now(),
	}, nil
}
