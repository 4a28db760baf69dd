package orchestrators

import (
	"context"
	"strings"
	"time"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/entities"
	"github.com/biomcp-go/biomcp/internal/transforms"
)

// validateLimit enforces spec §9's uniform search-limit rule: limit = 0 or
// limit > 50 is rejected before any upstream call.
func validateLimit(limit int) error {
	if limit <= 0 || limit > 50 {
		return biomcperr.InvalidArgument("limit must be between 1 and 50, got %d", limit)
	}
	return nil
}

// validateSince enforces that a non-empty --since filter is a well-formed
// RFC 3339 date (YYYY-MM-DD); malformed dates fail fast rather than being
// silently ignored by the upstream API (spec §9, the benchmark harness's
// contract_invalid_*_since_* cases).
func validateSince(since string) error {
	if since == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", since); err != nil {
		return biomcperr.InvalidArgument("since must be an RFC 3339 date (YYYY-MM-DD), got %q", since)
	}
	return nil
}

// Search searches MyGene.info for genes matching query.
func (o *GeneOrchestrator) Search(ctx context.Context, query string, limit int) (entities.SearchPage[entities.Gene], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return entities.SearchPage[entities.Gene]{}, biomcperr.InvalidArgument("search query must not be empty")
	}
	if err := validateLimit(limit); err != nil {
		return entities.SearchPage[entities.Gene]{}, err
	}
	total, rows, err := o.MyGene.Query(ctx, query, limit, 0)
	if err != nil {
		return entities.SearchPage[entities.Gene]{}, err
	}
	genes := make([]entities.Gene, 0, len(rows))
	for _, row := range rows {
		g, err := transforms.BuildGene(row)
		if err != nil {
			continue
		}
		genes = append(genes, g)
	}
	return entities.SearchPage[entities.Gene]{Results: genes, Total: &total}, nil
}

// Search searches MyVariant.info for variants matching query.
func (o *VariantOrchestrator) Search(ctx context.Context, query string, limit int) (entities.SearchPage[entities.Variant], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return entities.SearchPage[entities.Variant]{}, biomcperr.InvalidArgument("search query must not be empty")
	}
	if err := validateLimit(limit); err != nil {
		return entities.SearchPage[entities.Variant]{}, err
	}
	total, rows, err := o.MyVariant.Query(ctx, query, limit, 0)
	if err != nil {
		return entities.SearchPage[entities.Variant]{}, err
	}
	variants := make([]entities.Variant, 0, len(rows))
	for _, row := range rows {
		v, err := transforms.BuildVariant(row)
		if err != nil {
			continue
		}
		variants = append(variants, v)
	}
	return entities.SearchPage[entities.Variant]{Results: variants, Total: &total}, nil
}

// Search searches MyDisease.info for diseases matching query.
func (o *DiseaseOrchestrator) Search(ctx context.Context, query string, limit int) (entities.SearchPage[entities.Disease], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return entities.SearchPage[entities.Disease]{}, biomcperr.InvalidArgument("search query must not be empty")
	}
	if err := validateLimit(limit); err != nil {
		return entities.SearchPage[entities.Disease]{}, err
	}
	total, rows, err := o.MyDisease.Query(ctx, query, limit, 0)
	if err != nil {
		return entities.SearchPage[entities.Disease]{}, err
	}
	diseases := make([]entities.Disease, 0, len(rows))
	for _, row := range rows {
		d, err := transforms.BuildDisease(row)
		if err != nil {
			continue
		}
		diseases = append(diseases, d)
	}
	return entities.SearchPage[entities.Disease]{Results: diseases, Total: &total}, nil
}

// Search searches MyChem.info for drugs matching query.
func (o *DrugOrchestrator) Search(ctx context.Context, query string, limit int) (entities.SearchPage[entities.Drug], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return entities.SearchPage[entities.Drug]{}, biomcperr.InvalidArgument("search query must not be empty")
	}
	if err := validateLimit(limit); err != nil {
		return entities.SearchPage[entities.Drug]{}, err
	}
	total, rows, err := o.MyChem.Query(ctx, query, limit, 0)
	if err != nil {
		return entities.SearchPage[entities.Drug]{}, err
	}
	drugs := make([]entities.Drug, 0, len(rows))
	for _, row := range rows {
		d, err := transforms.BuildDrug(row)
		if err != nil {
			continue
		}
		drugs = append(drugs, d)
	}
	return entities.SearchPage[entities.Drug]{Results: drugs, Total: &total}, nil
}

// ArticleSearchParams narrows an Europe PMC article search.
type ArticleSearchParams struct {
	Gene    string
	Disease string
	Since   string // RFC 3339 date, YYYY-MM-DD
	Limit   int
}

// Search searches Europe PMC for articles matching the gene/disease filters
// and an optional publication-date floor.
func (o *ArticleOrchestrator) Search(ctx context.Context, params ArticleSearchParams) (entities.SearchPage[entities.Article], error) {
	if err := validateLimit(params.Limit); err != nil {
		return entities.SearchPage[entities.Article]{}, err
	}
	if err := validateSince(params.Since); err != nil {
		return entities.SearchPage[entities.Article]{}, err
	}

	var terms []string
	if params.Gene != "" {
		terms = append(terms, "GENE:\""+params.Gene+"\"")
	}
	if params.Disease != "" {
		terms = append(terms, "DISEASE:\""+params.Disease+"\"")
	}
	if params.Since != "" {
		terms = append(terms, "FIRST_PDATE:["+params.Since+" TO 3000-01-01]")
	}
	if len(terms) == 0 {
		return entities.SearchPage[entities.Article]{}, biomcperr.InvalidArgument("article search requires at least one of gene, disease, or since")
	}
	query := strings.Join(terms, " AND ")

	data, err := o.EuropePMC.Search(ctx, query, params.Limit, 0)
	if err != nil {
		return entities.SearchPage[entities.Article]{}, err
	}
	result, _ := data["resultList"].(map[string]any)
	rows, _ := result["result"].([]any)
	articles := make([]entities.Article, 0, len(rows))
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			continue
		}
		articles = append(articles, buildArticle(m))
	}
	var total *int
	if hitCount, ok := data["hitCount"].(float64); ok {
		n := int(hitCount)
		total = &n
	}
	return entities.SearchPage[entities.Article]{Results: articles, Total: total}, nil
}
