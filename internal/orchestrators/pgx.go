package orchestrators

import (
	"context"
	"strings"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/entities"
	"github.com/biomcp-go/biomcp/internal/sources"
	"github.com/biomcp-go/biomcp/internal/transforms"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// PGxOrchestrator resolves a gene+drug pharmacogenomic pair via CPIC and
// attaches PharmGKB dosing guideline text and allele-frequency context
// (spec §4.6 supplemented pgx orchestrator, grounded on
// original_source's src/sources/{cpic,pharmgkb}.rs).
type PGxOrchestrator struct {
	CPIC     *sources.CPICClient
	PharmGKB *sources.PharmGKBClient
	Logger   *logrus.Logger
}

// PGxResult bundles a resolved gene+drug pair with its recommendations,
// frequencies, and guidelines.
type PGxResult struct {
	Pair            entities.PGxPair
	Recommendations []entities.PGxRecommendation
	Frequencies     []entities.PGxFrequency
	Guidelines      []entities.PGxGuideline
	Warnings        []Warning
}

// Get resolves the gene+drug pair and fans out to CPIC and PharmGKB for
// recommendations, allele frequencies, and dosing guideline text.
func (o *PGxOrchestrator) Get(ctx context.Context, gene, drug string) (PGxResult, error) {
	gene = entities.NormalizeGeneSymbol(gene)
	drug = strings.TrimSpace(drug)
	if gene == "" || drug == "" {
		return PGxResult{}, biomcperr.InvalidArgument("pgx lookup requires both a gene symbol and a drug name")
	}
	pair := entities.PGxPair{Gene: gene, Drug: drug}

	rc := &resultCollector{}
	var recommendations []entities.PGxRecommendation
	var frequencies []entities.PGxFrequency
	var guidelines []entities.PGxGuideline

	g, gctx := errgroup.WithContext(ctx)

	if o.CPIC != nil {
		g.Go(runSection(gctx, rc, o.Logger, "recommendations", func(ctx context.Context) error {
			rows, err := o.CPIC.Recommendations(ctx, gene, drug)
			if err != nil {
				return err
			}
			recommendations = recommendationsFromCPIC(rows)
			return nil
		}))
	}

	if o.PharmGKB != nil {
		g.Go(runSection(gctx, rc, o.Logger, "guidelines", func(ctx context.Context) error {
			data, err := o.PharmGKB.DosingGuideline(ctx, gene, drug)
			if err != nil {
				return err
			}
			guidelines, frequencies = guidelinesAndFrequenciesFromPharmGKB(data)
			return nil
		}))
	}

	_ = g.Wait()

	return PGxResult{
		Pair:            pair,
		Recommendations: recommendations,
		Frequencies:     frequencies,
		Guidelines:      guidelines,
		Warnings:        rc.Warnings(),
	}, nil
}

// GetByGene resolves PharmGKB's clinical annotations for gene without a
// specific drug, for callers (e.g. the CLI's single-argument "get pgx
// <gene>" form) that don't have a drug name in hand.
func (o *PGxOrchestrator) GetByGene(ctx context.Context, gene string) ([]entities.PGxAnnotation, error) {
	gene = entities.NormalizeGeneSymbol(gene)
	if gene == "" {
		return nil, biomcperr.InvalidArgument("pgx gene lookup requires a gene symbol")
	}
	if o.PharmGKB == nil {
		return nil, biomcperr.SourceUnavailable("pharmgkb", "client not configured", "")
	}
	data, err := o.PharmGKB.ClinicalAnnotationsForGene(ctx, gene)
	if err != nil {
		return nil, err
	}
	rows, _ := data["data"].([]any)
	asMaps := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]any); ok {
			asMaps = append(asMaps, m)
		}
	}
	return transforms.PGxAnnotationsFromPharmGKB(asMaps), nil
}

func recommendationsFromCPIC(rows []map[string]any) []entities.PGxRecommendation {
	out := make([]entities.PGxRecommendation, 0, len(rows))
	for _, row := range rows {
		phenotype, _ := row["phenotypes"].(string)
		text, _ := row["drugrecommendation"].(string)
		strength, _ := row["classification"].(string)
		if text == "" {
			continue
		}
		out = append(out, entities.PGxRecommendation{
			Phenotype:      phenotype,
			Recommendation: text,
			Strength:       strength,
			Guideline:      "CPIC",
		})
	}
	return out
}

func guidelinesAndFrequenciesFromPharmGKB(data map[string]any) ([]entities.PGxGuideline, []entities.PGxFrequency) {
	var guidelines []entities.PGxGuideline
	var frequencies []entities.PGxFrequency

	rows, _ := data["data"].([]any)
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		if name == "" {
			continue
		}
		guideline := entities.PGxGuideline{Source: "pharmgkb", Name: name}
		if url, ok := m["url"].(string); ok {
			guideline.URL = url
		}
		if summary, ok := m["summaryMarkdown"].(map[string]any); ok {
			guideline.Summary, _ = summary["html"].(string)
		}
		guidelines = append(guidelines, guideline)

		if freqRows, ok := m["alleleFrequencies"].([]any); ok {
			for _, fr := range freqRows {
				fm, ok := fr.(map[string]any)
				if !ok {
					continue
				}
				population, _ := fm["population"].(string)
				phenotype, _ := fm["phenotype"].(string)
				value, _ := fm["frequency"].(float64)
				if population == "" {
					continue
				}
				frequencies = append(frequencies, entities.PGxFrequency{
					Population: population,
					Phenotype:  phenotype,
					Frequency:  value,
				})
			}
		}
	}
	return guidelines, frequencies
}
