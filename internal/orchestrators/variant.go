package orchestrators

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/entities"
	"github.com/biomcp-go/biomcp/internal/sections"
	"github.com/biomcp-go/biomcp/internal/sources"
	"github.com/biomcp-go/biomcp/internal/transforms"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// VariantOrchestrator resolves and enriches a single genomic variant (spec
// §4.4 "Variant", §4.6 orchestrator shape).
type VariantOrchestrator struct {
	MyVariant   *sources.MyVariantClient
	CGI         *sources.CGIClient
	Civic       *sources.CivicClient
	CBioPortal  *sources.CBioPortalClient
	AlphaGenome *sources.AlphaGenomeClient
	GWAS        *sources.GWASCatalogClient
	Logger      *logrus.Logger
}

// VariantResult is the gated entity plus any degradation warnings.
type VariantResult struct {
	Variant  entities.Variant
	Warnings []Warning
}

// Get resolves genomicID (an HGVS genomic id or rsID) and enriches the
// requested sections (spec §9 "section vocabulary").
func (o *VariantOrchestrator) Get(ctx context.Context, genomicID string, sectionNames []string) (VariantResult, error) {
	genomicID = strings.TrimSpace(genomicID)
	if genomicID == "" {
		return VariantResult{}, biomcperr.InvalidArgument("genomic id must not be empty")
	}
	sel, err := sections.Parse("variant", sectionNames)
	if err != nil {
		return VariantResult{}, err
	}

	raw, err := o.MyVariant.Get(ctx, genomicID)
	if err != nil {
		return VariantResult{}, err
	}
	variant, err := transforms.BuildVariant(raw)
	if err != nil {
		return VariantResult{}, biomcperr.APIJSON("myvariant", err)
	}
	if variant.Gene == "" {
		variant.Gene = entities.NormalizeGeneSymbol(genomicID)
	}

	rc := &resultCollector{}
	g, gctx := errgroup.WithContext(ctx)

	if sel.Has("cgi") && o.CGI != nil {
		g.Go(runSection(gctx, rc, o.Logger, "cgi", func(ctx context.Context) error {
			rows, err := o.CGI.DrugAssociations(ctx, variant.Gene, variant.HGVSP)
			if err != nil {
				return err
			}
			for _, row := range rows {
				variant.CGIAssociations = append(variant.CGIAssociations, entities.DrugAssociation{
					Drug: row.Drug, Association: row.Association, Evidence: row.Evidence,
				})
			}
			return nil
		}))
	}

	if sel.Has("civic") && o.Civic != nil && len(variant.CivicEvidence) == 0 {
		g.Go(runSection(gctx, rc, o.Logger, "civic", func(ctx context.Context) error {
			data, err := o.Civic.EvidenceForVariant(ctx, variant.HGVSP)
			if err != nil {
				return err
			}
			blob, err := json.Marshal(data)
			if err != nil {
				return err
			}
			variant.CivicEvidence = transforms.CivicEvidenceFromMolecularProfiles(blob)
			return nil
		}))
	}

	if sel.Has("cbioportal") && o.CBioPortal != nil {
		g.Go(runSection(gctx, rc, o.Logger, "cbioportal", func(ctx context.Context) error {
			summary, err := o.CBioPortal.MutationFrequencies(ctx, variant.Gene, variant.HGVSP)
			if err != nil {
				return err
			}
			rows, _ := summary["cancer_distribution"].([]any)
			for _, row := range rows {
				m, ok := row.(map[string]any)
				if !ok {
					continue
				}
				study, _ := m["study"].(string)
				freq, _ := m["frequency"].(float64)
				if study == "" {
					continue
				}
				variant.CancerFrequencies = append(variant.CancerFrequencies, entities.CancerFrequency{Study: study, Frequency: freq})
			}
			return nil
		}))
	}

	if sel.Has("predict") && o.AlphaGenome != nil {
		g.Go(runSection(gctx, rc, o.Logger, "predict", func(ctx context.Context) error {
			data, err := o.AlphaGenome.Predict(ctx, genomicID)
			if err != nil {
				if biomcperr.IsKind(err, biomcperr.KindAPIKeyRequired) {
					return nil
				}
				return err
			}
			variant.AlphaGenome = alphaGenomeFromResponse(data)
			return nil
		}))
	}

	if sel.Has("gwas") && o.GWAS != nil && variant.RSID != "" {
		g.Go(runSection(gctx, rc, o.Logger, "gwas", func(ctx context.Context) error {
			data, err := o.GWAS.AssociationsForRSID(ctx, variant.RSID)
			if err != nil {
				return err
			}
			rows, _ := data["associations"].([]any)
			var asMaps []map[string]any
			for _, row := range rows {
				if m, ok := row.(map[string]any); ok {
					asMaps = append(asMaps, m)
				}
			}
			variant.GWASAssociations = transforms.GWASAssociationsFromRows(asMaps)
			return nil
		}))
	}

	_ = g.Wait()

	gateVariant(&variant, sel)
	return VariantResult{Variant: variant, Warnings: rc.Warnings()}, nil
}

func alphaGenomeFromResponse(data map[string]any) *entities.AlphaGenomePrediction {
	if data == nil {
		return nil
	}
	pred := &entities.AlphaGenomePrediction{}
	pred.ExpressionEffect, _ = data["expression_effect"].(string)
	pred.SpliceEffect, _ = data["splice_effect"].(string)
	pred.ChromatinEffect, _ = data["chromatin_effect"].(string)
	pred.TopGene, _ = data["top_gene"].(string)
	pred.Score, _ = data["score"].(float64)
	return pred
}

// gateVariant clears fields whose section was not requested (spec §9
// "section vocabulary ... clear unrequested fields").
func gateVariant(v *entities.Variant, sel sections.Set) {
	if !sel.Has("clinvar") {
		v.Significance = entities.SignificanceUnknown
		v.ClinVarReviewStars = 0
	}
	if !sel.Has("population") {
		v.PopulationFrequency = nil
	}
	if !sel.Has("conservation") {
		v.Conservation = nil
	}
	if !sel.Has("predictions") {
		v.Predictions = nil
	}
	if !sel.Has("cosmic") {
		v.TumorContext = nil
	}
	if !sel.Has("cgi") {
		v.CGIAssociations = nil
	}
	if !sel.Has("civic") {
		v.CivicEvidence = nil
	}
	if !sel.Has("cbioportal") {
		v.CancerFrequencies = nil
	}
	if !sel.Has("gwas") {
		v.GWASAssociations = nil
	}
	if !sel.Has("predict") {
		v.AlphaGenome = nil
	}
}
