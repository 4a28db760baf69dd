package orchestrators

import (
	"context"
	"sort"
	"strings"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/entities"
	"github.com/biomcp-go/biomcp/internal/sections"
	"github.com/biomcp-go/biomcp/internal/sources"
	"github.com/biomcp-go/biomcp/internal/transforms"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DiseaseOrchestrator resolves a free-text disease name or MONDO/DOID id
// and enriches its requested sections (spec §4.4 "Disease", §4.6 "Disease
// resolver prefers broad form ... penalizing subtype markers + carcinoma<->
// cancer fallback").
type DiseaseOrchestrator struct {
	MyDisease   *sources.MyDiseaseClient
	OpenTargets *sources.OpenTargetsClient
	Monarch     *sources.MonarchClient
	Civic       *sources.CivicClient
	Logger      *logrus.Logger
}

// DiseaseResult is the gated entity plus any degradation warnings.
type DiseaseResult struct {
	Disease  entities.Disease
	Warnings []Warning
}

// Get resolves query to a disease and enriches the requested sections.
func (o *DiseaseOrchestrator) Get(ctx context.Context, query string, sectionNames []string) (DiseaseResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return DiseaseResult{}, biomcperr.InvalidArgument("disease query must not be empty")
	}
	sel, err := sections.Parse("disease", sectionNames)
	if err != nil {
		return DiseaseResult{}, err
	}

	raw, err := o.resolve(ctx, query)
	if err != nil {
		return DiseaseResult{}, err
	}
	disease, err := transforms.BuildDisease(raw)
	if err != nil {
		return DiseaseResult{}, biomcperr.APIJSON("mydisease", err)
	}

	rc := &resultCollector{}
	g, gctx := errgroup.WithContext(ctx)

	if sel.Has("genes") && o.OpenTargets != nil {
		g.Go(runSection(gctx, rc, o.Logger, "genes", func(ctx context.Context) error {
			efoID, ok := disease.Xrefs["efo"]
			if !ok {
				efoID = disease.ID
			}
			data, err := o.OpenTargets.DiseaseGenes(ctx, efoID)
			if err != nil {
				return err
			}
			disease.Genes = entities.DedupStrings(geneNamesFromAssociations(data), entities.DedupMaxDefault)
			return nil
		}))
	}

	if sel.Has("prevalence") && o.OpenTargets != nil {
		g.Go(runSection(gctx, rc, o.Logger, "prevalence", func(ctx context.Context) error {
			efoID, ok := disease.Xrefs["efo"]
			if !ok {
				efoID = disease.ID
			}
			data, err := o.OpenTargets.DiseasePrevalence(ctx, efoID)
			if err != nil {
				return err
			}
			rows, _ := data["prevalence"].([]any)
			for _, row := range rows {
				m, ok := row.(map[string]any)
				if !ok {
					continue
				}
				value, _ := m["value"].(string)
				source, _ := m["source"].(string)
				if value == "" {
					continue
				}
				disease.Prevalence = append(disease.Prevalence, entities.PrevalenceEvidence{Source: source, Value: value})
			}
			return nil
		}))
	}

	if sel.Has("variants") && o.Monarch != nil {
		g.Go(runSection(gctx, rc, o.Logger, "variants", func(ctx context.Context) error {
			data, err := o.Monarch.AssociatedGenes(ctx, disease.ID)
			if err != nil {
				return err
			}
			rows, _ := data["associations"].([]any)
			var variants []string
			for _, row := range rows {
				m, ok := row.(map[string]any)
				if !ok {
					continue
				}
				if name, ok := m["variant"].(string); ok && name != "" {
					variants = append(variants, name)
				}
			}
			disease.Variants = entities.DedupStrings(variants, entities.DedupMaxDefault)
			return nil
		}))
	}

	if sel.Has("civic") && o.Civic != nil {
		g.Go(runSection(gctx, rc, o.Logger, "civic", func(ctx context.Context) error {
			// CIViC has no disease-keyed evidence endpoint of its own;
			// evidence is aggregated at the gene/variant level, so the
			// disease-level civic section stays an explicit no-op degrade.
			return nil
		}))
	}

	_ = g.Wait()

	gateDisease(&disease, sel)
	return DiseaseResult{Disease: disease, Warnings: rc.Warnings()}, nil
}

// resolve scores candidate disease documents returned by a free-text
// MyDisease search and picks the best match, falling back to a direct Get
// when query already looks like a MONDO/DOID id.
func (o *DiseaseOrchestrator) resolve(ctx context.Context, query string) ([]byte, error) {
	if strings.Contains(strings.ToUpper(query), "MONDO:") || strings.Contains(strings.ToUpper(query), "DOID:") {
		return o.MyDisease.Get(ctx, entities.NormalizeDiseaseID(query))
	}

	total, hits, err := o.MyDisease.Query(ctx, query, 20, 0)
	if err != nil {
		return nil, err
	}
	if total == 0 || len(hits) == 0 {
		return nil, biomcperr.NotFound("disease", query, "try a broader disease name or a MONDO/DOID id")
	}

	type scored struct {
		raw   []byte
		score int
	}
	candidates := make([]scored, 0, len(hits))
	for _, hit := range hits {
		d, err := transforms.BuildDisease(hit)
		if err != nil {
			continue
		}
		candidates = append(candidates, scored{raw: hit, score: transforms.ResolveDiseaseScore(query, d.Name)})
	}
	if len(candidates) == 0 {
		return nil, biomcperr.NotFound("disease", query, "try a broader disease name or a MONDO/DOID id")
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	return candidates[0].raw, nil
}

func geneNamesFromAssociations(data map[string]any) []string {
	rows, _ := data["rows"].([]any)
	var out []string
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			continue
		}
		if symbol, ok := m["symbol"].(string); ok && symbol != "" {
			out = append(out, symbol)
		}
	}
	return out
}

func gateDisease(d *entities.Disease, sel sections.Set) {
	if !sel.Has("genes") {
		d.Genes = nil
	}
	if !sel.Has("pathways") {
		d.Pathways = nil
	}
	if !sel.Has("phenotypes") {
		d.Phenotypes = nil
	}
	if !sel.Has("variants") {
		d.Variants = nil
	}
	if !sel.Has("models") {
		d.Models = nil
	}
	if !sel.Has("prevalence") {
		d.Prevalence = nil
	}
	if !sel.Has("civic") {
		d.Civic = nil
	}
}
