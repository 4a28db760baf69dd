package orchestrators

import (
	"context"
	"strings"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/entities"
	"github.com/biomcp-go/biomcp/internal/sections"
	"github.com/biomcp-go/biomcp/internal/sources"
	"github.com/biomcp-go/biomcp/internal/transforms"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DrugOrchestrator resolves a drug name/identifier and enriches its
// requested sections (spec §4.4 "Drug").
type DrugOrchestrator struct {
	MyChem      *sources.MyChemClient
	ChEMBL      *sources.ChEMBLClient
	OpenFDA     *sources.OpenFDAClient
	OpenTargets *sources.OpenTargetsClient
	Civic       *sources.CivicClient
	Logger      *logrus.Logger
}

// DrugResult is the gated entity plus any degradation warnings.
type DrugResult struct {
	Drug     entities.Drug
	Warnings []Warning
}

// Get resolves nameOrID to a drug and enriches the requested sections.
func (o *DrugOrchestrator) Get(ctx context.Context, nameOrID string, sectionNames []string) (DrugResult, error) {
	nameOrID = strings.TrimSpace(nameOrID)
	if nameOrID == "" {
		return DrugResult{}, biomcperr.InvalidArgument("drug name must not be empty")
	}
	sel, err := sections.Parse("drug", sectionNames)
	if err != nil {
		return DrugResult{}, err
	}

	raw, err := o.resolve(ctx, nameOrID)
	if err != nil {
		return DrugResult{}, err
	}
	drug, err := transforms.BuildDrug(raw)
	if err != nil {
		return DrugResult{}, biomcperr.APIJSON("mychem", err)
	}

	rc := &resultCollector{}
	g, gctx := errgroup.WithContext(ctx)

	if sel.Has("label") && o.OpenFDA != nil {
		g.Go(runSection(gctx, rc, o.Logger, "label", func(ctx context.Context) error {
			data, err := o.OpenFDA.Label(ctx, drug.Name)
			if err != nil {
				return err
			}
			results, _ := data["results"].([]any)
			if len(results) == 0 {
				return nil
			}
			row, _ := results[0].(map[string]any)
			drug.Label = transforms.LabelFromOpenFDA(row)
			return nil
		}))
	}

	if sel.Has("shortage") && o.OpenFDA != nil {
		g.Go(runSection(gctx, rc, o.Logger, "shortage", func(ctx context.Context) error {
			data, err := o.OpenFDA.SearchRecalls(ctx, drug.Name, entities.DedupMaxDefault)
			if err != nil {
				return err
			}
			results, _ := data["results"].([]any)
			var rows []map[string]any
			for _, row := range results {
				if m, ok := row.(map[string]any); ok {
					rows = append(rows, m)
				}
			}
			drug.Shortages = transforms.ShortagesFromRows(rows)
			return nil
		}))
	}

	if sel.Has("targets") && o.OpenTargets != nil && drug.ChEMBLID != "" {
		g.Go(runSection(gctx, rc, o.Logger, "targets", func(ctx context.Context) error {
			data, err := o.OpenTargets.DrugSections(ctx, drug.ChEMBLID)
			if err != nil {
				return err
			}
			rows, _ := data["linkedTargets"].([]any)
			var targets []string
			for _, row := range rows {
				if m, ok := row.(map[string]any); ok {
					if symbol, ok := m["approvedSymbol"].(string); ok && symbol != "" {
						targets = append(targets, symbol)
					}
				}
			}
			drug.Targets = entities.DedupStrings(append(drug.Targets, targets...), entities.DedupMaxDefault)
			return nil
		}))
	}

	if sel.Has("indications") && o.ChEMBL != nil && drug.ChEMBLID != "" {
		g.Go(runSection(gctx, rc, o.Logger, "indications", func(ctx context.Context) error {
			data, err := o.ChEMBL.Mechanisms(ctx, drug.ChEMBLID)
			if err != nil {
				return err
			}
			rows, _ := data["mechanisms"].([]any)
			var indications []string
			for _, row := range rows {
				if m, ok := row.(map[string]any); ok {
					if desc, ok := m["mechanism_of_action"].(string); ok && desc != "" {
						indications = append(indications, desc)
					}
				}
			}
			drug.Indications = entities.DedupStrings(indications, entities.DedupMaxDefault)
			return nil
		}))
	}

	if sel.Has("civic") && o.Civic != nil {
		g.Go(runSection(gctx, rc, o.Logger, "civic", func(ctx context.Context) error {
			// CIViC evidence is keyed by gene/variant, not by drug; the
			// orchestrator's civic section intentionally stays empty here
			// until a drug-keyed CIViC endpoint exists.
			return nil
		}))
	}

	_ = g.Wait()

	gateDrug(&drug, sel)
	return DrugResult{Drug: drug, Warnings: rc.Warnings()}, nil
}

func (o *DrugOrchestrator) resolve(ctx context.Context, nameOrID string) ([]byte, error) {
	if strings.HasPrefix(strings.ToUpper(nameOrID), "DB") || strings.HasPrefix(strings.ToUpper(nameOrID), "CHEMBL") {
		return o.MyChem.Get(ctx, nameOrID)
	}
	total, hits, err := o.MyChem.Query(ctx, nameOrID, 10, 0)
	if err != nil {
		return nil, err
	}
	if total == 0 || len(hits) == 0 {
		return nil, biomcperr.NotFound("drug", nameOrID, "check the drug name or DrugBank/ChEMBL id")
	}
	return hits[0], nil
}

func gateDrug(d *entities.Drug, sel sections.Set) {
	if !sel.Has("label") {
		d.Label = nil
	}
	if !sel.Has("shortage") {
		d.Shortages = nil
	}
	if !sel.Has("targets") {
		d.Targets = nil
	}
	if !sel.Has("indications") {
		d.Indications = nil
	}
	if !sel.Has("interactions") {
		d.Interactions = nil
	}
	if !sel.Has("civic") {
		d.Civic = nil
	}
	if !sel.Has("approvals") {
		d.Approvals = nil
	}
}
