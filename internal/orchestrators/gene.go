package orchestrators

import (
	"context"
	"encoding/json"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/entities"
	"github.com/biomcp-go/biomcp/internal/sections"
	"github.com/biomcp-go/biomcp/internal/sources"
	"github.com/biomcp-go/biomcp/internal/substrate"
	"github.com/biomcp-go/biomcp/internal/transforms"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// GeneOrchestrator resolves a gene symbol/alias and enriches its requested
// sections (spec §4.4 "Gene", §4.6 "resolution: gene exact-symbol->alias->
// top-scored").
type GeneOrchestrator struct {
	MyGene     *sources.MyGeneClient
	StringDB   *sources.StringDBClient
	Reactome   *sources.ReactomeClient
	QuickGO    *sources.QuickGOClient
	InterPro   *sources.InterProClient
	UniProt    *sources.UniProtClient
	PharmGKB   *sources.PharmGKBClient
	Civic      *sources.CivicClient
	Logger     *logrus.Logger
}

// GeneResult is the gated entity plus any degradation warnings.
type GeneResult struct {
	Gene     entities.Gene
	Warnings []Warning
}

// Get resolves symbolOrAlias to a gene and enriches the requested sections.
func (o *GeneOrchestrator) Get(ctx context.Context, symbolOrAlias string, sectionNames []string) (GeneResult, error) {
	symbol := entities.NormalizeGeneSymbol(symbolOrAlias)
	if symbol == "" {
		return GeneResult{}, biomcperr.InvalidArgument("gene symbol must not be empty")
	}
	if !substrate.IsValidGeneSymbol(symbol) {
		return GeneResult{}, biomcperr.InvalidArgument("%q is not a valid gene symbol", symbolOrAlias)
	}
	sel, err := sections.Parse("gene", sectionNames)
	if err != nil {
		return GeneResult{}, err
	}

	raw, err := o.MyGene.GetBySymbol(ctx, symbol)
	if err != nil {
		return GeneResult{}, err
	}
	gene, err := transforms.BuildGene(raw)
	if err != nil {
		return GeneResult{}, biomcperr.APIJSON("mygene", err)
	}

	rc := &resultCollector{}
	g, gctx := errgroup.WithContext(ctx)

	if sel.Has("interactions") && o.StringDB != nil {
		g.Go(runSection(gctx, rc, o.Logger, "interactions", func(ctx context.Context) error {
			rows, err := o.StringDB.Interactions(ctx, gene.Symbol, entities.DedupMaxDefault)
			if err != nil {
				return err
			}
			gene.Interactions = transforms.InteractionsFromSTRING(rows)
			return nil
		}))
	}

	if sel.Has("pathways") && o.Reactome != nil && len(gene.Pathways) == 0 {
		g.Go(runSection(gctx, rc, o.Logger, "pathways", func(ctx context.Context) error {
			rows, err := o.Reactome.PathwaysForGene(ctx, gene.Symbol)
			if err != nil {
				return err
			}
			for _, row := range rows {
				id, _ := row["stId"].(string)
				name, _ := row["displayName"].(string)
				if id == "" {
					continue
				}
				gene.Pathways = append(gene.Pathways, entities.PathwayRef{ID: id, Name: name, Source: "reactome"})
			}
			return nil
		}))
	}

	if sel.Has("go") && o.UniProt != nil && o.QuickGO != nil {
		g.Go(runSection(gctx, rc, o.Logger, "go", func(ctx context.Context) error {
			accession, err := o.UniProt.AccessionForSymbol(ctx, gene.Symbol)
			if err != nil {
				return err
			}
			data, err := o.QuickGO.AnnotationsForGene(ctx, accession)
			if err != nil {
				return err
			}
			rows, _ := data["results"].([]any)
			for _, row := range rows {
				m, ok := row.(map[string]any)
				if !ok {
					continue
				}
				id, _ := m["goId"].(string)
				term, _ := m["goName"].(string)
				aspect, _ := m["goAspect"].(string)
				if id == "" {
					continue
				}
				gene.GOTerms = append(gene.GOTerms, entities.GOTerm{ID: id, Term: term, Category: aspect})
			}
			return nil
		}))
	}

	if sel.Has("domains") && o.UniProt != nil && o.InterPro != nil && len(gene.Domains) == 0 {
		g.Go(runSection(gctx, rc, o.Logger, "domains", func(ctx context.Context) error {
			accession, err := o.UniProt.AccessionForSymbol(ctx, gene.Symbol)
			if err != nil {
				return err
			}
			data, err := o.InterPro.DomainsForUniProt(ctx, accession)
			if err != nil {
				return err
			}
			rows, _ := data["results"].([]any)
			for _, row := range rows {
				m, ok := row.(map[string]any)
				if !ok {
					continue
				}
				meta, _ := m["metadata"].(map[string]any)
				name, _ := meta["name"].(string)
				if name == "" {
					continue
				}
				gene.Domains = append(gene.Domains, entities.ProteinDomain{Name: name, Source: "interpro"})
			}
			return nil
		}))
	}

	if sel.Has("pharmacogenomics") && o.PharmGKB != nil {
		g.Go(runSection(gctx, rc, o.Logger, "pharmacogenomics", func(ctx context.Context) error {
			data, err := o.PharmGKB.ClinicalAnnotationsForGene(ctx, gene.Symbol)
			if err != nil {
				return err
			}
			rows, _ := data["data"].([]any)
			var asMaps []map[string]any
			for _, row := range rows {
				if m, ok := row.(map[string]any); ok {
					asMaps = append(asMaps, m)
				}
			}
			gene.Pharmgkb = transforms.PGxAnnotationsFromPharmGKB(asMaps)
			return nil
		}))
	}

	if sel.Has("civic") && o.Civic != nil {
		g.Go(runSection(gctx, rc, o.Logger, "civic", func(ctx context.Context) error {
			data, err := o.Civic.EvidenceForGene(ctx, gene.Symbol)
			if err != nil {
				return err
			}
			blob, err := json.Marshal(data)
			if err != nil {
				return err
			}
			gene.Civic = transforms.CivicContextFromEvidence(transforms.CivicEvidenceFromMolecularProfiles(blob))
			return nil
		}))
	}

	_ = g.Wait()

	gateGene(&gene, sel)
	return GeneResult{Gene: gene, Warnings: rc.Warnings()}, nil
}

func gateGene(g *entities.Gene, sel sections.Set) {
	if !sel.Has("interactions") {
		g.Interactions = nil
	}
	if !sel.Has("pathways") {
		g.Pathways = nil
	}
	if !sel.Has("go") {
		g.GOTerms = nil
	}
	if !sel.Has("domains") {
		g.Domains = nil
	}
	if !sel.Has("pharmacogenomics") {
		g.Pharmgkb = nil
	}
	if !sel.Has("civic") {
		g.Civic = nil
	}
	if !sel.Has("function") {
		g.Function = ""
	}
}
