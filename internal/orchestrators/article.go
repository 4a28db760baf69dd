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

// ArticleOrchestrator resolves a literature record by PMID/PMCID/DOI and
// enriches its requested sections (spec §4.4 "Article").
type ArticleOrchestrator struct {
	EuropePMC *sources.EuropePMCClient
	PMCOA     *sources.PMCOAClient
	PubTator  *sources.PubTator3Client
	IDConv    *sources.NCBIIDConvClient
	Logger    *logrus.Logger
}

// ArticleResult is the gated entity plus any degradation warnings.
type ArticleResult struct {
	Article  entities.Article
	Warnings []Warning
}

// Get resolves id (a PMID, PMCID, or DOI) and enriches the requested
// sections.
func (o *ArticleOrchestrator) Get(ctx context.Context, id string, sectionNames []string) (ArticleResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ArticleResult{}, biomcperr.InvalidArgument("article id must not be empty")
	}
	sel, err := sections.Parse("article", sectionNames)
	if err != nil {
		return ArticleResult{}, err
	}

	source, srcID := classifyArticleID(id)
	data, err := o.EuropePMC.GetByID(ctx, source, srcID)
	if err != nil {
		return ArticleResult{}, err
	}
	result, _ := data["result"].(map[string]any)
	if result == nil {
		return ArticleResult{}, biomcperr.NotFound("article", id, "check the PMID, PMCID, or DOI")
	}
	article := buildArticle(result)

	rc := &resultCollector{}
	g, gctx := errgroup.WithContext(ctx)

	if sel.Has("full-text") && o.PMCOA != nil && article.PMCID != "" {
		g.Go(runSection(gctx, rc, o.Logger, "full-text", func(ctx context.Context) error {
			xml, available, err := o.PMCOA.GetFullTextXML(ctx, article.PMCID)
			if err != nil || !available {
				return err
			}
			path, err := sources.SaveFullTextAtomic(article.PMCID, xml)
			if err != nil {
				return err
			}
			article.FullTextPath = path
			return nil
		}))
	}

	if sel.Has("pubtator") && o.PubTator != nil && article.PMID != "" {
		g.Go(runSection(gctx, rc, o.Logger, "pubtator", func(ctx context.Context) error {
			data, err := o.PubTator.Annotations(ctx, article.PMID)
			if err != nil {
				return err
			}
			article.PubTator = pubTatorCountsFromAnnotations(data)
			return nil
		}))
	}

	_ = g.Wait()

	gateArticle(&article, sel)
	return ArticleResult{Article: article, Warnings: rc.Warnings()}, nil
}

// classifyArticleID picks the EuropePMC source code for id, defaulting to
// MED (PubMed) when it does not look like a PMCID or DOI.
func classifyArticleID(id string) (source, srcID string) {
	upper := strings.ToUpper(id)
	switch {
	case strings.HasPrefix(upper, "PMC"):
		return "PMC", upper
	case strings.Contains(id, "/") || strings.HasPrefix(strings.ToLower(id), "10."):
		return "DOI", id
	default:
		return "MED", id
	}
}

func buildArticle(result map[string]any) entities.Article {
	a := entities.Article{}
	a.PMID, _ = result["pmid"].(string)
	a.PMCID, _ = result["pmcid"].(string)
	a.DOI, _ = result["doi"].(string)
	if title, ok := result["title"].(string); ok {
		a.Title = transforms.CleanTitle(title)
	}
	a.Authors = transforms.AbbreviateAuthors(authorNamesFromResult(result))
	a.Journal, _ = result["journalTitle"].(string)
	if date, ok := result["firstPublicationDate"].(string); ok {
		a.Date = date
	}
	a.CitationCount = transforms.ParseCitationCount(result["citedByCount"])
	a.Type = transforms.ParsePublicationType(result["pubType"], result["pubTypeList"])
	a.Retracted = transforms.IsRetracted(result["pubType"], result["pubTypeList"])
	a.OpenAccess = transforms.ParseOpenAccess(result["isOpenAccess"])
	if abstract, ok := result["abstractText"].(string); ok {
		a.Abstract = transforms.CleanAbstract(abstract)
	}
	return a
}

func authorNamesFromResult(result map[string]any) []string {
	authorList, _ := result["authorList"].(map[string]any)
	rows, _ := authorList["author"].([]any)
	var names []string
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := m["fullName"].(string); ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}

func pubTatorCountsFromAnnotations(data map[string]any) *entities.PubTatorCounts {
	passages, _ := data["passages"].([]any)
	counts := &entities.PubTatorCounts{}
	for _, passage := range passages {
		m, ok := passage.(map[string]any)
		if !ok {
			continue
		}
		annotations, _ := m["annotations"].([]any)
		for _, ann := range annotations {
			am, ok := ann.(map[string]any)
			if !ok {
				continue
			}
			infons, _ := am["infons"].(map[string]any)
			switch infons["type"] {
			case "Gene":
				counts.Genes++
			case "Disease":
				counts.Diseases++
			case "Chemical":
				counts.Chemicals++
			case "Mutation", "DNAMutation", "ProteinMutation":
				counts.Mutations++
			}
		}
	}
	return counts
}

func gateArticle(a *entities.Article, sel sections.Set) {
	if !sel.Has("full-text") {
		a.FullTextPath = ""
	}
	if !sel.Has("pubtator") {
		a.PubTator = nil
	}
}
