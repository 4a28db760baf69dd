package orchestrators

import (
	"github.com/biomcp-go/biomcp/internal/sources"
	"github.com/biomcp-go/biomcp/internal/substrate"
	"github.com/sirupsen/logrus"
)

// Fleet bundles every entity orchestrator, built once from the shared
// substrate.Client and wired into cmd/biomcp and internal/mcp (spec §4.6:
// "gene.go, variant.go, disease.go, drug.go, article.go, trial.go,
// adverse_event.go, pgx.go").
type Fleet struct {
	Gene         *GeneOrchestrator
	Variant      *VariantOrchestrator
	Disease      *DiseaseOrchestrator
	Drug         *DrugOrchestrator
	Article      *ArticleOrchestrator
	Trial        *TrialOrchestrator
	AdverseEvent *AdverseEventOrchestrator
	PGx          *PGxOrchestrator
}

// NewFleet constructs every source client on c and assembles the Fleet.
// Source clients read their own environment variables: BIOMCP_<SOURCE>_BASE
// overrides at construction time, and API keys and settings such as
// OPENFDA_API_KEY, NCI_CTS_API_KEY, ALPHAGENOME_API_KEY and
// BIOMCP_CBIOPORTAL_STUDIES on each request; Fleet does not duplicate that
// wiring.
func NewFleet(c *substrate.Client, logger *logrus.Logger) *Fleet {
	myGene := sources.NewMyGeneClient(c)
	uniProt := sources.NewUniProtClient(c)

	return &Fleet{
		Gene: &GeneOrchestrator{
			MyGene:   myGene,
			StringDB: sources.NewStringDBClient(c),
			Reactome: sources.NewReactomeClient(c),
			QuickGO:  sources.NewQuickGOClient(c),
			InterPro: sources.NewInterProClient(c),
			UniProt:  uniProt,
			PharmGKB: sources.NewPharmGKBClient(c),
			Civic:    sources.NewCivicClient(c),
			Logger:   logger,
		},
		Variant: &VariantOrchestrator{
			MyVariant:   sources.NewMyVariantClient(c),
			CGI:         sources.NewCGIClient(c),
			Civic:       sources.NewCivicClient(c),
			CBioPortal:  sources.NewCBioPortalClient(c),
			AlphaGenome: sources.NewAlphaGenomeClient(c, myGene),
			GWAS:        sources.NewGWASCatalogClient(c),
			Logger:      logger,
		},
		Disease: &DiseaseOrchestrator{
			MyDisease:   sources.NewMyDiseaseClient(c),
			OpenTargets: sources.NewOpenTargetsClient(c),
			Monarch:     sources.NewMonarchClient(c),
			Civic:       sources.NewCivicClient(c),
			Logger:      logger,
		},
		Drug: &DrugOrchestrator{
			MyChem:      sources.NewMyChemClient(c),
			ChEMBL:      sources.NewChEMBLClient(c),
			OpenFDA:     sources.NewOpenFDAClient(c),
			OpenTargets: sources.NewOpenTargetsClient(c),
			Civic:       sources.NewCivicClient(c),
			Logger:      logger,
		},
		Article: &ArticleOrchestrator{
			EuropePMC: sources.NewEuropePMCClient(c),
			PMCOA:     sources.NewPMCOAClient(c, 4),
			PubTator:  sources.NewPubTator3Client(c),
			IDConv:    sources.NewNCBIIDConvClient(c),
			Logger:    logger,
		},
		Trial: &TrialOrchestrator{
			ClinicalTrials: sources.NewClinicalTrialsClient(c),
			NCICTS:         sources.NewNCICTSClient(c),
			Logger:         logger,
		},
		AdverseEvent: &AdverseEventOrchestrator{
			OpenFDA: sources.NewOpenFDAClient(c),
			Logger:  logger,
		},
		PGx: &PGxOrchestrator{
			CPIC:     sources.NewCPICClient(c),
			PharmGKB: sources.NewPharmGKBClient(c),
			Logger:   logger,
		},
	}
}
