package sources

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// OpenTargetsClient wraps the OpenTargets GraphQL endpoint (spec §4.2
// "OpenTargets"). Each method issues a named query and degrades to an
// empty sub-section (with a logged warning) when the server omits an
// expected field, rather than failing the whole request.
type OpenTargetsClient struct {
	baseURL string
	client  *substrate.Client
}

func NewOpenTargetsClient(c *substrate.Client) *OpenTargetsClient {
	return &OpenTargetsClient{baseURL: substrate.BaseURL("opentargets", "https://api.platform.opentargets.org/api/v4/graphql"), client: c}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type gqlResponse struct {
	Data   map[string]any `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (o *OpenTargetsClient) query(ctx context.Context, name, gql string, vars map[string]any) (map[string]any, error) {
	var resp gqlResponse
	if err := postJSON(ctx, o.client, "opentargets", o.baseURL, gqlRequest{Query: gql, Variables: vars}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		o.client.Logger().WithFields(logrus.Fields{"query": name, "error": resp.Errors[0].Message}).
			Warn("opentargets query returned partial errors, degrading section")
	}
	if resp.Data == nil {
		return map[string]any{}, nil
	}
	return resp.Data, nil
}

const drugSectionsQuery = `query DrugSections($chemblId: String!) {
  drug(chemblId: $chemblId) { mechanismsOfAction { rows { mechanismOfAction targets { approvedSymbol } } }
    indications { rows { disease { name } } } }
}`

// DrugSections fetches mechanisms-of-action and indications for a ChEMBL
// drug id.
func (o *OpenTargetsClient) DrugSections(ctx context.Context, chemblID string) (map[string]any, error) {
	return o.query(ctx, "DrugSections", drugSectionsQuery, map[string]any{"chemblId": chemblID})
}

const diseaseGenesQuery = `query DiseaseGenes($efoId: String!) {
  disease(efoId: $efoId) { associatedTargets { rows { target { approvedSymbol } score } } }
}`

// DiseaseGenes fetches the target-association list for an EFO/MONDO id.
func (o *OpenTargetsClient) DiseaseGenes(ctx context.Context, efoID string) (map[string]any, error) {
	return o.query(ctx, "DiseaseGenes", diseaseGenesQuery, map[string]any{"efoId": efoID})
}

const diseasePrevalenceQuery = `query DiseasePrevalence($efoId: String!) {
  disease(efoId: $efoId) { otherNames synonyms }
}`

// DiseasePrevalence fetches prevalence-adjacent disease metadata.
func (o *OpenTargetsClient) DiseasePrevalence(ctx context.Context, efoID string) (map[string]any, error) {
	return o.query(ctx, "DiseasePrevalence", diseasePrevalenceQuery, map[string]any{"efoId": efoID})
}

const targetClinicalContextQuery = `query TargetClinicalContext($ensemblId: String!) {
  target(ensemblId: $ensemblId) { knownDrugs { rows { drug { name } phase } } }
}`

// TargetClinicalContext fetches known-drug clinical context for an Ensembl
// gene id.
func (o *OpenTargetsClient) TargetClinicalContext(ctx context.Context, ensemblID string) (map[string]any, error) {
	return o.query(ctx, "TargetClinicalContext", targetClinicalContextQuery, map[string]any{"ensemblId": ensemblID})
}

const searchDiseaseQuery = `query SearchDisease($q: String!) {
  search(queryString: $q, entityNames: ["disease"]) { hits { id name } }
}`

// SearchDisease runs a free-text disease search.
func (o *OpenTargetsClient) SearchDisease(ctx context.Context, q string) (map[string]any, error) {
	return o.query(ctx, "SearchDisease", searchDiseaseQuery, map[string]any{"q": q})
}

const searchTargetQuery = `query SearchTarget($q: String!) {
  search(queryString: $q, entityNames: ["target"]) { hits { id name } }
}`

// SearchTarget runs a free-text gene/target search.
func (o *OpenTargetsClient) SearchTarget(ctx context.Context, q string) (map[string]any, error) {
	return o.query(ctx, "SearchTarget", searchTargetQuery, map[string]any{"q": q})
}
