package sources

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/url"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/substrate"
)

// ClinVarClient queries ClinVar through NCBI E-utilities for live
// review-status detail. No orchestrator constructs it; the "clinvar" variant
// section uses the ClinVar data MyVariant.info returns. Adapted from the
// teacher's XML E-utilities client.
type ClinVarClient struct {
	baseURL string
	client  *substrate.Client
}

func NewClinVarClient(c *substrate.Client) *ClinVarClient {
	return &ClinVarClient{baseURL: substrate.BaseURL("clinvar", "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"), client: c}
}

// searchResult mirrors the esearch XML envelope.
type clinVarSearchResult struct {
	XMLName xml.Name `xml:"eSearchResult"`
	IDList  struct {
		IDs []string `xml:"Id"`
	} `xml:"IdList"`
	Count int `xml:"Count"`
}

// summaryResult mirrors the esummary XML envelope.
type clinVarSummaryResult struct {
	XMLName         xml.Name               `xml:"eSummaryResult"`
	DocumentSummary []ClinVarDocumentSummary `xml:"DocumentSummarySet>DocumentSummary"`
}

// ClinVarDocumentSummary is one variant record returned by esummary.
type ClinVarDocumentSummary struct {
	UID                  string `xml:"uid,attr"`
	Title                string `xml:"title"`
	ClinicalSignificance struct {
		ReviewStatus string `xml:"ReviewStatus"`
		Description  string `xml:"Description"`
	} `xml:"clinical_significance"`
}

// SearchByRSID resolves an rsID to ClinVar internal UIDs via esearch.
func (c *ClinVarClient) SearchByRSID(ctx context.Context, rsid string) ([]string, error) {
	values := url.Values{}
	values.Set("db", "clinvar")
	values.Set("term", rsid)
	values.Set("retmode", "xml")
	if key, ok := substrate.NCBIAPIKey(); ok {
		values.Set("api_key", key)
	}

	body, err := c.get(ctx, "/esearch.fcgi?"+values.Encode())
	if err != nil {
		return nil, err
	}
	var resp clinVarSearchResult
	if err := xml.Unmarshal(body, &resp); err != nil {
		return nil, biomcperr.APIJSON("clinvar", err)
	}
	return resp.IDList.IDs, nil
}

// Summaries fetches the clinical-significance summary for a set of ClinVar
// UIDs via esummary.
func (c *ClinVarClient) Summaries(ctx context.Context, uids []string) ([]ClinVarDocumentSummary, error) {
	if len(uids) == 0 {
		return nil, nil
	}
	values := url.Values{}
	values.Set("db", "clinvar")
	values.Set("id", joinComma(uids))
	values.Set("retmode", "xml")
	if key, ok := substrate.NCBIAPIKey(); ok {
		values.Set("api_key", key)
	}

	body, err := c.get(ctx, "/esummary.fcgi?"+values.Encode())
	if err != nil {
		return nil, err
	}
	var resp clinVarSummaryResult
	if err := xml.Unmarshal(body, &resp); err != nil {
		return nil, biomcperr.APIJSON("clinvar", err)
	}
	return resp.DocumentSummary, nil
}

func (c *ClinVarClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, biomcperr.HTTP(err)
	}
	body, _, err := c.client.Do(req, "clinvar")
	return body, err
}

func joinComma(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}

