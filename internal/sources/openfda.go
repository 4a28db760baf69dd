package sources

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/substrate"
)

// OpenFDAClient wraps the several openFDA drug endpoints: adverse events
// (FAERS, including its count aggregation), device events (MAUDE), drug
// recalls (enforcement), and drug labels (spec §3 "Drug label", "Adverse
// event (FAERS report)", "DeviceEvent", "DrugRecall").
type OpenFDAClient struct {
	baseURL string
	client  *substrate.Client
}

func NewOpenFDAClient(c *substrate.Client) *OpenFDAClient {
	return &OpenFDAClient{baseURL: substrate.BaseURL("openfda", "https://api.fda.gov"), client: c}
}

// withAPIKey appends the configured OPENFDA_API_KEY to values, if any (spec
// §4.2 "OpenFDA: supports an optional API key").
func withAPIKey(values url.Values) url.Values {
	if key, ok := substrate.OpenFDAAPIKey(); ok {
		values.Set("api_key", key)
	}
	return values
}

// SearchAdverseEvents searches FAERS for reports whose suspect drug matches
// query; the suspect-drug generic-name/token-subset filter that narrows
// these results to the requested suspect drug lives in
// transforms.FaersReportMatchesSuspectDrugQuery (spec §8 property 6), this
// only forwards the broader medicinalproduct search.
func (o *OpenFDAClient) SearchAdverseEvents(ctx context.Context, query string, limit int) (map[string]any, error) {
	if err := substrate.ValidateSearchLimit(limit); err != nil {
		return nil, err
	}
	values := url.Values{}
	values.Set("search", "patient.drug.medicinalproduct:\""+substrate.EscapeLucene(query)+"\"")
	values.Set("limit", strconv.Itoa(limit))
	values = withAPIKey(values)

	var out map[string]any
	err := getJSON(ctx, o.client, "openfda", o.baseURL+"/drug/event.json?"+values.Encode(), &out)
	return out, err
}

// SearchDeviceEvents searches MAUDE for device adverse events.
func (o *OpenFDAClient) SearchDeviceEvents(ctx context.Context, query string, limit int) (map[string]any, error) {
	if err := substrate.ValidateSearchLimit(limit); err != nil {
		return nil, err
	}
	values := url.Values{}
	values.Set("search", "device.brand_name:\""+substrate.EscapeLucene(query)+"\"")
	values.Set("limit", strconv.Itoa(limit))
	values = withAPIKey(values)

	var out map[string]any
	err := getJSON(ctx, o.client, "openfda", o.baseURL+"/device/event.json?"+values.Encode(), &out)
	return out, err
}

// SearchRecalls searches drug enforcement (recall) records.
func (o *OpenFDAClient) SearchRecalls(ctx context.Context, product string, limit int) (map[string]any, error) {
	if err := substrate.ValidateSearchLimit(limit); err != nil {
		return nil, err
	}
	values := url.Values{}
	values.Set("search", "product_description:\""+substrate.EscapeLucene(product)+"\"")
	values.Set("limit", strconv.Itoa(limit))
	values = withAPIKey(values)

	var out map[string]any
	err := getJSON(ctx, o.client, "openfda", o.baseURL+"/drug/enforcement.json?"+values.Encode(), &out)
	return out, err
}

// Label fetches the structured product label for a drug name.
func (o *OpenFDAClient) Label(ctx context.Context, drugName string) (map[string]any, error) {
	values := url.Values{}
	values.Set("search", "openfda.brand_name:\""+substrate.EscapeLucene(drugName)+"\"")
	values.Set("limit", "1")
	values = withAPIKey(values)

	var out map[string]any
	err := getJSON(ctx, o.client, "openfda", o.baseURL+"/drug/label.json?"+values.Encode(), &out)
	return out, err
}

// CountByKeywordField runs the /drug/event.json count aggregation endpoint,
// retrying once with a ".exact" keyword-field suffix when the upstream
// rejects the bare field name — a behavior original_source documents as
// intentional and not extended to other error codes (spec §9 "The
// Drugs@FDA count helper retries once with a .exact suffix ... other error
// codes are not retried. Preserve this exact behavior.").
func (o *OpenFDAClient) CountByKeywordField(ctx context.Context, field, query string) (map[string]any, error) {
	out, err := o.count(ctx, field, query)
	if err == nil {
		return out, nil
	}
	if !biomcperr.IsHTTPStatus(err, 400) || strings.HasSuffix(field, ".exact") {
		return nil, err
	}
	return o.count(ctx, field+".exact", query)
}

func (o *OpenFDAClient) count(ctx context.Context, field, query string) (map[string]any, error) {
	values := url.Values{}
	if query != "" {
		values.Set("search", query)
	}
	values.Set("count", field)
	values = withAPIKey(values)

	var out map[string]any
	err := getJSON(ctx, o.client, "openfda", o.baseURL+"/drug/event.json?"+values.Encode(), &out)
	return out, err
}
