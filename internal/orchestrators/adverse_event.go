package orchestrators

import (
	"context"
	"strings"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/entities"
	"github.com/biomcp-go/biomcp/internal/sources"
	"github.com/biomcp-go/biomcp/internal/transforms"
	"github.com/sirupsen/logrus"
)

// AdverseEventOrchestrator searches openFDA's FAERS/MAUDE surveillance
// feeds for drug, device, and recall reports (spec §4.4 "AdverseEvent",
// "DeviceEvent", "DrugRecall").
type AdverseEventOrchestrator struct {
	OpenFDA *sources.OpenFDAClient
	Logger  *logrus.Logger
}

// SearchDrugEvents searches FAERS drug adverse-event reports.
func (o *AdverseEventOrchestrator) SearchDrugEvents(ctx context.Context, query string, limit int) ([]entities.AdverseEvent, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, biomcperr.InvalidArgument("adverse event query must not be empty")
	}
	data, err := o.OpenFDA.SearchAdverseEvents(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	rows, _ := data["results"].([]any)
	out := make([]entities.AdverseEvent, 0, len(rows))
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok || !transforms.FaersReportMatchesSuspectDrugQuery(m, query) {
			continue
		}
		out = append(out, transforms.BuildAdverseEvent(m))
	}
	return out, nil
}

// SearchDeviceEvents searches MAUDE medical-device adverse-event reports.
func (o *AdverseEventOrchestrator) SearchDeviceEvents(ctx context.Context, query string, limit int) ([]entities.DeviceEvent, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, biomcperr.InvalidArgument("device event query must not be empty")
	}
	data, err := o.OpenFDA.SearchDeviceEvents(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	rows, _ := data["results"].([]any)
	out := make([]entities.DeviceEvent, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]any); ok {
			out = append(out, transforms.BuildDeviceEvent(m))
		}
	}
	return out, nil
}

// SearchRecalls searches drug recall/enforcement reports.
func (o *AdverseEventOrchestrator) SearchRecalls(ctx context.Context, product string, limit int) ([]entities.DrugRecall, error) {
	product = strings.TrimSpace(product)
	if product == "" {
		return nil, biomcperr.InvalidArgument("recall product must not be empty")
	}
	data, err := o.OpenFDA.SearchRecalls(ctx, product, limit)
	if err != nil {
		return nil, err
	}
	rows, _ := data["results"].([]any)
	out := make([]entities.DrugRecall, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]any); ok {
			out = append(out, transforms.BuildDrugRecall(m))
		}
	}
	return out, nil
}
