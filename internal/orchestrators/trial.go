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

// TrialOrchestrator resolves a clinical trial by id, choosing between
// ClinicalTrials.gov and NCI CTS by id shape (spec §4.4 "Trial" source
// enum).
type TrialOrchestrator struct {
	ClinicalTrials *sources.ClinicalTrialsClient
	NCICTS         *sources.NCICTSClient
	Logger         *logrus.Logger
}

// Get resolves id (an NCT id or an NCI CTS id) to a Trial.
func (o *TrialOrchestrator) Get(ctx context.Context, id string) (entities.Trial, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Trial{}, biomcperr.InvalidArgument("trial id must not be empty")
	}

	if strings.HasPrefix(strings.ToUpper(id), "NCT") {
		study, err := o.ClinicalTrials.GetStudy(ctx, id)
		if err != nil {
			return entities.Trial{}, err
		}
		return transforms.BuildTrialFromClinicalTrialsGov(study), nil
	}

	if o.NCICTS == nil {
		return entities.Trial{}, biomcperr.InvalidArgument("%q is not an NCT id and no NCI CTS client is configured", id)
	}
	trial, err := o.NCICTS.GetTrial(ctx, id)
	if err != nil {
		return entities.Trial{}, err
	}
	return transforms.BuildTrialFromNCICTS(trial), nil
}

// Search runs a free-text trial search against ClinicalTrials.gov, the
// default trial source.
func (o *TrialOrchestrator) Search(ctx context.Context, query string, limit int) ([]entities.Trial, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, biomcperr.InvalidArgument("trial search query must not be empty")
	}
	data, err := o.ClinicalTrials.SearchStudies(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	rows, _ := data["studies"].([]any)
	out := make([]entities.Trial, 0, len(rows))
	for _, row := range rows {
		study, ok := row.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, transforms.BuildTrialFromClinicalTrialsGov(study))
	}
	return out, nil
}
