package transforms

import "github.com/biomcp-go/biomcp/internal/entities"

// BuildTrialFromClinicalTrialsGov maps a ClinicalTrials.gov v2 study record
// into the minimal normalized Trial façade, keeping the raw upstream
// payload alongside it rather than fully remodeling the study (spec §4.4
// "Trial", "the orchestrator passes the upstream JSON through unchanged
// alongside this façade rather than fully remodeling it").
func BuildTrialFromClinicalTrialsGov(study map[string]any) entities.Trial {
	protocol, _ := study["protocolSection"].(map[string]any)

	var id, title, status, phase string
	var conditions, interventions []string

	if id2, ok := section(protocol, "identificationModule"); ok {
		id, _ = id2["nctId"].(string)
		title, _ = id2["briefTitle"].(string)
	}
	if status2, ok := section(protocol, "statusModule"); ok {
		status, _ = status2["overallStatus"].(string)
	}
	if design, ok := section(protocol, "designModule"); ok {
		if phases, ok := design["phases"].([]any); ok && len(phases) > 0 {
			phase, _ = phases[0].(string)
		}
	}
	if cond, ok := section(protocol, "conditionsModule"); ok {
		conditions = stringSlice(cond["conditions"])
	}
	if arms, ok := section(protocol, "armsInterventionsModule"); ok {
		if rows, ok := arms["interventions"].([]any); ok {
			for _, row := range rows {
				if m, ok := row.(map[string]any); ok {
					if name, ok := m["name"].(string); ok && name != "" {
						interventions = append(interventions, name)
					}
				}
			}
		}
	}

	return entities.Trial{
		Source:        entities.TrialSourceClinicalTrialsGov,
		ID:            id,
		Title:         title,
		Phase:         phase,
		Status:        status,
		Conditions:    conditions,
		Interventions: interventions,
		Raw:           study,
	}
}

// BuildTrialFromNCICTS maps an NCI CTS trial record into the same Trial
// façade, for callers that resolved through the NCI trial source instead
// of ClinicalTrials.gov (spec §4.4 "Trial" source enum).
func BuildTrialFromNCICTS(trial map[string]any) entities.Trial {
	id, _ := trial["nci_id"].(string)
	title, _ := trial["official_title"].(string)
	if title == "" {
		title, _ = trial["brief_title"].(string)
	}
	status, _ := trial["current_trial_status"].(string)
	phase, _ := trial["phase"].(string)

	var conditions []string
	if rows, ok := trial["diseases"].([]any); ok {
		for _, row := range rows {
			if m, ok := row.(map[string]any); ok {
				if name, ok := m["name"].(string); ok && name != "" {
					conditions = append(conditions, name)
				}
			}
		}
	}
	var interventions []string
	if rows, ok := trial["arms"].([]any); ok {
		for _, row := range rows {
			if m, ok := row.(map[string]any); ok {
				if name, ok := m["name"].(string); ok && name != "" {
					interventions = append(interventions, name)
				}
			}
		}
	}

	return entities.Trial{
		Source:        entities.TrialSourceNCICTS,
		ID:            id,
		Title:         title,
		Phase:         phase,
		Status:        status,
		Conditions:    conditions,
		Interventions: interventions,
		Raw:           trial,
	}
}

func section(protocol map[string]any, key string) (map[string]any, bool) {
	v, ok := protocol[key].(map[string]any)
	return v, ok
}

func stringSlice(v any) []string {
	rows, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if s, ok := row.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
