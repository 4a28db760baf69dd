package transforms

import (
	"strconv"
	"strings"

	"github.com/biomcp-go/biomcp/internal/entities"
)

func normalizeDrugName(value string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(value), "."))
}

// drugNameMatchesQuery reports whether candidate names query directly, as a
// substring, or shares every query token with candidate's token set (spec
// §4.4 "matches on ... a token subset of the medicinal-product string"),
// catching forms like "sitagliptin and metformin hydrochloride" vs
// "metformin".
func drugNameMatchesQuery(candidate, query string) bool {
	candidate = normalizeDrugName(candidate)
	query = normalizeDrugName(query)
	if candidate == "" || query == "" {
		return false
	}
	if candidate == query || strings.Contains(candidate, query) {
		return true
	}
	candidateTokens := tokenSet(candidate)
	for _, token := range tokenize(query) {
		if !candidateTokens[token] {
			return false
		}
	}
	return true
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

func tokenSet(s string) map[string]bool {
	out := make(map[string]bool)
	for _, t := range tokenize(s) {
		out[t] = true
	}
	return out
}

// suspectDrugNames collects the normalized generic names and medicinal
// product strings of every suspect drug (drugcharacterization "1") on a
// FAERS patient block, deduplicated in first-seen order.
func suspectDrugNames(patient map[string]any) []string {
	rows, _ := patient["drug"].([]any)
	var out []string
	seen := make(map[string]bool)
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok || stringField(m, "drugcharacterization") != "1" {
			continue
		}
		var candidates []string
		if openfda, ok := m["openfda"].(map[string]any); ok {
			if names, ok := openfda["generic_name"].([]any); ok {
				for _, n := range names {
					if s, ok := n.(string); ok {
						if norm := normalizeDrugName(s); norm != "" {
							candidates = append(candidates, norm)
						}
					}
				}
			}
		}
		if med := normalizeDrugName(stringField(m, "medicinalproduct")); med != "" {
			candidates = append(candidates, med)
		}
		for _, name := range candidates {
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// FaersReportMatchesSuspectDrugQuery reports whether row's suspect drugs
// match query by generic name or medicinal-product token subset (spec §4.4
// "FAERS suspect-drug filter", §8 property 6). An empty query matches every
// report.
func FaersReportMatchesSuspectDrugQuery(row map[string]any, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	patient, _ := row["patient"].(map[string]any)
	if patient == nil {
		return false
	}
	for _, candidate := range suspectDrugNames(patient) {
		if drugNameMatchesQuery(candidate, query) {
			return true
		}
	}
	return false
}

// BuildAdverseEvent maps one openFDA FAERS adverse-event report into the
// entity record, deduplicating reaction terms case-insensitively (spec §3
// "AdverseEvent ... reactions deduped").
func BuildAdverseEvent(row map[string]any) entities.AdverseEvent {
	ae := entities.AdverseEvent{
		ReportID: stringField(row, "safetyreportid"),
		Serious:  stringField(row, "serious") == "1",
		Date:     stringField(row, "receiptdate"),
	}

	if patient, ok := row["patient"].(map[string]any); ok {
		ae.Patient = patientDemographics(patient)
		ae.SuspectDrug, ae.ConcomitantMeds = drugRoles(patient)
		ae.Reactions = entities.DedupStrings(reactionTerms(patient), 0)
	}

	if info, ok := row["reportercountry"].(string); ok {
		ae.ReporterCountry = info
	}
	if qualification, ok := row["primarysource"].(map[string]any); ok {
		ae.ReporterRole = stringField(qualification, "qualification")
	}

	return ae
}

func patientDemographics(patient map[string]any) entities.PatientDemographics {
	var demo entities.PatientDemographics
	if age, ok := patient["patientonsetage"].(string); ok {
		if f, ok := parseFloatPtr(age); ok {
			demo.Age = f
		}
	}
	demo.AgeUnit = stringField(patient, "patientonsetageunit")
	demo.Sex = sexLabel(stringField(patient, "patientsex"))
	if weight, ok := patient["patientweight"].(string); ok {
		if f, ok := parseFloatPtr(weight); ok {
			demo.WeightKG = f
		}
	}
	return demo
}

func sexLabel(code string) string {
	switch code {
	case "1":
		return "male"
	case "2":
		return "female"
	default:
		return ""
	}
}

func drugRoles(patient map[string]any) (suspect string, concomitant []string) {
	rows, ok := patient["drug"].([]any)
	if !ok {
		return "", nil
	}
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			continue
		}
		name := stringField(m, "medicinalproduct")
		if name == "" {
			continue
		}
		switch stringField(m, "drugcharacterization") {
		case "1":
			if suspect == "" {
				suspect = name
			}
		default:
			concomitant = append(concomitant, name)
		}
	}
	return suspect, entities.DedupStrings(concomitant, entities.DedupMaxDefault)
}

func reactionTerms(patient map[string]any) []string {
	rows, ok := patient["reaction"].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			continue
		}
		if term := stringField(m, "reactionmeddrapt"); term != "" {
			out = append(out, term)
		}
	}
	return out
}

// BuildDeviceEvent maps one openFDA MAUDE device-event report into the
// entity record.
func BuildDeviceEvent(row map[string]any) entities.DeviceEvent {
	de := entities.DeviceEvent{
		ReportID: stringField(row, "report_number"),
		Date:     stringField(row, "date_received"),
	}
	if devices, ok := row["device"].([]any); ok && len(devices) > 0 {
		if m, ok := devices[0].(map[string]any); ok {
			de.DeviceName = stringField(m, "brand_name")
			de.Manufacturer = stringField(m, "manufacturer_d_name")
		}
	}
	if events, ok := row["event_type"].([]any); ok {
		de.EventType = stringSlice(events)
	}
	if outcomes, ok := row["patient"].([]any); ok {
		for _, p := range outcomes {
			if m, ok := p.(map[string]any); ok {
				if o, ok := m["patient_problems"].([]any); ok {
					de.PatientOutcome = append(de.PatientOutcome, stringSlice(o)...)
				}
			}
		}
	}
	return de
}

// BuildDrugRecall maps one openFDA drug-enforcement report into the entity
// record.
func BuildDrugRecall(row map[string]any) entities.DrugRecall {
	return entities.DrugRecall{
		RecallNumber:   stringField(row, "recall_number"),
		Product:        stringField(row, "product_description"),
		Reason:         stringField(row, "reason_for_recall"),
		Classification: stringField(row, "classification"),
		Status:         stringField(row, "status"),
		Date:           stringField(row, "recall_initiation_date"),
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func parseFloatPtr(s string) (*float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return &f, true
}
