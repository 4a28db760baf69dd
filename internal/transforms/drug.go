package transforms

import (
	"encoding/json"
	"strings"

	"github.com/biomcp-go/biomcp/internal/entities"
)

// myChemDoc mirrors mychem.go's fixed field projection (drugbank, chembl,
// unii, pharmgkb, drugcentral.approval, drugcentral.pharmacology_class).
type myChemDoc struct {
	ID       string `json:"_id"`
	DrugBank struct {
		Name        string        `json:"name"`
		Synonyms    stringOrSlice `json:"synonyms"`
		Groups      stringOrSlice `json:"groups"`
		Targets     []struct {
			Name string `json:"name"`
		} `json:"targets"`
	} `json:"drugbank"`
	Chembl struct {
		MoleculeChemblID string `json:"molecule_chembl_id"`
		PrefName         string `json:"pref_name"`
	} `json:"chembl"`
	Unii struct {
		UNII string `json:"unii"`
	} `json:"unii"`
	Drugcentral struct {
		Approval []struct {
			Agency string `json:"agency"`
			Date   string `json:"date"`
		} `json:"approval"`
		PharmacologyClass []struct {
			Name   string `json:"name"`
			Source string `json:"source"`
		} `json:"pharmacology_class"`
	} `json:"drugcentral"`
}

// BuildDrug parses one MyChem projection document into a Drug entity
// record (spec §4.4 "Drug").
func BuildDrug(raw json.RawMessage) (entities.Drug, error) {
	var doc myChemDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return entities.Drug{}, err
	}

	d := entities.Drug{
		Name:       doc.DrugBank.Name,
		DrugBankID: strings.TrimPrefix(doc.ID, "DB"),
		ChEMBLID:   doc.Chembl.MoleculeChemblID,
		UNII:       doc.Unii.UNII,
		BrandNames: entities.DedupStrings(doc.DrugBank.Synonyms, entities.DedupMaxDefault),
	}
	if d.Name == "" {
		d.Name = doc.Chembl.PrefName
	}
	if strings.HasPrefix(doc.ID, "DB") {
		d.DrugBankID = doc.ID
	}

	for _, t := range doc.DrugBank.Targets {
		if t.Name != "" {
			d.Targets = append(d.Targets, t.Name)
		}
	}
	for _, cls := range doc.Drugcentral.PharmacologyClass {
		if cls.Name != "" {
			d.Mechanisms = append(d.Mechanisms, cls.Name)
		}
	}
	for _, approval := range doc.Drugcentral.Approval {
		d.Approvals = append(d.Approvals, entities.DrugApproval{
			ApplicationNumber: approval.Agency,
			Date:              approval.Date,
			Type:              "drugcentral",
		})
	}

	d.Mechanisms = entities.DedupStrings(d.Mechanisms, entities.DedupMaxDefault)
	d.Targets = entities.DedupStrings(d.Targets, entities.DedupMaxDefault)

	return d, nil
}

// LabelFromOpenFDA extracts the indications/warnings/dosage sections from
// an openFDA SPL label result, truncating each section the same way
// article abstracts are truncated.
func LabelFromOpenFDA(row map[string]any) *entities.DrugLabel {
	get := func(key string) string {
		if v, ok := row[key].([]any); ok && len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return TruncateAbstract(s)
			}
		}
		return ""
	}
	label := &entities.DrugLabel{
		Indications: get("indications_and_usage"),
		Warnings:    get("warnings"),
		Dosage:      get("dosage_and_administration"),
	}
	if label.Indications == "" && label.Warnings == "" && label.Dosage == "" {
		return nil
	}
	return label
}

// ShortagesFromRows maps an ASHP/openFDA-style shortage listing into the
// entity shape.
func ShortagesFromRows(rows []map[string]any) []entities.ShortageEntry {
	var out []entities.ShortageEntry
	for _, row := range rows {
		status, _ := row["status"].(string)
		if status == "" {
			continue
		}
		reason, _ := row["reason"].(string)
		since, _ := row["since"].(string)
		out = append(out, entities.ShortageEntry{Status: status, Reason: reason, Since: since})
	}
	return out
}
