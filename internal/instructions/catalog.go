// Package instructions holds the per-surgery-type default care
// instruction table applied to newly created patient records.
package instructions

import (
	"github.com/parsianclinic/postop-api/internal/model"
)

// Set is the default text for the six instruction fields of one surgery
// type. Empty entries stay empty on apply.
type Set struct {
	WarningSigns            string `mapstructure:"warning_signs"`
	MedicationInstructions  string `mapstructure:"medication_instructions"`
	NextVisit               string `mapstructure:"next_visit"`
	OutpatientServices      string `mapstructure:"outpatient_services"`
	SelfCareRecommendations string `mapstructure:"self_care_recommendations"`
	Nutrition               string `mapstructure:"nutrition"`
}

// Catalog maps a surgery type to its default instruction set. It is
// built once at startup and passed into the patient service; nothing
// mutates it afterwards.
type Catalog map[model.SurgeryType]Set

// Builtin returns the catalog shipped with the service, keyed by the
// known surgery types. Text is in source language; run it through the
// translator before use.
func Builtin() Catalog {
	return Catalog{
		model.SurgeryIntertrochanteric: {
			WarningSigns:            "Fever, chest pain, shortness of breath",
			MedicationInstructions:  "Take your blood thinner medication daily.",
			NextVisit:               "After 1 month.",
			OutpatientServices:      "Regular ECG check-ups.",
			SelfCareRecommendations: "Avoid stress and eat low-fat food.",
			Nutrition:               "Increase your omega-3 intake.",
		},
		model.SurgeryBrain: {
			WarningSigns:            "Dizziness, severe headache, nausea",
			MedicationInstructions:  "Take the prescribed pain medication.",
			NextVisit:               "After 2 weeks.",
			OutpatientServices:      "MRI if symptoms persist.",
			SelfCareRecommendations: "Avoid excessive screen time.",
			Nutrition:               "Eat brain-healthy foods such as walnuts and fish.",
		},
	}
}

// Merge overlays non-empty fields of overrides onto c and returns a new
// catalog. Surgery types unknown to c are added wholesale, so clinics
// can introduce new categories from configuration alone.
func (c Catalog) Merge(overrides Catalog) Catalog {
	out := make(Catalog, len(c)+len(overrides))
	for k, v := range c {
		out[k] = v
	}
	for k, o := range overrides {
		base := out[k]
		if o.WarningSigns != "" {
			base.WarningSigns = o.WarningSigns
		}
		if o.MedicationInstructions != "" {
			base.MedicationInstructions = o.MedicationInstructions
		}
		if o.NextVisit != "" {
			base.NextVisit = o.NextVisit
		}
		if o.OutpatientServices != "" {
			base.OutpatientServices = o.OutpatientServices
		}
		if o.SelfCareRecommendations != "" {
			base.SelfCareRecommendations = o.SelfCareRecommendations
		}
		if o.Nutrition != "" {
			base.Nutrition = o.Nutrition
		}
		out[k] = base
	}
	return out
}

// Localized returns a copy of the catalog with every default string run
// through the given translator.
func (c Catalog) Localized(translate func(string) string) Catalog {
	out := make(Catalog, len(c))
	for k, s := range c {
		out[k] = Set{
			WarningSigns:            translate(s.WarningSigns),
			MedicationInstructions:  translate(s.MedicationInstructions),
			NextVisit:               translate(s.NextVisit),
			OutpatientServices:      translate(s.OutpatientServices),
			SelfCareRecommendations: translate(s.SelfCareRecommendations),
			Nutrition:               translate(s.Nutrition),
		}
	}
	return out
}

// Apply fills blank instruction fields on p from the defaults for its
// surgery type. Fields the caller supplied are left untouched, and a
// surgery type absent from the catalog is a silent no-op. Callers invoke
// this on the create path only; updates never pass through here.
func (c Catalog) Apply(p *model.Patient) {
	if p.SurgeryType == "" {
		return
	}
	defaults, ok := c[p.SurgeryType]
	if !ok {
		return
	}
	if p.WarningSigns == "" {
		p.WarningSigns = defaults.WarningSigns
	}
	if p.MedicationInstructions == "" {
		p.MedicationInstructions = defaults.MedicationInstructions
	}
	if p.NextVisit == "" {
		p.NextVisit = defaults.NextVisit
	}
	if p.OutpatientServices == "" {
		p.OutpatientServices = defaults.OutpatientServices
	}
	if p.SelfCareRecommendations == "" {
		p.SelfCareRecommendations = defaults.SelfCareRecommendations
	}
	if p.Nutrition == "" {
		p.Nutrition = defaults.Nutrition
	}
}
