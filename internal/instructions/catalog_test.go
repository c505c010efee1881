package instructions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsianclinic/postop-api/internal/model"
)

func TestApplyFillsBlankFields(t *testing.T) {
	catalog := Builtin()
	p := &model.Patient{SurgeryType: model.SurgeryBrain}

	catalog.Apply(p)

	defaults := catalog[model.SurgeryBrain]
	assert.Equal(t, defaults.WarningSigns, p.WarningSigns)
	assert.Equal(t, defaults.MedicationInstructions, p.MedicationInstructions)
	assert.Equal(t, defaults.NextVisit, p.NextVisit)
	assert.Equal(t, defaults.OutpatientServices, p.OutpatientServices)
	assert.Equal(t, defaults.SelfCareRecommendations, p.SelfCareRecommendations)
	assert.Equal(t, defaults.Nutrition, p.Nutrition)
}

func TestApplyKeepsSuppliedText(t *testing.T) {
	catalog := Builtin()
	p := &model.Patient{
		SurgeryType:  model.SurgeryBrain,
		WarningSigns: "custom text",
	}

	catalog.Apply(p)

	assert.Equal(t, "custom text", p.WarningSigns)
	assert.Equal(t, catalog[model.SurgeryBrain].Nutrition, p.Nutrition)
}

func TestApplyUnknownSurgeryTypeIsNoop(t *testing.T) {
	p := &model.Patient{SurgeryType: "unknown_code"}

	Builtin().Apply(p)

	assert.Empty(t, p.WarningSigns)
	assert.Empty(t, p.MedicationInstructions)
	assert.Empty(t, p.NextVisit)
	assert.Empty(t, p.OutpatientServices)
	assert.Empty(t, p.SelfCareRecommendations)
	assert.Empty(t, p.Nutrition)
}

func TestApplyWithoutSurgeryTypeIsNoop(t *testing.T) {
	p := &model.Patient{}

	Builtin().Apply(p)

	assert.Empty(t, p.WarningSigns)
}

func TestMergeOverridesAndAdds(t *testing.T) {
	base := Builtin()
	merged := base.Merge(Catalog{
		model.SurgeryIntertrochanteric: {NextVisit: "After 6 weeks."},
		"cardiac":                      {WarningSigns: "Irregular heartbeat"},
	})

	assert.Equal(t, "After 6 weeks.", merged[model.SurgeryIntertrochanteric].NextVisit)
	// Fields not overridden keep the built-in text.
	assert.Equal(t, base[model.SurgeryIntertrochanteric].WarningSigns,
		merged[model.SurgeryIntertrochanteric].WarningSigns)

	added, ok := merged["cardiac"]
	require.True(t, ok)
	assert.Equal(t, "Irregular heartbeat", added.WarningSigns)

	// Merge must not mutate the receiver.
	assert.Equal(t, "After 1 month.", base[model.SurgeryIntertrochanteric].NextVisit)
}

func TestLocalized(t *testing.T) {
	upper := Builtin().Localized(func(s string) string { return "@" + s })

	for surgeryType, set := range upper {
		assert.Equal(t, "@"+Builtin()[surgeryType].WarningSigns, set.WarningSigns)
	}
}
