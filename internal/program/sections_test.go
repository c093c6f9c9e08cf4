package program

import (
	"testing"

	"memoras-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestObituaryApply_PartialUpdateKeepsStoredValues(t *testing.T) {
	row := &domain.Obituary{
		MemorialID: "mem-1",
		FullName:   "Jane Doe",
		BirthDate:  strPtr("1950-03-12"),
		LifeStory:  strPtr("A long and full life."),
	}

	// only full_name and death_date carried in the payload
	form := &ObituaryForm{
		FullName:  "Jane A. Doe",
		DeathDate: strPtr("2026-01-05"),
	}
	ObituarySection.Apply(form, row)

	assert.Equal(t, "Jane A. Doe", row.FullName)
	assert.Equal(t, "2026-01-05", *row.DeathDate)
	assert.Equal(t, "1950-03-12", *row.BirthDate)
	assert.Equal(t, "A long and full life.", *row.LifeStory)
}

func TestObituaryAfterSave_BackfillsDeceasedNameOnce(t *testing.T) {
	m := &domain.Memorial{ID: "mem-1"}

	ObituarySection.AfterSave(&ObituaryForm{FullName: "Jane Doe"}, m)
	assert.Equal(t, "Jane Doe", m.DeceasedName)

	// first write wins; later saves never overwrite it
	ObituarySection.AfterSave(&ObituaryForm{FullName: "Someone Else"}, m)
	assert.Equal(t, "Jane Doe", m.DeceasedName)
}

func TestBodyViewingApply_RequiredFlagAndOptionalFields(t *testing.T) {
	row := &domain.BodyViewing{MemorialID: "mem-1"}

	has := true
	BodyViewingSection.Apply(&BodyViewingForm{
		HasViewing:      &has,
		ViewingDate:     strPtr("2026-01-10"),
		ViewingLocation: strPtr("Grace Chapel"),
	}, row)

	assert.True(t, row.HasViewing)
	assert.Equal(t, "2026-01-10", *row.ViewingDate)
	assert.Equal(t, "Grace Chapel", *row.ViewingLocation)
	assert.Nil(t, row.ViewingNotes)

	// flipping the flag off leaves the detail fields untouched
	has2 := false
	BodyViewingSection.Apply(&BodyViewingForm{HasViewing: &has2}, row)
	assert.False(t, row.HasViewing)
	assert.Equal(t, "Grace Chapel", *row.ViewingLocation)
}

func TestSectionDefs_CoverTheirSteps(t *testing.T) {
	assert.Equal(t, domain.StepObituary, ObituarySection.Step)
	assert.Equal(t, domain.StepAcknowledgements, AcknowledgementsSection.Step)
	assert.Equal(t, domain.StepBodyViewing, BodyViewingSection.Step)
	assert.Equal(t, domain.StepRepassLocation, RepassLocationSection.Step)
	assert.Equal(t, domain.StepBurialLocation, BurialLocationSection.Step)

	// only the obituary descriptor carries an AfterSave hook
	assert.NotNil(t, ObituarySection.AfterSave)
	assert.Nil(t, AcknowledgementsSection.AfterSave)
	assert.Nil(t, BurialLocationSection.AfterSave)
}

func TestApplyPtr(t *testing.T) {
	var dest *string

	applyPtr[string](nil, &dest)
	assert.Nil(t, dest)

	applyPtr(strPtr("value"), &dest)
	assert.Equal(t, "value", *dest)

	applyPtr[string](nil, &dest)
	assert.Equal(t, "value", *dest)
}
