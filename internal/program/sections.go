package program

import (
	"memoras-backend/internal/domain"
)

// Descriptors for the five singleton sections. Pointer form fields carry
// partial-update semantics: a key absent from the payload leaves the stored
// value alone.

type ObituaryForm struct {
	FullName   string  `json:"full_name" binding:"required,max=200"`
	BirthDate  *string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	DeathDate  *string `json:"death_date" binding:"omitempty,datetime=2006-01-02"`
	BirthPlace *string `json:"birth_place" binding:"omitempty,max=200"`
	LifeStory  *string `json:"life_story"`
	SurvivedBy *string `json:"survived_by"`
	PrecededBy *string `json:"preceded_by"`
	Tone       *string `json:"tone" binding:"omitempty,max=50"`
}

var ObituarySection = SectionDef[ObituaryForm, domain.Obituary]{
	Step:        domain.StepObituary,
	ResponseKey: "obituary",
	Label:       "Obituary",
	New: func(memorialID string) *domain.Obituary {
		return &domain.Obituary{MemorialID: memorialID}
	},
	Apply: func(f *ObituaryForm, row *domain.Obituary) {
		row.FullName = f.FullName
		applyPtr(f.BirthDate, &row.BirthDate)
		applyPtr(f.DeathDate, &row.DeathDate)
		applyPtr(f.BirthPlace, &row.BirthPlace)
		applyPtr(f.LifeStory, &row.LifeStory)
		applyPtr(f.SurvivedBy, &row.SurvivedBy)
		applyPtr(f.PrecededBy, &row.PrecededBy)
		applyPtr(f.Tone, &row.Tone)
	},
	// deceased_name backfill is first-write-wins
	AfterSave: func(f *ObituaryForm, m *domain.Memorial) {
		if f.FullName != "" && m.DeceasedName == "" {
			m.DeceasedName = f.FullName
		}
	},
}

type AcknowledgementsForm struct {
	AcknowledgmentText string `json:"acknowledgment_text" binding:"required"`
}

var AcknowledgementsSection = SectionDef[AcknowledgementsForm, domain.Acknowledgements]{
	Step:        domain.StepAcknowledgements,
	ResponseKey: "acknowledgements",
	Label:       "Acknowledgements",
	New: func(memorialID string) *domain.Acknowledgements {
		return &domain.Acknowledgements{MemorialID: memorialID}
	},
	Apply: func(f *AcknowledgementsForm, row *domain.Acknowledgements) {
		row.AcknowledgmentText = f.AcknowledgmentText
	},
}

type BodyViewingForm struct {
	HasViewing       *bool   `json:"has_viewing" binding:"required"`
	ViewingDate      *string `json:"viewing_date" binding:"omitempty,datetime=2006-01-02"`
	ViewingStartTime *string `json:"viewing_start_time" binding:"omitempty,max=20"`
	ViewingEndTime   *string `json:"viewing_end_time" binding:"omitempty,max=20"`
	ViewingLocation  *string `json:"viewing_location" binding:"omitempty,max=500"`
	ViewingNotes     *string `json:"viewing_notes"`
}

var BodyViewingSection = SectionDef[BodyViewingForm, domain.BodyViewing]{
	Step:        domain.StepBodyViewing,
	ResponseKey: "body_viewing",
	Label:       "Body viewing",
	New: func(memorialID string) *domain.BodyViewing {
		return &domain.BodyViewing{MemorialID: memorialID}
	},
	Apply: func(f *BodyViewingForm, row *domain.BodyViewing) {
		row.HasViewing = *f.HasViewing
		applyPtr(f.ViewingDate, &row.ViewingDate)
		applyPtr(f.ViewingStartTime, &row.ViewingStartTime)
		applyPtr(f.ViewingEndTime, &row.ViewingEndTime)
		applyPtr(f.ViewingLocation, &row.ViewingLocation)
		applyPtr(f.ViewingNotes, &row.ViewingNotes)
	},
}

type RepassLocationForm struct {
	HasRepass     *bool   `json:"has_repass" binding:"required"`
	VenueName     *string `json:"venue_name" binding:"omitempty,max=200"`
	RepassAddress *string `json:"repass_address" binding:"omitempty,max=500"`
	RepassDate    *string `json:"repass_date" binding:"omitempty,datetime=2006-01-02"`
	RepassTime    *string `json:"repass_time" binding:"omitempty,max=20"`
	RepassNotes   *string `json:"repass_notes"`
}

var RepassLocationSection = SectionDef[RepassLocationForm, domain.RepassLocation]{
	Step:        domain.StepRepassLocation,
	ResponseKey: "repass_location",
	Label:       "Repass location",
	New: func(memorialID string) *domain.RepassLocation {
		return &domain.RepassLocation{MemorialID: memorialID}
	},
	Apply: func(f *RepassLocationForm, row *domain.RepassLocation) {
		row.HasRepass = *f.HasRepass
		applyPtr(f.VenueName, &row.VenueName)
		applyPtr(f.RepassAddress, &row.RepassAddress)
		applyPtr(f.RepassDate, &row.RepassDate)
		applyPtr(f.RepassTime, &row.RepassTime)
		applyPtr(f.RepassNotes, &row.RepassNotes)
	},
}

type BurialLocationForm struct {
	BurialType    *string `json:"burial_type" binding:"omitempty,max=50"`
	CemeteryName  *string `json:"cemetery_name" binding:"omitempty,max=200"`
	BurialAddress *string `json:"burial_address" binding:"omitempty,max=500"`
	BurialDate    *string `json:"burial_date" binding:"omitempty,datetime=2006-01-02"`
	BurialTime    *string `json:"burial_time" binding:"omitempty,max=20"`
	BurialNotes   *string `json:"burial_notes"`
}

var BurialLocationSection = SectionDef[BurialLocationForm, domain.BurialLocation]{
	Step:        domain.StepBurialLocation,
	ResponseKey: "burial_location",
	Label:       "Burial location",
	New: func(memorialID string) *domain.BurialLocation {
		return &domain.BurialLocation{MemorialID: memorialID}
	},
	Apply: func(f *BurialLocationForm, row *domain.BurialLocation) {
		applyPtr(f.BurialType, &row.BurialType)
		applyPtr(f.CemeteryName, &row.CemeteryName)
		applyPtr(f.BurialAddress, &row.BurialAddress)
		applyPtr(f.BurialDate, &row.BurialDate)
		applyPtr(f.BurialTime, &row.BurialTime)
		applyPtr(f.BurialNotes, &row.BurialNotes)
	},
}

// applyPtr overwrites dest only when the form actually carried the field.
func applyPtr[T any](src *T, dest **T) {
	if src != nil {
		*dest = src
	}
}
