package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MemorialStatus string

const (
	StatusDraft      MemorialStatus = "draft"
	StatusInProgress MemorialStatus = "in_progress"
	StatusCompleted  MemorialStatus = "completed"
	StatusPublished  MemorialStatus = "published"
)

// Canonical step names for the creation flow.
const (
	StepObituary         = "obituary"
	StepBodyViewing      = "body_viewing"
	StepSpeeches         = "speeches"
	StepAcknowledgements = "acknowledgements"
	StepRepassLocation   = "repass_location"
	StepPhotos           = "photos"
	StepBurialLocation   = "burial_location"
)

// StepSequence fixes the order NextStep scans in. The UI reads CurrentStep
// independently, so the order matters only for advancing.
var StepSequence = []string{
	StepObituary,
	StepBodyViewing,
	StepSpeeches,
	StepAcknowledgements,
	StepRepassLocation,
	StepPhotos,
	StepBurialLocation,
}

// TotalSteps is the fixed denominator for progress, regardless of what is
// actually present in CompletedSteps.
const TotalSteps = 7

// Memorial is the aggregate for one program. Exactly one of UserID or
// GuestSession identifies the owner; the empty string means unset.
type Memorial struct {
	ID           string `gorm:"type:char(36);primaryKey" json:"id"`
	UserID       string `gorm:"type:char(36);index" json:"-"`
	GuestSession string `gorm:"size:255;index" json:"-"`

	Status         MemorialStatus              `gorm:"size:20;default:'draft';not null" json:"status"`
	CurrentStep    string                      `gorm:"size:50;default:'obituary';not null" json:"current_step"`
	CompletedSteps datatypes.JSONSlice[string] `json:"completed_steps"`

	Title        string `gorm:"size:200" json:"-"`
	DeceasedName string `gorm:"size:200" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PDFURL         string     `gorm:"column:pdf_url;size:500" json:"-"`
	PDFGeneratedAt *time.Time `gorm:"column:pdf_generated_at" json:"-"`

	Obituary         *Obituary         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Acknowledgements *Acknowledgements `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	BodyViewing      *BodyViewing      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	RepassLocation   *RepassLocation   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	BurialLocation   *BurialLocation   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Photos           []Photo           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Speeches         []Speech          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (m *Memorial) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CompletedSteps == nil {
		m.CompletedSteps = datatypes.JSONSlice[string]{}
	}
	if m.Status == "" {
		m.Status = StatusDraft
	}
	if m.CurrentStep == "" {
		m.CurrentStep = StepObituary
	}
	return nil
}

// IsStepCompleted checks if a step is completed
func (m *Memorial) IsStepCompleted(step string) bool {
	for _, s := range m.CompletedSteps {
		if s == step {
			return true
		}
	}
	return false
}

// AddCompletedStep inserts a step name once, keeping insertion order.
// Returns false when the step was already present.
func (m *Memorial) AddCompletedStep(step string) bool {
	if m.IsStepCompleted(step) {
		return false
	}
	m.CompletedSteps = append(m.CompletedSteps, step)
	return true
}

// RemoveCompletedStep undoes set membership only; it never touches Status
// or CurrentStep.
func (m *Memorial) RemoveCompletedStep(step string) bool {
	for i, s := range m.CompletedSteps {
		if s == step {
			m.CompletedSteps = append(m.CompletedSteps[:i], m.CompletedSteps[i+1:]...)
			return true
		}
	}
	return false
}

// NextStep returns the first step of the canonical sequence not yet
// completed, or "" when all seven are done.
func (m *Memorial) NextStep() string {
	for _, step := range StepSequence {
		if !m.IsStepCompleted(step) {
			return step
		}
	}
	return ""
}

// ProgressPercentage is floor(100 * completed / 7). The set is not validated
// against the canonical names, so stray entries inflate the number.
func (m *Memorial) ProgressPercentage() int {
	return len(m.CompletedSteps) * 100 / TotalSteps
}

// CanGeneratePDF requires only that an obituary exists. Callers must have
// loaded the Obituary relation for this to be meaningful.
func (m *Memorial) CanGeneratePDF() bool {
	return m.Obituary != nil
}

// MemorialRelations is attached to a response only when relations were
// requested; absent sections serialize as null like the rest.
type MemorialRelations struct {
	Obituary         *Obituary         `json:"obituary"`
	Acknowledgements *Acknowledgements `json:"acknowledgements"`
	BodyViewing      *BodyViewing      `json:"body_viewing"`
	RepassLocation   *RepassLocation   `json:"repass_location"`
	BurialLocation   *BurialLocation   `json:"burial_location"`
	Photos           []Photo           `json:"photos"`
	Speeches         []Speech          `json:"speeches"`
}

type MemorialResponse struct {
	ID                 string     `json:"id"`
	UserID             *string    `json:"user_id"`
	GuestSession       *string    `json:"guest_session"`
	Status             string     `json:"status"`
	CurrentStep        string     `json:"current_step"`
	CompletedSteps     []string   `json:"completed_steps"`
	Title              *string    `json:"title"`
	DeceasedName       *string    `json:"deceased_name"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	PDFURL             *string    `json:"pdf_url"`
	PDFGeneratedAt     *time.Time `json:"pdf_generated_at"`
	ProgressPercentage int        `json:"progress_percentage"`
	NextStep           *string    `json:"next_step"`
	CanGeneratePDF     bool       `json:"can_generate_pdf"`

	*MemorialRelations
}

// ToResponse serializes the memorial with its derived progress fields.
func (m *Memorial) ToResponse(includeRelations bool) MemorialResponse {
	resp := MemorialResponse{
		ID:                 m.ID,
		UserID:             nullable(m.UserID),
		GuestSession:       nullable(m.GuestSession),
		Status:             string(m.Status),
		CurrentStep:        m.CurrentStep,
		CompletedSteps:     append([]string{}, m.CompletedSteps...),
		Title:              nullable(m.Title),
		DeceasedName:       nullable(m.DeceasedName),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		PDFURL:             nullable(m.PDFURL),
		PDFGeneratedAt:     m.PDFGeneratedAt,
		ProgressPercentage: m.ProgressPercentage(),
		NextStep:           nullable(m.NextStep()),
		CanGeneratePDF:     m.CanGeneratePDF(),
	}

	if includeRelations {
		photos := m.Photos
		if photos == nil {
			photos = []Photo{}
		}
		speeches := m.Speeches
		if speeches == nil {
			speeches = []Speech{}
		}
		resp.MemorialRelations = &MemorialRelations{
			Obituary:         m.Obituary,
			Acknowledgements: m.Acknowledgements,
			BodyViewing:      m.BodyViewing,
			RepassLocation:   m.RepassLocation,
			BurialLocation:   m.BurialLocation,
			Photos:           photos,
			Speeches:         speeches,
		}
	}

	return resp
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
