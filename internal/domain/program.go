package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Section entities. Each of the five singleton sections carries a unique
// foreign key to its memorial; Speech and Photo are many-per-memorial.
// Only Obituary tracks updated_at, an asymmetry inherited from the data model.

type Obituary struct {
	ID         string `gorm:"type:char(36);primaryKey" json:"id"`
	MemorialID string `gorm:"type:char(36);uniqueIndex;not null" json:"memorial_id"`

	FullName   string  `gorm:"size:200;not null" json:"full_name"`
	BirthDate  *string `gorm:"size:10" json:"birth_date"`
	DeathDate  *string `gorm:"size:10" json:"death_date"`
	BirthPlace *string `gorm:"size:200" json:"birth_place"`

	LifeStory  *string `gorm:"type:text" json:"life_story"`
	SurvivedBy *string `gorm:"type:text" json:"survived_by"`
	PrecededBy *string `gorm:"type:text" json:"preceded_by"`

	// traditional, celebratory, personal, spiritual
	Tone *string `gorm:"size:50" json:"tone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Obituary) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type Acknowledgements struct {
	ID         string `gorm:"type:char(36);primaryKey" json:"id"`
	MemorialID string `gorm:"type:char(36);uniqueIndex;not null" json:"memorial_id"`

	AcknowledgmentText string `gorm:"type:text;not null" json:"acknowledgment_text"`

	CreatedAt time.Time `json:"created_at"`
}

func (a *Acknowledgements) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type BodyViewing struct {
	ID         string `gorm:"type:char(36);primaryKey" json:"id"`
	MemorialID string `gorm:"type:char(36);uniqueIndex;not null" json:"memorial_id"`

	HasViewing       bool    `gorm:"default:false" json:"has_viewing"`
	ViewingDate      *string `gorm:"size:10" json:"viewing_date"`
	ViewingStartTime *string `gorm:"size:20" json:"viewing_start_time"`
	ViewingEndTime   *string `gorm:"size:20" json:"viewing_end_time"`
	ViewingLocation  *string `gorm:"size:500" json:"viewing_location"`
	ViewingNotes     *string `gorm:"type:text" json:"viewing_notes"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *BodyViewing) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type RepassLocation struct {
	ID         string `gorm:"type:char(36);primaryKey" json:"id"`
	MemorialID string `gorm:"type:char(36);uniqueIndex;not null" json:"memorial_id"`

	HasRepass     bool    `gorm:"default:false" json:"has_repass"`
	VenueName     *string `gorm:"size:200" json:"venue_name"`
	RepassAddress *string `gorm:"size:500" json:"repass_address"`
	RepassDate    *string `gorm:"size:10" json:"repass_date"`
	RepassTime    *string `gorm:"size:20" json:"repass_time"`
	RepassNotes   *string `gorm:"type:text" json:"repass_notes"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *RepassLocation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type BurialLocation struct {
	ID         string `gorm:"type:char(36);primaryKey" json:"id"`
	MemorialID string `gorm:"type:char(36);uniqueIndex;not null" json:"memorial_id"`

	// burial, cremation, mausoleum
	BurialType    *string `gorm:"size:50" json:"burial_type"`
	CemeteryName  *string `gorm:"size:200" json:"cemetery_name"`
	BurialAddress *string `gorm:"size:500" json:"burial_address"`
	BurialDate    *string `gorm:"size:10" json:"burial_date"`
	BurialTime    *string `gorm:"size:20" json:"burial_time"`
	BurialNotes   *string `gorm:"type:text" json:"burial_notes"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *BurialLocation) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Speech has no persisted ordering column; reads return insertion order.
type Speech struct {
	ID         string `gorm:"type:char(36);primaryKey" json:"id"`
	MemorialID string `gorm:"type:char(36);index;not null" json:"memorial_id"`

	SpeakerName  string  `gorm:"size:200;not null" json:"speaker_name"`
	Relationship *string `gorm:"size:100" json:"relationship"`
	// conventionally introduction, prayer, eulogy or closing; not enforced
	SpeechType string  `gorm:"size:50" json:"speech_type"`
	Notes      *string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *Speech) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type Photo struct {
	ID         string `gorm:"type:char(36);primaryKey" json:"id"`
	MemorialID string `gorm:"type:char(36);index;not null" json:"memorial_id"`

	Filename         string `gorm:"size:255;not null" json:"filename"`
	OriginalFilename string `gorm:"size:255" json:"original_filename"`
	FileURL          string `gorm:"size:500;not null" json:"file_url"`
	// profile or gallery
	PhotoType string `gorm:"size:50;default:'gallery'" json:"photo_type"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
