package program

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"
	"memoras-backend/auth"
	"memoras-backend/internal/domain"
	"memoras-backend/internal/errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Speeches are many-valued and saved wholesale: every save replaces the
// entire set for the memorial.

type SpeechForm struct {
	SpeakerName  string  `json:"speaker_name" binding:"required,max=200"`
	Relationship *string `json:"relationship" binding:"omitempty,max=100"`
	SpeechType   string  `json:"speech_type" binding:"required,max=50"`
	Notes        *string `json:"notes"`
}

// parseSpeechForms accepts a single object or a list and normalizes to a
// list; an empty body means an empty list. Unknown payload keys are
// rejected like every other section form.
func parseSpeechForms(raw []byte) ([]SpeechForm, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []SpeechForm{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	if trimmed[0] == '[' {
		var forms []SpeechForm
		if err := dec.Decode(&forms); err != nil {
			return nil, err
		}
		if forms == nil {
			forms = []SpeechForm{}
		}
		return forms, nil
	}

	var single SpeechForm
	if err := dec.Decode(&single); err != nil {
		return nil, err
	}
	return []SpeechForm{single}, nil
}

func (s *Service) SaveSpeeches(ctx context.Context, memorialID string, ident auth.Identity, forms []SpeechForm) ([]domain.Speech, *domain.Memorial, error) {
	m, err := s.guard.CheckAccess(ctx, memorialID, ident)
	if err != nil {
		return nil, nil, err
	}

	// a batch insert would share one wall-clock stamp; spacing the rows a
	// microsecond apart keeps reads in submission order
	now := time.Now().UTC()
	speeches := make([]domain.Speech, 0, len(forms))
	for i, f := range forms {
		speeches = append(speeches, domain.Speech{
			MemorialID:   memorialID,
			SpeakerName:  f.SpeakerName,
			Relationship: f.Relationship,
			SpeechType:   f.SpeechType,
			Notes:        f.Notes,
			CreatedAt:    now.Add(time.Duration(i) * time.Microsecond),
		})
	}

	// an empty list still counts as a completed step
	m.AddCompletedStep(domain.StepSpeeches)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("memorial_id = ?", memorialID).Delete(&domain.Speech{}).Error; err != nil {
			return err
		}
		if len(speeches) > 0 {
			if err := tx.Create(&speeches).Error; err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Save(m).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return speeches, m, nil
}

func (s *Service) GetSpeeches(ctx context.Context, memorialID string, ident auth.Identity) ([]domain.Speech, error) {
	if _, err := s.guard.CheckAccess(ctx, memorialID, ident); err != nil {
		return nil, err
	}

	var speeches []domain.Speech
	err := s.db.WithContext(ctx).
		Where("memorial_id = ?", memorialID).
		Order("created_at, id").
		Find(&speeches).Error
	if err != nil {
		return nil, err
	}
	if speeches == nil {
		speeches = []domain.Speech{}
	}
	return speeches, nil
}

func (s *Service) DeleteSpeeches(ctx context.Context, memorialID string, ident auth.Identity) (int64, error) {
	m, err := s.guard.CheckAccess(ctx, memorialID, ident)
	if err != nil {
		return 0, err
	}

	m.RemoveCompletedStep(domain.StepSpeeches)

	var deleted int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("memorial_id = ?", memorialID).Delete(&domain.Speech{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return tx.Omit(clause.Associations).Save(m).Error
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

type SpeechHandler struct {
	service *Service
}

func NewSpeechHandler(service *Service) *SpeechHandler {
	return &SpeechHandler{service: service}
}

func (h *SpeechHandler) Save(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.Error(errors.BadRequest("Invalid request body", err))
		return
	}

	forms, err := parseSpeechForms(raw)
	if err != nil {
		c.Error(errors.FromStrictJSON(err))
		return
	}

	for i := range forms {
		if err := binding.Validator.ValidateStruct(&forms[i]); err != nil {
			c.Error(errors.FromBinding(err))
			return
		}
	}

	speeches, m, err := h.service.SaveSpeeches(c.Request.Context(), c.Param("id"), auth.IdentityFrom(c), forms)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Speeches saved successfully",
		"speeches": speeches,
		"memorial": m.ToResponse(false),
	})
}

func (h *SpeechHandler) List(c *gin.Context) {
	speeches, err := h.service.GetSpeeches(c.Request.Context(), c.Param("id"), auth.IdentityFrom(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"speeches": speeches})
}

func (h *SpeechHandler) Delete(c *gin.Context) {
	deleted, err := h.service.DeleteSpeeches(c.Request.Context(), c.Param("id"), auth.IdentityFrom(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successfully deleted %d speeches", deleted),
	})
}
