package program

import (
	"context"
	defError "errors"
	"memoras-backend/auth"
	"memoras-backend/internal/domain"
	"memoras-backend/internal/errors"
	"memoras-backend/internal/memorial"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SectionDef describes one singleton program section: its form type, its row
// type, the step it completes, and how a validated form maps onto the row.
// One descriptor per section replaces seven copies of the same handler.
type SectionDef[F any, M any] struct {
	// Step is the canonical step name recorded on the memorial.
	Step string
	// ResponseKey is the JSON key the serialized row is returned under.
	ResponseKey string
	// Label is used in response messages ("Obituary saved successfully").
	Label string
	// New constructs an empty row bound to a memorial.
	New func(memorialID string) *M
	// Apply copies submitted fields onto the row. Forms use pointer fields,
	// so only keys present in the payload overwrite anything.
	Apply func(form *F, row *M)
	// AfterSave optionally mutates the memorial in the same transaction.
	AfterSave func(form *F, m *domain.Memorial)
}

// Service executes guarded section reads and writes. All multi-row writes
// run inside one transaction so a failure rolls back both the section row
// and the memorial's step bookkeeping.
type Service struct {
	db    *gorm.DB
	guard memorial.Guard
}

func NewService(db *gorm.DB, guard memorial.Guard) *Service {
	return &Service{db: db, guard: guard}
}

func saveSection[F any, M any](ctx context.Context, s *Service, def SectionDef[F, M], memorialID string, ident auth.Identity, form *F) (*M, *domain.Memorial, error) {
	m, err := s.guard.CheckAccess(ctx, memorialID, ident)
	if err != nil {
		return nil, nil, err
	}

	var row *M
	var existing M
	err = s.db.WithContext(ctx).Where("memorial_id = ?", memorialID).First(&existing).Error
	switch {
	case err == nil:
		row = &existing
	case defError.Is(err, gorm.ErrRecordNotFound):
		row = def.New(memorialID)
	default:
		return nil, nil, err
	}

	def.Apply(form, row)

	m.AddCompletedStep(def.Step)
	if def.AfterSave != nil {
		def.AfterSave(form, m)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(row).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(m).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return row, m, nil
}

func getSection[F any, M any](ctx context.Context, s *Service, def SectionDef[F, M], memorialID string, ident auth.Identity) (*M, error) {
	if _, err := s.guard.CheckAccess(ctx, memorialID, ident); err != nil {
		return nil, err
	}

	var row M
	err := s.db.WithContext(ctx).Where("memorial_id = ?", memorialID).First(&row).Error
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound(def.Label+" not found", err)
		}
		return nil, err
	}
	return &row, nil
}

// deleteSection removes the row and regresses only the step-set membership;
// status and current_step stay wherever they were.
func deleteSection[F any, M any](ctx context.Context, s *Service, def SectionDef[F, M], memorialID string, ident auth.Identity) error {
	m, err := s.guard.CheckAccess(ctx, memorialID, ident)
	if err != nil {
		return err
	}

	var row M
	err = s.db.WithContext(ctx).Where("memorial_id = ?", memorialID).First(&row).Error
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound(def.Label+" not found", err)
		}
		return err
	}

	m.RemoveCompletedStep(def.Step)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&row).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(m).Error
	})
}
