package photo

import (
	"context"
	defError "errors"
	"log"
	"memoras-backend/auth"
	"memoras-backend/internal/domain"
	"memoras-backend/internal/errors"
	"memoras-backend/internal/memorial"
	"mime/multipart"
	"path/filepath"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db      *gorm.DB
	guard   memorial.Guard
	storage *Storage
}

func NewService(db *gorm.DB, guard memorial.Guard, storage *Storage) *Service {
	return &Service{db: db, guard: guard, storage: storage}
}

// Upload validates and stores each file in order, then commits all rows and
// the photos step in one transaction. A rejected file aborts the batch with
// no rows written; files copied to disk for earlier iterations of the same
// batch are left behind (known gap, kept as-is).
func (s *Service) Upload(ctx context.Context, memorialID string, ident auth.Identity, files []*multipart.FileHeader, photoType string) ([]domain.Photo, *domain.Memorial, error) {
	m, err := s.guard.CheckAccess(ctx, memorialID, ident)
	if err != nil {
		return nil, nil, err
	}

	if photoType == "" {
		photoType = "gallery"
	}

	photos := make([]domain.Photo, 0, len(files))
	for _, fh := range files {
		if err := s.storage.Validate(fh); err != nil {
			return nil, nil, errors.BadRequest(err.Error(), err)
		}

		storedName, fileURL, err := s.storage.Store(memorialID, fh)
		if err != nil {
			return nil, nil, err
		}

		photos = append(photos, domain.Photo{
			MemorialID:       memorialID,
			Filename:         storedName,
			OriginalFilename: filepath.Base(fh.Filename),
			FileURL:          fileURL,
			PhotoType:        photoType,
		})
	}

	m.AddCompletedStep(domain.StepPhotos)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&photos).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(m).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return photos, m, nil
}

func (s *Service) List(ctx context.Context, memorialID string, ident auth.Identity) ([]domain.Photo, error) {
	if _, err := s.guard.CheckAccess(ctx, memorialID, ident); err != nil {
		return nil, err
	}

	var photos []domain.Photo
	err := s.db.WithContext(ctx).
		Where("memorial_id = ?", memorialID).
		Order("created_at, id").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	if photos == nil {
		photos = []domain.Photo{}
	}
	return photos, nil
}

// Delete removes the row and its stored file. Emptying the gallery clears
// the photos step.
func (s *Service) Delete(ctx context.Context, memorialID, photoID string, ident auth.Identity) error {
	m, err := s.guard.CheckAccess(ctx, memorialID, ident)
	if err != nil {
		return err
	}

	var p domain.Photo
	err = s.db.WithContext(ctx).
		Where("id = ? AND memorial_id = ?", photoID, memorialID).
		First(&p).Error
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound("Photo not found", err)
		}
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&p).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&domain.Photo{}).
			Where("memorial_id = ?", memorialID).
			Count(&remaining).Error; err != nil {
			return err
		}

		if remaining == 0 {
			m.RemoveCompletedStep(domain.StepPhotos)
			return tx.Omit(clause.Associations).Save(m).Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.storage.Remove(memorialID, p.Filename); err != nil {
		log.Printf("failed to remove photo file %s: %v", p.Filename, err)
	}

	return nil
}
