package memorial

import (
	"context"
	"memoras-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemorialRepository interface {
	Create(ctx context.Context, m *domain.Memorial) error
	FindByID(ctx context.Context, id string) (*domain.Memorial, error)
	FindByIDWithRelations(ctx context.Context, id string) (*domain.Memorial, error)
	ListByUserID(ctx context.Context, userID string, page, pageSize int) ([]domain.Memorial, MemorialsMeta, error)
	Save(ctx context.Context, m *domain.Memorial) error
	Delete(ctx context.Context, m *domain.Memorial) error
}

type MemorialRepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new memorial repository
func NewRepository(db *gorm.DB) MemorialRepository {
	return &MemorialRepositoryImpl{db: db}
}

func (r *MemorialRepositoryImpl) Create(ctx context.Context, m *domain.Memorial) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// FindByID loads the memorial with its obituary so CanGeneratePDF is accurate.
func (r *MemorialRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Memorial, error) {
	var m domain.Memorial
	err := r.db.WithContext(ctx).
		Preload("Obituary").
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemorialRepositoryImpl) FindByIDWithRelations(ctx context.Context, id string) (*domain.Memorial, error) {
	var m domain.Memorial
	err := r.db.WithContext(ctx).
		Preload("Obituary").
		Preload("Acknowledgements").
		Preload("BodyViewing").
		Preload("RepassLocation").
		Preload("BurialLocation").
		Preload("Photos").
		Preload("Speeches", func(db *gorm.DB) *gorm.DB {
			// no ordering column is persisted; insertion order is the contract
			return db.Order("created_at, id")
		}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

type MemorialsMeta struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalPage   int   `json:"total_page"`
}

func (r *MemorialRepositoryImpl) ListByUserID(ctx context.Context, userID string, page, pageSize int) ([]domain.Memorial, MemorialsMeta, error) {
	var memorials []domain.Memorial
	var totalRecords int64

	if err := r.db.WithContext(ctx).Model(&domain.Memorial{}).
		Where("user_id = ?", userID).
		Count(&totalRecords).Error; err != nil {
		return memorials, MemorialsMeta{}, err
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Preload("Obituary").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&memorials).Error

	totalPages := int((totalRecords + int64(pageSize) - 1) / int64(pageSize))

	return memorials, MemorialsMeta{
		Total:       totalRecords,
		PerPage:     pageSize,
		TotalPage:   totalPages,
		CurrentPage: page,
	}, err
}

// Save persists the memorial row itself; loaded relations are never written
// back from here.
func (r *MemorialRepositoryImpl) Save(ctx context.Context, m *domain.Memorial) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error
}

// Delete removes the memorial; section rows follow via FK cascade.
func (r *MemorialRepositoryImpl) Delete(ctx context.Context, m *domain.Memorial) error {
	return r.db.WithContext(ctx).Delete(m).Error
}
