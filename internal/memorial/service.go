package memorial

import (
	"context"
	defError "errors"
	"fmt"
	"memoras-backend/auth"
	"memoras-backend/internal/domain"
	"memoras-backend/internal/errors"
	"memoras-backend/redis"
	"time"

	"gorm.io/gorm"
)

// Guard is the access check every memorial-scoped surface runs first.
type Guard interface {
	CheckAccess(ctx context.Context, memorialID string, ident auth.Identity) (*domain.Memorial, error)
}

type CreateInput struct {
	Title        string
	DeceasedName string
	GuestSession string
}

type UpdateInput struct {
	Title        *string
	DeceasedName *string
	Status       *string
	CurrentStep  *string
}

type PaginatedMemorials struct {
	Memorials []domain.MemorialResponse `json:"memorials"`
	Meta      MemorialsMeta             `json:"meta"`
}

type Service interface {
	Guard
	Create(ctx context.Context, ident auth.Identity, input CreateInput) (*domain.Memorial, error)
	Get(ctx context.Context, memorialID string, ident auth.Identity) (*domain.Memorial, error)
	Update(ctx context.Context, memorialID string, ident auth.Identity, input UpdateInput) (*domain.Memorial, error)
	List(ctx context.Context, userID string, page, pageSize int) (*PaginatedMemorials, error)
	Delete(ctx context.Context, memorialID string, ident auth.Identity) error
	CompleteStep(ctx context.Context, memorialID string, ident auth.Identity, step string) (*domain.Memorial, error)
}

type DefaultService struct {
	repository MemorialRepository
	cache      *redis.Cache
}

func NewService(repository MemorialRepository, cache *redis.Cache) Service {
	return &DefaultService{repository: repository, cache: cache}
}

// CheckAccess loads the memorial and verifies the caller owns it. An empty
// identity field never matches: a guest memorial is not reachable by an
// anonymous caller without the right token.
func (s *DefaultService) CheckAccess(ctx context.Context, memorialID string, ident auth.Identity) (*domain.Memorial, error) {
	m, err := s.repository.FindByID(ctx, memorialID)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Memorial not found", err)
		}
		return nil, err
	}

	ownedByUser := ident.UserID != "" && m.UserID == ident.UserID
	ownedByGuest := ident.GuestSession != "" && m.GuestSession == ident.GuestSession
	if !ownedByUser && !ownedByGuest {
		return nil, errors.AccessDenied(nil)
	}

	return m, nil
}

// Create requires either an authenticated caller or a guest session token.
func (s *DefaultService) Create(ctx context.Context, ident auth.Identity, input CreateInput) (*domain.Memorial, error) {
	if ident.UserID == "" && input.GuestSession == "" {
		return nil, errors.BadRequest("Either authentication or guest session is required", nil)
	}

	m := &domain.Memorial{
		UserID:       ident.UserID,
		GuestSession: input.GuestSession,
		Title:        input.Title,
		DeceasedName: input.DeceasedName,
	}

	if err := s.repository.Create(ctx, m); err != nil {
		return nil, err
	}

	s.invalidateList(m.UserID)
	return m, nil
}

func (s *DefaultService) Get(ctx context.Context, memorialID string, ident auth.Identity) (*domain.Memorial, error) {
	if _, err := s.CheckAccess(ctx, memorialID, ident); err != nil {
		return nil, err
	}
	return s.repository.FindByIDWithRelations(ctx, memorialID)
}

func (s *DefaultService) Update(ctx context.Context, memorialID string, ident auth.Identity, input UpdateInput) (*domain.Memorial, error) {
	m, err := s.CheckAccess(ctx, memorialID, ident)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		m.Title = *input.Title
	}
	if input.DeceasedName != nil {
		m.DeceasedName = *input.DeceasedName
	}
	if input.Status != nil {
		m.Status = domain.MemorialStatus(*input.Status)
	}
	if input.CurrentStep != nil {
		m.CurrentStep = *input.CurrentStep
	}

	if err := s.repository.Save(ctx, m); err != nil {
		return nil, err
	}

	s.invalidateList(m.UserID)
	return m, nil
}

func (s *DefaultService) List(ctx context.Context, userID string, page, pageSize int) (*PaginatedMemorials, error) {
	versionKey := fmt.Sprintf("user:%s:memorials:version", userID)
	v := s.cache.GetVersion(ctx, versionKey)

	cacheKey := fmt.Sprintf("memorials:u:%s:v:%d:p:%d:ps:%d", userID, v, page, pageSize)

	var result PaginatedMemorials
	found, _ := s.cache.Get(ctx, cacheKey, &result)
	if found {
		return &result, nil
	}

	memorials, meta, err := s.repository.ListByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.MemorialResponse, 0, len(memorials))
	for i := range memorials {
		responses = append(responses, memorials[i].ToResponse(false))
	}
	result = PaginatedMemorials{Memorials: responses, Meta: meta}

	go s.cache.Set(context.Background(), cacheKey, result, 24*time.Hour)

	return &result, nil
}

func (s *DefaultService) Delete(ctx context.Context, memorialID string, ident auth.Identity) error {
	m, err := s.CheckAccess(ctx, memorialID, ident)
	if err != nil {
		return err
	}

	if err := s.repository.Delete(ctx, m); err != nil {
		return err
	}

	s.invalidateList(m.UserID)
	return nil
}

// CompleteStep is the only place the status/current_step transition happens.
// Section saves mark steps completed but never advance the flow.
func (s *DefaultService) CompleteStep(ctx context.Context, memorialID string, ident auth.Identity, step string) (*domain.Memorial, error) {
	m, err := s.CheckAccess(ctx, memorialID, ident)
	if err != nil {
		return nil, err
	}

	m.AddCompletedStep(step)

	if next := m.NextStep(); next != "" {
		m.CurrentStep = next
	} else {
		m.Status = domain.StatusCompleted
	}

	if err := s.repository.Save(ctx, m); err != nil {
		return nil, err
	}

	s.invalidateList(m.UserID)
	return m, nil
}

func (s *DefaultService) invalidateList(userID string) {
	if userID == "" {
		return
	}
	versionKey := fmt.Sprintf("user:%s:memorials:version", userID)
	s.cache.IncrementVersion(context.Background(), versionKey)
}
