package pdf

import (
	"context"
	"log"
	"memoras-backend/auth"
	"memoras-backend/internal/errors"
	"memoras-backend/internal/memorial"
	"memoras-backend/internal/worker"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Service gates PDF generation on the obituary's existence and runs the
// render itself off the request path through the worker pool.
type Service struct {
	repository memorial.MemorialRepository
	guard      memorial.Guard
	renderer   Renderer
	pool       *worker.WorkerPool
	uploadDir  string
}

func NewService(repository memorial.MemorialRepository, guard memorial.Guard, renderer Renderer, pool *worker.WorkerPool, uploadDir string) *Service {
	return &Service{
		repository: repository,
		guard:      guard,
		renderer:   renderer,
		pool:       pool,
		uploadDir:  uploadDir,
	}
}

// Enqueue validates eligibility and schedules the render job. The caller
// polls the memorial's pdf_url to see the result.
func (s *Service) Enqueue(ctx context.Context, memorialID string, ident auth.Identity) error {
	m, err := s.guard.CheckAccess(ctx, memorialID, ident)
	if err != nil {
		return err
	}

	if !m.CanGeneratePDF() {
		return errors.BadRequest("An obituary is required before a program can be generated", nil)
	}

	s.pool.Submit(func(ctx context.Context) error {
		return s.generate(ctx, memorialID)
	})

	return nil
}

func (s *Service) generate(ctx context.Context, memorialID string) error {
	m, err := s.repository.FindByIDWithRelations(ctx, memorialID)
	if err != nil {
		return err
	}

	data, err := s.renderer.Render(ctx, m.ToResponse(true))
	if err != nil {
		return err
	}

	dir := filepath.Join(s.uploadDir, memorialID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	filename := "program-" + uuid.NewString() + ".pdf"
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return err
	}

	now := time.Now().UTC()
	m.PDFURL = "/uploads/" + memorialID + "/" + filename
	m.PDFGeneratedAt = &now
	if err := s.repository.Save(ctx, m); err != nil {
		return err
	}

	log.Printf("Generated program PDF for memorial %s", memorialID)
	return nil
}
