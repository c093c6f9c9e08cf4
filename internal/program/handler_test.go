package program

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"memoras-backend/auth"
	"memoras-backend/internal/domain"
	apiErrors "memoras-backend/internal/errors"
	"memoras-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubGuard struct {
	m   *domain.Memorial
	err error
}

func (g stubGuard) CheckAccess(ctx context.Context, memorialID string, ident auth.Identity) (*domain.Memorial, error) {
	return g.m, g.err
}

func sectionRouter(guard stubGuard) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())

	s := NewService(nil, guard)
	Register(router.Group("/api/obituaries"), "obituary", s, ObituarySection)

	speeches := NewSpeechHandler(s)
	router.POST("/api/speeches/:id/speeches", speeches.Save)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSaveSection_RejectsUnknownField(t *testing.T) {
	// the guard is never reached; decode fails first
	router := sectionRouter(stubGuard{err: apiErrors.AccessDenied(nil)})

	w := postJSON(router, "/api/obituaries/mem-1/obituary",
		`{"full_name": "Jane Doe", "bogus_field": 123}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bogus_field")
	assert.Contains(t, w.Body.String(), "Unknown field")
}

func TestSaveSection_KnownFieldsReachTheGuard(t *testing.T) {
	router := sectionRouter(stubGuard{err: apiErrors.AccessDenied(nil)})

	w := postJSON(router, "/api/obituaries/mem-1/obituary",
		`{"full_name": "Jane Doe", "birth_date": "1950-03-12"}`)

	// decode and validation passed; the guard's 403 is what comes back
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSaveSection_MissingRequiredField(t *testing.T) {
	router := sectionRouter(stubGuard{err: apiErrors.AccessDenied(nil)})

	w := postJSON(router, "/api/obituaries/mem-1/obituary", `{"birth_date": "1950-03-12"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveSpeeches_RejectsUnknownFieldInElement(t *testing.T) {
	router := sectionRouter(stubGuard{err: apiErrors.AccessDenied(nil)})

	w := postJSON(router, "/api/speeches/mem-1/speeches",
		`[{"speaker_name": "A", "speech_type": "eulogy", "bogus_field": 1}]`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bogus_field")
}
