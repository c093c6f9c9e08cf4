package pdf

import (
	"memoras-backend/auth"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Generate schedules PDF generation and returns immediately.
func (h *Handler) Generate(c *gin.Context) {
	err := h.service.Enqueue(c.Request.Context(), c.Param("id"), auth.IdentityFrom(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "PDF generation started",
	})
}
