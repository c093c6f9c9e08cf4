package photo

import (
	"memoras-backend/auth"
	"memoras-backend/internal/errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload accepts one or more files under the multipart field "photos" with
// an optional "photo_type" value (profile or gallery, default gallery).
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.Error(errors.BadRequest("Invalid multipart form", err))
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		c.Error(errors.BadRequest("No photos provided", nil))
		return
	}

	photoType := c.PostForm("photo_type")
	if photoType != "" && photoType != "profile" && photoType != "gallery" {
		c.Error(errors.BadRequest("photo_type must be profile or gallery", nil))
		return
	}

	photos, m, err := h.service.Upload(c.Request.Context(), c.Param("id"), auth.IdentityFrom(c), files, photoType)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Photos uploaded successfully",
		"photos":   photos,
		"memorial": m.ToResponse(false),
	})
}

func (h *Handler) List(c *gin.Context) {
	photos, err := h.service.List(c.Request.Context(), c.Param("id"), auth.IdentityFrom(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"), c.Param("photoId"), auth.IdentityFrom(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted successfully"})
}
