package memorial

import (
	"fmt"
	"memoras-backend/auth"
	"memoras-backend/internal/errors"
	"memoras-backend/internal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type FormCreate struct {
	Title        string `json:"title" binding:"omitempty,max=200"`
	DeceasedName string `json:"deceased_name" binding:"omitempty,max=200"`
	GuestSession string `json:"guest_session" binding:"omitempty,max=255"`
}

type FormUpdate struct {
	Title        *string `json:"title" binding:"omitempty,max=200"`
	DeceasedName *string `json:"deceased_name" binding:"omitempty,max=200"`
	Status       *string `json:"status" binding:"omitempty,oneof=draft in_progress completed published"`
	CurrentStep  *string `json:"current_step" binding:"omitempty,max=50"`
}

func (h *Handler) Create(c *gin.Context) {
	var form FormCreate
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.FromBinding(err))
		return
	}

	m, err := h.service.Create(c.Request.Context(), auth.IdentityFrom(c), CreateInput{
		Title:        form.Title,
		DeceasedName: form.DeceasedName,
		GuestSession: form.GuestSession,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Memorial created successfully",
		"memorial": m.ToResponse(false),
	})
}

func (h *Handler) Show(c *gin.Context) {
	m, err := h.service.Get(c.Request.Context(), c.Param("id"), auth.IdentityFrom(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"memorial": m.ToResponse(true)})
}

func (h *Handler) Update(c *gin.Context) {
	var form FormUpdate
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.FromBinding(err))
		return
	}

	m, err := h.service.Update(c.Request.Context(), c.Param("id"), auth.IdentityFrom(c), UpdateInput{
		Title:        form.Title,
		DeceasedName: form.DeceasedName,
		Status:       form.Status,
		CurrentStep:  form.CurrentStep,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Memorial updated successfully",
		"memorial": m.ToResponse(false),
	})
}

// List returns the authenticated caller's memorials, most-recently-updated
// first.
func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id")

	page, pageSize := utils.GetPaginationParams(c)
	result, err := h.service.List(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), auth.IdentityFrom(c)); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Memorial deleted successfully"})
}

// CompleteStep marks a step done and advances current_step, or sets the
// memorial completed once nothing is left.
func (h *Handler) CompleteStep(c *gin.Context) {
	step := c.Param("name")

	m, err := h.service.CompleteStep(c.Request.Context(), c.Param("id"), auth.IdentityFrom(c), step)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Step %s marked as completed", step),
		"memorial": m.ToResponse(false),
	})
}
