package user

import (
	"memoras-backend/auth"
	"memoras-backend/internal/domain"
	"memoras-backend/internal/errors"
	"memoras-backend/redis"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for auth and users
type Handler struct {
	service Service
}

// NewHandler creates a new user handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// FormRegister represents registration form data
type FormRegister struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=6"`
	FirstName *string `json:"first_name" binding:"omitempty,max=50"`
	LastName  *string `json:"last_name" binding:"omitempty,max=50"`
	Phone     *string `json:"phone" binding:"omitempty,max=20"`
}

// FormLogin represents login form data
type FormLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles user registration
func (h *Handler) Register(c *gin.Context) {
	var form FormRegister
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.FromBinding(err))
		return
	}

	u := &domain.User{
		Email:     form.Email,
		Password:  form.Password,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Phone:     form.Phone,
	}

	if err := h.service.Register(c.Request.Context(), u); err != nil {
		c.Error(err)
		return
	}

	accessToken, err := auth.GenerateJWT(u.ID)
	if err != nil {
		c.Error(errors.Internal(err))
		return
	}
	redis.StoreSession(c.Request.Context(), accessToken)

	c.JSON(http.StatusCreated, gin.H{
		"message":      "User registered successfully",
		"access_token": accessToken,
		"user":         u.ToSafeUser(),
	})
}

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var form FormLogin
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.FromBinding(err))
		return
	}

	u, err := h.service.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		c.Error(err)
		return
	}

	accessToken, err := auth.GenerateJWT(u.ID)
	if err != nil {
		c.Error(errors.Internal(err))
		return
	}
	redis.StoreSession(c.Request.Context(), accessToken)

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"access_token": accessToken,
		"user":         u.ToSafeUser(),
	})
}

// GuestSession mints an opaque token for anonymous callers. Nothing is
// persisted; the token only ever matters once stored on a memorial.
func (h *Handler) GuestSession(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{
		"guest_session": uuid.NewString(),
		"message":       "Guest session created successfully",
	})
}

// Me returns the authenticated user's profile
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString("user_id")

	u, err := h.service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u.ToSafeUser()})
}

// Logout revokes the caller's session token
func (h *Handler) Logout(c *gin.Context) {
	if token := c.GetString("jwt_token"); token != "" {
		redis.RevokeSession(c.Request.Context(), token)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
