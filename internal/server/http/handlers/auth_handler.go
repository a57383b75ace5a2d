package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsersan/ecommerce-backend-pdf/internal/server/http/dto"
	"github.com/jsersan/ecommerce-backend-pdf/internal/server/http/middleware"
)

// AuthHandler processes registration, login and profile lookups.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/users/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "malformed request body")
		return
	}

	user, token, err := h.facade.Register(c.Request.Context(), req.Registration())
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusCreated, dto.AuthResponse{User: dto.NewUserResponse(user), Token: token})
}

// Login handles POST /api/users/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "malformed request body")
		return
	}

	user, token, err := h.facade.Authenticate(c.Request.Context(), req.Identifier(), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{User: dto.NewUserResponse(user), Token: token})
}

// Profile handles GET /api/users/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.facade.Profile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
