package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nodelens/nodelens/pkg/auth"
	"github.com/nodelens/nodelens/pkg/server/dto"
)

// AuthHandler handles login requests
type AuthHandler struct {
	authenticator *auth.Authenticator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authenticator *auth.Authenticator) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	token, err := h.authenticator.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "invalid_credentials",
			Message: "username or password is incorrect",
			Code:    http.StatusUnauthorized,
		})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}
