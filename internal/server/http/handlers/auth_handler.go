package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/kitkatcodeskitty/lms-migrate/internal/domain/errors"
	"github.com/kitkatcodeskitty/lms-migrate/internal/server/http/dto"
	"github.com/kitkatcodeskitty/lms-migrate/internal/server/http/middleware"
)

// AuthHandler processes operator login.
type AuthHandler struct {
	facade OperatorFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade OperatorFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Login handles POST /api/operator/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.facade.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusUnauthorized)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}
