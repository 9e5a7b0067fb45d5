// Admin authentication handler.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lia-imoveis/backoffice/internal/services"
)

// LoginRequest is the JSON payload of the admin login form.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"admin@lia.com"`
	Password string `json:"password" binding:"required"`
}

// LoginUser is the user block echoed on successful login.
type LoginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginResponse carries the session token and the authenticated user.
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// Login godoc
// @ID          adminLogin
// @Summary     Admin login
// @Description Verifies credentials and returns a signed session token for the admin API.
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
//
// @Success     200  {object}  handlers.LoginResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid credentials"
// @Failure     403  {object}  handlers.ErrorResponse  "Not an admin"
// @Router      /api/admin/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email and password required")
		return
	}

	token, u, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		ok(c, http.StatusOK, LoginResponse{
			Token: token,
			User:  LoginUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)},
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "credenciais inválidas")
	case errors.Is(err, services.ErrNotAdmin):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "acesso restrito a administradores")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "login failed")
	}
}
