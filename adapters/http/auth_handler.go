package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/khoahotran/portfolio-api/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

type AuthHandler struct {
	authUseCase *authUC.AuthUseCase
	validator   *validation.Validator
}

func NewAuthHandler(uc *authUC.AuthUseCase, v *validation.Validator) *AuthHandler {
	return &AuthHandler{authUseCase: uc, validator: v}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	output, err := h.authUseCase.Login(c.Request.Context(), authUC.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message:   "Login successful",
		Token:     output.AccessToken,
		ExpiresAt: output.ExpiresAt,
		IsAdmin:   output.User.IsAdmin,
		User:      ToUserDTO(output.User),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		c.Error(apperror.NewAuthRequired("no credential presented"))
		return
	}
	if err := h.authUseCase.Logout(c.Request.Context(), claims); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Logout successful"})
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	p, _ := PrincipalFrom(c)
	u, err := h.authUseCase.CurrentUser(c.Request.Context(), p)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToUserDTO(u))
}
