package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	personalinfoUC "github.com/khoahotran/portfolio-api/internal/application/usecase/personalinfo"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

type PersonalInfoHandler struct {
	useCase   *personalinfoUC.PersonalInfoUseCase
	validator *validation.Validator
}

func NewPersonalInfoHandler(uc *personalinfoUC.PersonalInfoUseCase, v *validation.Validator) *PersonalInfoHandler {
	return &PersonalInfoHandler{useCase: uc, validator: v}
}

func (h *PersonalInfoHandler) Get(c *gin.Context) {
	info, err := h.useCase.Get(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Update serves both PUT and PATCH; omitted fields keep their value.
func (h *PersonalInfoHandler) Update(c *gin.Context) {
	var req PersonalInfoRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	info, err := h.useCase.Update(c.Request.Context(), personalinfoUC.UpdateInput{
		Name:     req.Name,
		Title:    req.Title,
		Email:    req.Email,
		Phone:    req.Phone,
		Github:   req.Github,
		Linkedin: req.Linkedin,
		Bio:      req.Bio,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, info)
}
