package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	experienceUC "github.com/khoahotran/portfolio-api/internal/application/usecase/experience"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

type ExperienceHandler struct {
	useCase   *experienceUC.ExperienceUseCase
	validator *validation.Validator
}

func NewExperienceHandler(uc *experienceUC.ExperienceUseCase, v *validation.Validator) *ExperienceHandler {
	return &ExperienceHandler{useCase: uc, validator: v}
}

func (h *ExperienceHandler) List(c *gin.Context) {
	list, err := h.useCase.ListExperience(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ExperienceHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "Experience")
	if !ok {
		return
	}
	e, err := h.useCase.GetExperience(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *ExperienceHandler) Create(c *gin.Context) {
	var req CreateExperienceRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	e, err := h.useCase.CreateExperience(c.Request.Context(), experienceUC.CreateExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Duration:    req.Duration,
		Description: req.Description,
		Order:       req.Order,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *ExperienceHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "Experience")
	if !ok {
		return
	}
	var req UpdateExperienceRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	e, err := h.useCase.UpdateExperience(c.Request.Context(), experienceUC.UpdateExperienceInput{
		ID:          id,
		Title:       req.Title,
		Company:     req.Company,
		Duration:    req.Duration,
		Description: req.Description,
		Order:       req.Order,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *ExperienceHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "Experience")
	if !ok {
		return
	}
	if err := h.useCase.DeleteExperience(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
