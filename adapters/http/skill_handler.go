package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	skillUC "github.com/khoahotran/portfolio-api/internal/application/usecase/skill"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

type SkillHandler struct {
	useCase   *skillUC.SkillUseCase
	validator *validation.Validator
}

func NewSkillHandler(uc *skillUC.SkillUseCase, v *validation.Validator) *SkillHandler {
	return &SkillHandler{useCase: uc, validator: v}
}

func (h *SkillHandler) List(c *gin.Context) {
	skills, err := h.useCase.ListSkills(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

func (h *SkillHandler) ByCategory(c *gin.Context) {
	grouped, err := h.useCase.SkillsByCategory(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, grouped)
}

func (h *SkillHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "Skill")
	if !ok {
		return
	}
	s, err := h.useCase.GetSkill(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SkillHandler) Create(c *gin.Context) {
	var req CreateSkillRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	s, err := h.useCase.CreateSkill(c.Request.Context(), skillUC.CreateSkillInput{
		Name:        req.Name,
		Category:    skill.Category(req.Category),
		Proficiency: req.Proficiency,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *SkillHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "Skill")
	if !ok {
		return
	}
	var req UpdateSkillRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	in := skillUC.UpdateSkillInput{ID: id, Name: req.Name, Proficiency: req.Proficiency}
	if req.Category != nil {
		category := skill.Category(*req.Category)
		in.Category = &category
	}
	s, err := h.useCase.UpdateSkill(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SkillHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "Skill")
	if !ok {
		return
	}
	if err := h.useCase.DeleteSkill(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
