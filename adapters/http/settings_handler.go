package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	settingsUC "github.com/khoahotran/portfolio-api/internal/application/usecase/settings"
	"github.com/khoahotran/portfolio-api/internal/domain/settings"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

type SettingsHandler struct {
	useCase   *settingsUC.SettingsUseCase
	validator *validation.Validator
}

func NewSettingsHandler(uc *settingsUC.SettingsUseCase, v *validation.Validator) *SettingsHandler {
	return &SettingsHandler{useCase: uc, validator: v}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.useCase.Get(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Create(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}
	s, err := h.useCase.Create(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}
	s, err := h.useCase.Update(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) bind(c *gin.Context) (settingsUC.Input, bool) {
	var req SettingsRequest
	if !bindJSON(c, h.validator, &req) {
		return settingsUC.Input{}, false
	}
	in := settingsUC.Input{MaintenanceMode: req.MaintenanceMode}
	if req.Theme != nil {
		theme := settings.Theme(*req.Theme)
		in.Theme = &theme
	}
	return in, true
}
