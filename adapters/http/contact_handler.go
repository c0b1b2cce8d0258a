package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	contactUC "github.com/khoahotran/portfolio-api/internal/application/usecase/contact"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

type ContactHandler struct {
	useCase   *contactUC.ContactUseCase
	validator *validation.Validator
}

func NewContactHandler(uc *contactUC.ContactUseCase, v *validation.Validator) *ContactHandler {
	return &ContactHandler{useCase: uc, validator: v}
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req CreateContactMessageRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	m, decision, err := h.useCase.CreateMessage(c.Request.Context(), contactUC.CreateMessageInput{
		Name:     req.Name,
		Email:    req.Email,
		Subject:  req.Subject,
		Message:  req.Message,
		SourceIP: c.ClientIP(),
	})
	if decision.Limit > 0 {
		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	}
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *ContactHandler) List(c *gin.Context) {
	isRead, ok := boolQuery(c, "is_read")
	if !ok {
		return
	}
	list, err := h.useCase.ListMessages(c.Request.Context(), isRead)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "ContactMessage")
	if !ok {
		return
	}
	m, err := h.useCase.GetMessage(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Update only toggles is_read; other fields in the body are ignored.
func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "ContactMessage")
	if !ok {
		return
	}
	var req UpdateContactMessageRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	m, err := h.useCase.MarkRead(c.Request.Context(), id, *req.IsRead)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "ContactMessage")
	if !ok {
		return
	}
	if err := h.useCase.DeleteMessage(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
