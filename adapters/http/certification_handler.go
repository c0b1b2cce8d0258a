package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	certificationUC "github.com/khoahotran/portfolio-api/internal/application/usecase/certification"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

type CertificationHandler struct {
	useCase   *certificationUC.CertificationUseCase
	validator *validation.Validator
}

func NewCertificationHandler(uc *certificationUC.CertificationUseCase, v *validation.Validator) *CertificationHandler {
	return &CertificationHandler{useCase: uc, validator: v}
}

func (h *CertificationHandler) List(c *gin.Context) {
	list, err := h.useCase.ListCertifications(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CertificationHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "Certification")
	if !ok {
		return
	}
	cert, err := h.useCase.GetCertification(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cert)
}

func (h *CertificationHandler) Create(c *gin.Context) {
	var req CreateCertificationRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	in := certificationUC.CreateCertificationInput{
		Title:         req.Title,
		Issuer:        req.Issuer,
		CredentialID:  req.CredentialID,
		CredentialURL: req.CredentialURL,
		Order:         req.Order,
	}
	if req.IssueDate != "" {
		date, err := parseDate("issue_date", req.IssueDate)
		if err != nil {
			c.Error(err)
			return
		}
		in.IssueDate = date
	}
	cert, err := h.useCase.CreateCertification(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, cert)
}

func (h *CertificationHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "Certification")
	if !ok {
		return
	}
	var req UpdateCertificationRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	in := certificationUC.UpdateCertificationInput{
		ID:            id,
		Title:         req.Title,
		Issuer:        req.Issuer,
		CredentialID:  req.CredentialID,
		CredentialURL: req.CredentialURL,
		Order:         req.Order,
	}
	if req.IssueDate != nil {
		if *req.IssueDate == "" {
			in.ClearDate = true
		} else {
			date, err := parseDate("issue_date", *req.IssueDate)
			if err != nil {
				c.Error(err)
				return
			}
			in.IssueDate = date
		}
	}
	cert, err := h.useCase.UpdateCertification(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cert)
}

func (h *CertificationHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "Certification")
	if !ok {
		return
	}
	if err := h.useCase.DeleteCertification(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
