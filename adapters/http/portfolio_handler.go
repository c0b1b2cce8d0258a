package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/khoahotran/portfolio-api/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

const maxImportSize = 2 << 20

type PortfolioHandler struct {
	useCase *portfolioUC.PortfolioUseCase
}

func NewPortfolioHandler(uc *portfolioUC.PortfolioUseCase) *PortfolioHandler {
	return &PortfolioHandler{useCase: uc}
}

func (h *PortfolioHandler) Snapshot(c *gin.Context) {
	doc, err := h.useCase.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *PortfolioHandler) Export(c *gin.Context) {
	doc, err := h.useCase.Export(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ExportResponse{Filename: portfolio.ExportFilename, Data: doc})
}

func (h *PortfolioHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize+1))
	if err != nil {
		c.Error(apperror.NewInvalidInput("could not read request body", err))
		return
	}
	if len(raw) > maxImportSize {
		c.Error(apperror.NewInvalidInput("import document is too large", nil))
		return
	}

	p, ok := PrincipalFrom(c)
	if !ok {
		c.Error(apperror.NewAuthRequired("no credential presented"))
		return
	}
	if _, err := h.useCase.Import(c.Request.Context(), raw, p.UserID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Portfolio data imported successfully"})
}

func (h *PortfolioHandler) Backup(c *gin.Context) {
	out, err := h.useCase.Backup(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Portfolio API is running"})
}
