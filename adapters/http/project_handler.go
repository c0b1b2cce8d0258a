package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	projectUC "github.com/khoahotran/portfolio-api/internal/application/usecase/project"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

const maxImageSize = 5 << 20

type ProjectHandler struct {
	useCase     *projectUC.ProjectUseCase
	feedUseCase *projectUC.FeedUseCase
	validator   *validation.Validator
	logger      logger.Logger
}

func NewProjectHandler(uc *projectUC.ProjectUseCase, feedUC *projectUC.FeedUseCase, v *validation.Validator, log logger.Logger) *ProjectHandler {
	return &ProjectHandler{useCase: uc, feedUseCase: feedUC, validator: v, logger: log}
}

func (h *ProjectHandler) List(c *gin.Context) {
	featured, ok := boolQuery(c, "featured")
	if !ok {
		return
	}
	projects, err := h.useCase.ListProjects(c.Request.Context(), featured)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "Project")
	if !ok {
		return
	}
	p, err := h.useCase.GetProject(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	p, err := h.useCase.CreateProject(c.Request.Context(), projectUC.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		TechStack:   req.TechStack,
		GithubURL:   req.GithubURL,
		LiveURL:     req.LiveURL,
		ImageURL:    req.Image,
		Order:       req.Order,
		IsFeatured:  req.IsFeatured,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "Project")
	if !ok {
		return
	}
	var req UpdateProjectRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	p, err := h.useCase.UpdateProject(c.Request.Context(), projectUC.UpdateProjectInput{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		TechStack:   req.TechStack,
		GithubURL:   req.GithubURL,
		LiveURL:     req.LiveURL,
		ImageURL:    req.Image,
		Order:       req.Order,
		IsFeatured:  req.IsFeatured,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "Project")
	if !ok {
		return
	}
	if err := h.useCase.DeleteProject(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) UploadImage(c *gin.Context) {
	id, ok := idParam(c, "Project")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.Error(apperror.NewFieldError("image", "An image file is required."))
		return
	}
	if fileHeader.Size > maxImageSize {
		c.Error(apperror.NewFieldError("image", "Image must be at most 5MB."))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("open uploaded image", err))
		return
	}
	defer file.Close()

	p, err := h.useCase.UploadImage(c.Request.Context(), id, file)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Feed(c *gin.Context) {
	feed, err := h.feedUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(apperror.NewInternal("failed to generate RSS feed", err))
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}
