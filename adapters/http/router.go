package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/khoahotran/portfolio-api/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio-api/internal/domain/access"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type Handlers struct {
	Auth          *AuthHandler
	PersonalInfo  *PersonalInfoHandler
	Skill         *SkillHandler
	Experience    *ExperienceHandler
	Project       *ProjectHandler
	Certification *CertificationHandler
	Contact       *ContactHandler
	Settings      *SettingsHandler
	Portfolio     *PortfolioHandler
}

type RouterDeps struct {
	Handlers           Handlers
	AuthUseCase        *authUC.AuthUseCase
	// InvalidateSnapshot runs after every successful write.
	InvalidateSnapshot func(ctx context.Context)
	Logger             logger.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	h := deps.Handlers

	router := gin.New()
	router.Use(
		RequestLogger(deps.Logger),
		gin.Recovery(),
		SecurityHeaders(),
		ErrorMiddleware(deps.Logger),
		Authenticate(deps.AuthUseCase),
	)
	if deps.InvalidateSnapshot != nil {
		router.Use(InvalidateSnapshotOnWrite(deps.InvalidateSnapshot))
	}
	router.NoRoute(func(c *gin.Context) {
		c.Error(apperror.NewNotFound("Route", c.Request.URL.Path))
	})

	api := router.Group("/api")
	{
		api.GET("/health", Health)

		snapshot := api.Group("", AuthorizeOp(access.OpRead, access.ResourcePortfolio))
		{
			snapshot.GET("/portfolio-data", h.Portfolio.Snapshot)
			snapshot.GET("/data", h.Portfolio.Snapshot)
		}

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/logout", Authorize(access.ResourceSession), h.Auth.Logout)
			authGroup.GET("/user", Authorize(access.ResourceSession), h.Auth.CurrentUser)
		}

		personalInfo := api.Group("/personal-info", Authorize(access.ResourcePersonalInfo))
		{
			personalInfo.GET("", h.PersonalInfo.Get)
			personalInfo.PUT("", h.PersonalInfo.Update)
			personalInfo.PATCH("", h.PersonalInfo.Update)
		}

		api.GET("/skills-by-category", Authorize(access.ResourceSkill), h.Skill.ByCategory)
		skills := api.Group("/skills", Authorize(access.ResourceSkill))
		crud(skills, h.Skill.List, h.Skill.Get, h.Skill.Create, h.Skill.Update, h.Skill.Delete)

		experience := api.Group("/experience", Authorize(access.ResourceExperience))
		crud(experience, h.Experience.List, h.Experience.Get, h.Experience.Create, h.Experience.Update, h.Experience.Delete)

		projects := api.Group("/projects", Authorize(access.ResourceProject))
		{
			projects.GET("/feed", h.Project.Feed)
			crud(projects, h.Project.List, h.Project.Get, h.Project.Create, h.Project.Update, h.Project.Delete)
			projects.POST("/:id/image", AuthorizeOp(access.OpUpdate, access.ResourceProject), h.Project.UploadImage)
		}

		certifications := api.Group("/certifications", Authorize(access.ResourceCertification))
		crud(certifications, h.Certification.List, h.Certification.Get, h.Certification.Create, h.Certification.Update, h.Certification.Delete)

		contact := api.Group("/contact-messages", Authorize(access.ResourceContactMessage))
		crud(contact, h.Contact.List, h.Contact.Get, h.Contact.Create, h.Contact.Update, h.Contact.Delete)

		settings := api.Group("/settings", Authorize(access.ResourceSettings))
		{
			settings.GET("", h.Settings.Get)
			settings.POST("", h.Settings.Create)
			settings.PUT("", h.Settings.Update)
			settings.PATCH("", h.Settings.Update)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/login", h.Auth.Login)
			admin.POST("/logout", Authorize(access.ResourceSession), h.Auth.Logout)

			transfer := admin.Group("", Authorize(access.ResourceTransfer))
			transfer.POST("/import", h.Portfolio.Import)
			transfer.GET("/export", h.Portfolio.Export)
			transfer.POST("/backup", h.Portfolio.Backup)
		}
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Portfolio API", "health": "/api/health"})
	})

	return router
}

// crud registers the collection and item routes shared by every record resource.
// PUT and PATCH are both partial updates.
func crud(g *gin.RouterGroup, list, get, create, update, remove gin.HandlerFunc) {
	g.GET("", list)
	g.POST("", create)
	g.GET("/:id", get)
	g.PUT("/:id", update)
	g.PATCH("/:id", update)
	g.DELETE("/:id", remove)
}
