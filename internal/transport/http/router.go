package httptransport

import (
	"log/slog"
	"time"

	"github.com/ErlanBelekov/uptask/internal/access"
	"github.com/ErlanBelekov/uptask/internal/transport/http/handler"
	"github.com/ErlanBelekov/uptask/internal/transport/http/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Project *handler.ProjectHandler
	Task    *handler.TaskHandler
	Team    *handler.TeamHandler
	Note    *handler.NoteHandler
}

type Deps struct {
	Verifier    middleware.TokenVerifier
	Identities  middleware.IdentityFinder
	Resolvers   access.Resolvers
	FrontendURL string
}

func NewRouter(logger *slog.Logger, h Handlers, deps Deps) *gin.Engine {
	handler.UseJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{deps.FrontendURL},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Authenticate(deps.Verifier, deps.Identities, logger)
	reject := func(c *gin.Context, err error) { handler.AbortWithError(c, logger, err) }
	guard := func(p access.Pipeline) gin.HandlerFunc { return middleware.Resolve(p, reject) }

	api := r.Group("/api")

	// Public auth routes
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/confirm-account", h.Auth.ConfirmAccount)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/request-code", h.Auth.RequestCode)
	auth.POST("/forgot-password", h.Auth.ForgotPassword)
	auth.POST("/validate-token", h.Auth.ValidateToken)
	auth.POST("/update-password/:token", h.Auth.UpdatePasswordWithToken)

	// Own account
	profile := auth.Group("/profile", authMW)
	profile.GET("", h.Profile.Get)
	profile.PUT("", h.Profile.Update)
	profile.POST("/password", h.Profile.UpdatePassword)
	profile.POST("/check-password", h.Profile.CheckPassword)

	projects := api.Group("/projects", authMW)
	projects.POST("", h.Project.Create)
	projects.GET("", h.Project.List)

	project := deps.Resolvers.Project("projectId")
	projects.GET("/:projectId", guard(project.Member()), h.Project.Get)
	projects.PUT("/:projectId", guard(project.Manager()), h.Project.Update)
	projects.DELETE("/:projectId", guard(project.Manager()), h.Project.Delete)

	// Tasks
	projects.POST("/:projectId/tasks", guard(project.Manager()), h.Task.Create)
	projects.GET("/:projectId/tasks", guard(project.Member()), h.Task.List)

	task := project.Task("taskId")
	projects.GET("/:projectId/tasks/:taskId", guard(task.Member()), h.Task.Get)
	projects.PUT("/:projectId/tasks/:taskId", guard(task.Manager()), h.Task.Update)
	projects.DELETE("/:projectId/tasks/:taskId", guard(task.Manager()), h.Task.Delete)
	projects.POST("/:projectId/tasks/:taskId/status", guard(task.Member()), h.Task.UpdateStatus)

	// Team
	projects.POST("/:projectId/team/find", guard(project.Manager()), h.Team.Find)
	projects.POST("/:projectId/team", guard(project.Manager()), h.Team.Add)
	projects.GET("/:projectId/team", guard(project.Member()), h.Team.List)
	projects.DELETE("/:projectId/team/:userId", guard(project.Manager()), h.Team.Remove)

	// Notes
	projects.POST("/:projectId/tasks/:taskId/notes", guard(task.Member()), h.Note.Create)
	projects.GET("/:projectId/tasks/:taskId/notes", guard(task.Member()), h.Note.List)
	projects.DELETE("/:projectId/tasks/:taskId/notes/:noteId", guard(task.Note("noteId").NoteAuthor()), h.Note.Delete)

	return r
}
