package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/taskforge/api/internal/auth"
	"github.com/taskforge/api/internal/authz"
	"github.com/taskforge/api/internal/config"
	"github.com/taskforge/api/internal/database"
	"github.com/taskforge/api/internal/handlers"
	"github.com/taskforge/api/internal/logging"
	"github.com/taskforge/api/internal/middleware"
	"github.com/taskforge/api/internal/repository"
	"github.com/taskforge/api/internal/services"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.GinMode)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	router := NewRouter(cfg, logger, database.GetDB())

	addr := cfg.Host + ":" + cfg.Port
	logger.Info("server starting", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// NewRouter wires repositories, services, handlers, and routes onto a gin
// engine. Split out from main so tests can stand up the full HTTP surface.
func NewRouter(cfg *config.Config, logger *zap.Logger, db *gorm.DB) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiration)
	engine := authz.NewEngine(orgRepo, projectRepo, taskRepo, orgRepo)

	authService := services.NewAuthService(userRepo, tokens)
	orgService := services.NewOrganizationService(orgRepo)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo)

	authHandler := handlers.NewAuthHandler(authService, logger)
	orgHandler := handlers.NewOrganizationHandler(orgService, logger)
	projectHandler := handlers.NewProjectHandler(projectService, logger)
	taskHandler := handlers.NewTaskHandler(taskService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(cfg.CORSOrigin))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "TaskForge API",
			"version": "1.0.0",
			"status":  "running",
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", middleware.RequireAuth(tokens), authHandler.Me)
		}

		orgs := api.Group("/organizations", middleware.RequireAuth(tokens))
		{
			orgs.POST("", orgHandler.Create)
			orgs.GET("", orgHandler.List)

			scoped := orgs.Group("/:id", middleware.RequireOrganizationAccess(engine))
			{
				scoped.GET("", orgHandler.Get)
				scoped.GET("/members", orgHandler.ListMembers)
				scoped.GET("/projects", projectHandler.ListByOrganization)
			}

			// Project creation reports non-membership as 403 rather than
			// masking it; reads keep the 404 mask above.
			orgs.POST("/:id/projects", middleware.RequireOrganizationMember(engine), projectHandler.Create)
		}

		projects := api.Group("/projects", middleware.RequireAuth(tokens))
		{
			scoped := projects.Group("/:id", middleware.RequireProjectAccess(engine))
			{
				scoped.GET("", projectHandler.Get)
				scoped.PATCH("", projectHandler.Update)
				scoped.DELETE("", projectHandler.Delete)
				scoped.POST("/tasks", taskHandler.Create)
				scoped.GET("/tasks", taskHandler.ListByProject)
			}
		}

		tasks := api.Group("/tasks", middleware.RequireAuth(tokens))
		{
			scoped := tasks.Group("/:id", middleware.RequireTaskAccess(engine))
			{
				scoped.GET("", taskHandler.Get)
				scoped.PATCH("", taskHandler.Update)
				scoped.DELETE("", taskHandler.Delete)
				scoped.POST("/comments", taskHandler.CreateComment)
				scoped.GET("/comments", taskHandler.ListComments)
			}
		}
	}

	return router
}
