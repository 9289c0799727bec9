package routes

import (
	"asset-management-backend/internal/api/handlers"
	"asset-management-backend/internal/api/middleware"
	"asset-management-backend/internal/config"
	"asset-management-backend/internal/notify"
	"asset-management-backend/internal/repository"
	"asset-management-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application. Every mutation is
// announced to websocket clients through hub.
func SetupRoutes(db *gorm.DB, cfg *config.Config, hub *notify.Hub) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Actor())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	assetRepo := repository.NewAssetRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	importRunRepo := repository.NewImportRunRepository(db)

	// Initialize services
	movementService := service.NewMovementService(assetRepo, movementRepo, employeeRepo, teamRepo, roleRepo, cfg, validator, hub)
	importService := service.NewImportService(assetRepo, importRunRepo, cfg, hub)
	assetService := service.NewAssetService(assetRepo, movementRepo, cfg, validator, hub)
	employeeService := service.NewEmployeeService(employeeRepo, teamRepo, roleRepo, validator, hub)
	teamService := service.NewTeamService(teamRepo, employeeRepo, roleRepo, assetRepo, validator, hub)
	roleService := service.NewRoleService(roleRepo, teamRepo, validator, hub)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	movementHandler := handlers.NewMovementHandler(movementService)
	importHandler := handlers.NewImportHandler(importService, cfg.ImportMaxUploadMB)
	assetHandler := handlers.NewAssetHandler(assetService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	teamHandler := handlers.NewTeamHandler(teamService)
	roleHandler := handlers.NewRoleHandler(roleService)
	realtimeHandler := handlers.NewRealtimeHandler(hub)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		movements := v1.Group("/movements")
		{
			movements.POST("", movementHandler.ExecuteMovement)
			movements.GET("", movementHandler.ListMovements)
		}

		imports := v1.Group("/imports")
		{
			imports.POST("", importHandler.AnalyzeImport)
			imports.GET("", importHandler.ListImports)
			imports.GET("/:id", importHandler.GetImport)
			imports.POST("/:id/commit", importHandler.CommitImport)
		}

		assets := v1.Group("/assets")
		{
			assets.GET("", assetHandler.ListAssets)
			assets.POST("", assetHandler.CreateAsset)
			assets.GET("/summary", assetHandler.GetAssetSummary)
			assets.GET("/:id", assetHandler.GetAsset)
			assets.PUT("/:id", assetHandler.UpdateAsset)
			assets.DELETE("/:id", assetHandler.DeleteAsset)
			assets.GET("/:id/movements", assetHandler.GetAssetHistory)
		}

		employees := v1.Group("/employees")
		{
			employees.GET("", employeeHandler.ListEmployees)
			employees.POST("", employeeHandler.CreateEmployee)
			employees.GET("/:id", employeeHandler.GetEmployee)
			employees.PUT("/:id", employeeHandler.UpdateEmployee)
			employees.DELETE("/:id", employeeHandler.DeleteEmployee)
		}

		teams := v1.Group("/teams")
		{
			teams.GET("", teamHandler.ListTeams)
			teams.POST("", teamHandler.CreateTeam)
			teams.GET("/:id", teamHandler.GetTeam)
			teams.PUT("/:id", teamHandler.UpdateTeam)
			teams.DELETE("/:id", teamHandler.DeleteTeam)
			teams.GET("/:id/details", teamHandler.GetTeamDetails)
			teams.POST("/:id/members", teamHandler.AddMember)
			teams.DELETE("/:id/members/:employeeId", teamHandler.RemoveMember)
		}

		roles := v1.Group("/roles")
		{
			roles.GET("", roleHandler.ListRoles)
			roles.POST("", roleHandler.CreateRole)
			roles.GET("/:id", roleHandler.GetRole)
			roles.PUT("/:id", roleHandler.UpdateRole)
			roles.DELETE("/:id", roleHandler.DeleteRole)
		}
	}

	// Realtime refresh notifications
	router.GET("/ws", realtimeHandler.Connect)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":      "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("request_id"),
		})
	})

	return router
}

// SetupHealthRoutes sets up only health check routes (useful for testing)
func SetupHealthRoutes(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	return router
}
