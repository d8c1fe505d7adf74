package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/aptivo/backend/config"
	adminctrl "github.com/aptivo/backend/internal/controller/admin"
	authctrl "github.com/aptivo/backend/internal/controller/auth"
	studentctrl "github.com/aptivo/backend/internal/controller/student"
	"github.com/aptivo/backend/internal/database"
	"github.com/aptivo/backend/internal/logger"
	"github.com/aptivo/backend/internal/middleware"
	"github.com/aptivo/backend/internal/model"
	"github.com/aptivo/backend/internal/repository"
	"github.com/aptivo/backend/internal/service"
)

// @title Aptivo API
// @version 1.0
// @description Role-based learning platform: curriculum, MCQ practice sessions, streaks and analytics.
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewUserRepository,
			repository.NewInstitutionRepository,
			repository.NewCurriculumRepository,
			repository.NewQuestionRepository,
			repository.NewMaterialRepository,
			repository.NewAttemptRepository,
			repository.NewMistakeLogRepository,
			repository.NewStreakRepository,
			repository.NewBroadcastRepository,
		),

		// Services
		fx.Provide(
			service.NewAuthService,
			service.NewAttemptService,
			service.NewAnalyticsService,
			service.NewStreakService,
			service.NewPracticeService,
			service.NewCurriculumService,
			service.NewBroadcastService,
			service.NewInstitutionService,
		),

		// Controllers
		fx.Provide(
			authctrl.NewAuthController,
			studentctrl.NewPracticeController,
			studentctrl.NewDashboardController,
			adminctrl.NewAdminController,
			adminctrl.NewSuperAdminController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authService service.AuthService,
	authController *authctrl.AuthController,
	practiceController *studentctrl.PracticeController,
	dashboardController *studentctrl.DashboardController,
	adminController *adminctrl.AdminController,
	superAdminController *adminctrl.SuperAdminController,
) {
	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/logout", authController.Logout)
		authGroup.POST("/register", authController.Register)
		authGroup.GET("/session", middleware.RequireAuth(authService), authController.GetSession)
	}

	studentGroup := api.Group("/student",
		middleware.RequireAuth(authService),
		middleware.RequireRole(model.RoleStudent),
	)
	{
		studentGroup.GET("/analytics", dashboardController.GetAnalytics)
		studentGroup.GET("/streak", dashboardController.GetStreak)
		studentGroup.GET("/mistakes", dashboardController.GetMistakes)
		studentGroup.GET("/curriculum", dashboardController.GetCurriculum)
		studentGroup.GET("/topics/:topic_id/materials", dashboardController.GetTopicMaterials)
		studentGroup.GET("/materials/:material_id", dashboardController.GetMaterial)
		studentGroup.GET("/broadcasts", dashboardController.GetBroadcasts)

		studentGroup.POST("/practice/sessions", practiceController.StartSession)
		studentGroup.GET("/practice/sessions/:session_id", practiceController.GetSession)
		studentGroup.DELETE("/practice/sessions/:session_id", practiceController.Abandon)
		studentGroup.POST("/practice/sessions/:session_id/select", practiceController.Select)
		studentGroup.POST("/practice/sessions/:session_id/submit", practiceController.Submit)
		studentGroup.POST("/practice/sessions/:session_id/advance", practiceController.Advance)
		studentGroup.POST("/practice/sessions/:session_id/restart", practiceController.Restart)
		studentGroup.GET("/practice/sessions/:session_id/summary", practiceController.Summary)

		studentGroup.POST("/mode/switch", practiceController.SwitchMode)
	}

	adminGroup := api.Group("/admin",
		middleware.RequireAuth(authService),
		middleware.RequireRole(model.RoleInstitutionAdmin, model.RoleSuperAdmin),
	)
	{
		adminGroup.POST("/subjects", adminController.CreateSubject)
		adminGroup.GET("/curriculum", adminController.GetCurriculum)
		adminGroup.POST("/questions", adminController.CreateQuestion)
		adminGroup.PUT("/questions/:question_id", adminController.UpdateQuestion)
		adminGroup.DELETE("/questions/:question_id", adminController.DeleteQuestion)
		adminGroup.GET("/topics/:topic_id/questions", adminController.GetTopicQuestions)
		adminGroup.POST("/materials", adminController.CreateMaterial)
		adminGroup.PUT("/materials/:material_id", adminController.UpdateMaterial)
		adminGroup.DELETE("/materials/:material_id", adminController.DeleteMaterial)
		adminGroup.GET("/analytics", adminController.GetAnalytics)
		adminGroup.POST("/broadcasts", adminController.CreateBroadcast)
	}

	superAdminGroup := api.Group("/superadmin",
		middleware.RequireAuth(authService),
		middleware.RequireRole(model.RoleSuperAdmin),
	)
	{
		superAdminGroup.POST("/institutions", superAdminController.RegisterInstitution)
		superAdminGroup.GET("/institutions", superAdminController.ListInstitutions)
		superAdminGroup.POST("/institutions/:institution_id/review", superAdminController.ReviewInstitution)
		superAdminGroup.GET("/analytics", superAdminController.GetGlobalAnalytics)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Aptivo API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Institution{},
		&model.User{},
		&model.Subject{},
		&model.Topic{},
		&model.Question{},
		&model.StudyMaterial{},
		&model.Attempt{},
		&model.MistakeLogEntry{},
		&model.StreakState{},
		&model.Broadcast{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully")
	return nil
}
