package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lcavallin/gradelens/config"
	"github.com/lcavallin/gradelens/database"
	_ "github.com/lcavallin/gradelens/docs" // Swagger docs - auto-generated
	studentctrl "github.com/lcavallin/gradelens/internal/controller/student"
	teacherctrl "github.com/lcavallin/gradelens/internal/controller/teacher"
	"github.com/lcavallin/gradelens/internal/logger"
	"github.com/lcavallin/gradelens/internal/model"
	"github.com/lcavallin/gradelens/internal/repository"
	"github.com/lcavallin/gradelens/internal/service"
	"github.com/lcavallin/gradelens/internal/worker"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Gradelens API
// @version 1.0
// @description Assisted grading for free-text answers: predictions from embedding similarity against teacher-graded reference answers, confirmed by teachers through a review queue.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewAnswerRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewGeminiEmbeddingService,
			service.NewConsensusService,
			service.NewRetrievalService,
			service.NewSubmissionService,
			service.NewQuestionService,
			service.NewReviewService,
			service.NewEvaluationService,
			service.NewSyncService,
		),

		// Background grading workers
		fx.Provide(func(submissions service.SubmissionService, cfg *config.Config) *worker.Pool {
			return worker.NewPool(submissions, cfg.Grading.Workers)
		}),

		// API Controllers Layer
		fx.Provide(
			teacherctrl.NewTeacherController,
			studentctrl.NewStudentController,
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
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Request logging through the global zerolog instance.
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
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	pool *worker.Pool,
	teacherCtrl *teacherctrl.TeacherController,
	studentCtrl *studentctrl.StudentController,
) {
	teacherGroup := router.Group("/api/v1/teacher")
	{
		teacherGroup.POST("/questions", teacherCtrl.CreateQuestion)
		teacherGroup.PATCH("/questions/:id/archived", teacherCtrl.SetArchived)
		teacherGroup.GET("/answers/pending", teacherCtrl.PendingAnswers)
		teacherGroup.GET("/answers/evaluated", teacherCtrl.EvaluatedAnswers)
		teacherGroup.PUT("/answers/:id/grade", teacherCtrl.GradeAnswer)
		teacherGroup.POST("/evaluations", teacherCtrl.Evaluate)
	}

	studentGroup := router.Group("/api/v1/student")
	{
		studentGroup.POST("/answers", studentCtrl.SubmitAnswer)
		studentGroup.GET("/answers", studentCtrl.MyAnswers)
		studentGroup.GET("/answers/:id/neighbors", studentCtrl.AnswerNeighbors)
		studentGroup.GET("/questions/unanswered", studentCtrl.UnansweredQuestions)
		studentGroup.GET("/questions/answered", studentCtrl.AnsweredQuestions)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Gradelens API server starting on port %s", cfg.Server.Port)
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
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			pool.Shutdown()
			return nil
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := db.AutoMigrate(&model.Question{}, &model.Answer{}); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
