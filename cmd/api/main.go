package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/kiruthick103/studenthub-api/internal/config"
	"github.com/kiruthick103/studenthub-api/internal/database"
	"github.com/kiruthick103/studenthub-api/internal/handler"
	"github.com/kiruthick103/studenthub-api/internal/middleware"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/repository"
	"github.com/kiruthick103/studenthub-api/internal/router"
	"github.com/kiruthick103/studenthub-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.StudentProfile{},
		&models.Subject{},
		&models.Mark{},
		&models.Attendance{},
		&models.Assignment{},
		&models.Submission{},
		&models.Announcement{},
		&models.AnnouncementRead{},
		&models.StudyMaterial{},
		&models.StudyPlan{},
		&models.StudyTask{},
		&models.WeakSubject{},
		&models.Event{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	markRepo := repository.NewMarkRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	studyPlanRepo := repository.NewStudyPlanRepository(db)
	eventRepo := repository.NewEventRepository(db)

	eventService := service.NewEventService(eventRepo, redisClient, "studenthub", natsConn, validate, logger)
	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	studentService := service.NewStudentService(studentRepo, userRepo, subjectRepo, studyPlanRepo, eventService, validate, logger)
	subjectService := service.NewSubjectService(subjectRepo, validate, logger)
	markService := service.NewMarkService(markRepo, studentRepo, subjectRepo, eventService, validate, cfg.WeakThreshold, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, studentRepo, eventService, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, submissionRepo, subjectRepo, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, studentRepo, eventService, validate, logger)
	announcementService := service.NewAnnouncementService(announcementRepo, validate, logger)
	materialService := service.NewMaterialService(materialRepo, subjectRepo, validate, logger)
	studyPlanService := service.NewStudyPlanService(studyPlanRepo, subjectRepo, redisClient, cfg.PlanCacheTTL, cfg.WeeklyTargetHours, validate, logger)
	analyticsService := service.NewAnalyticsService(markRepo, attendanceRepo, studyPlanRepo, studentRepo, subjectRepo, assignmentRepo, userRepo, redisClient, cfg.AnalyticsCacheTTL, logger)
	seedService := service.NewSeedService(subjectRepo, announcementRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	serviceCtx, cancelServices := context.WithCancel(context.Background())
	defer cancelServices()
	eventService.Start(serviceCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, logger)
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         handler.NewAuthHandler(authService, logger),
		StudentHandler:      handler.NewStudentHandler(studentService, logger),
		SubjectHandler:      handler.NewSubjectHandler(subjectService, logger),
		MarkHandler:         handler.NewMarkHandler(markService, studentService, logger),
		AttendanceHandler:   handler.NewAttendanceHandler(attendanceService, studentService, logger),
		AssignmentHandler:   handler.NewAssignmentHandler(assignmentService, studentService, logger),
		SubmissionHandler:   handler.NewSubmissionHandler(submissionService, studentService, logger),
		AnnouncementHandler: handler.NewAnnouncementHandler(announcementService, logger),
		MaterialHandler:     handler.NewMaterialHandler(materialService, logger),
		StudyPlanHandler:    handler.NewStudyPlanHandler(studyPlanService, studentService, logger),
		AnalyticsHandler:    handler.NewAnalyticsHandler(analyticsService, studentService, logger),
		EventHandler:        handler.NewEventHandler(eventService, logger),
		SeedHandler:         handler.NewSeedHandler(seedService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
