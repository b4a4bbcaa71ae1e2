// @title           Learning Platform API
// @version         1.0
// @description     Enrollment, scheduling and identity API for the learning platform.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Phanuelx/Education-App/internal/api"
	"github.com/Phanuelx/Education-App/internal/core/service"
	"github.com/Phanuelx/Education-App/internal/infrastructure/config"
	mongodb "github.com/Phanuelx/Education-App/internal/infrastructure/db/mongo"
	redisdb "github.com/Phanuelx/Education-App/internal/infrastructure/db/redis"
	"github.com/Phanuelx/Education-App/internal/infrastructure/http/handlers"
	"github.com/Phanuelx/Education-App/internal/infrastructure/notify"
	"github.com/Phanuelx/Education-App/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// logger is not initialised yet
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "learning-platform-api",
		Env:     cfg.Env,
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
		Timeout:  cfg.Redis.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	sender, err := notify.NewSender(notify.Options{
		Provider:       cfg.Mail.Provider,
		SendGridAPIKey: cfg.Mail.SendGridAPIKey,
		From:           notify.Address{Name: cfg.Mail.FromName, Address: cfg.Mail.FromAddress},
	}, logger.Component(log, "notify"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure mail sender")
	}
	dispatcher := notify.NewDispatcher(cfg.Notify.Workers, sender, logger.Component(log, "notify"))
	dispatcher.Start(ctx)

	users := mongodb.NewUserRepository(db)
	courses := mongodb.NewCourseRepository(db)
	classes := mongodb.NewClassRepository(db)
	enrollments := mongodb.NewEnrollmentRepository(db)

	svcLog := logger.Component(log, "service")
	identitySvc := service.NewIdentityService(
		users,
		redisdb.NewPasscodeStore(rdb, cfg.Redis.KeyPrefix),
		dispatcher,
		service.NewBcryptHasher(bcrypt.DefaultCost),
		cfg.Passcode.TTL,
		svcLog,
	)
	authSvc := service.NewAuthService(identitySvc, cfg.JWTSecret, cfg.TokenTTL, svcLog)
	courseSvc := service.NewCourseService(courses, svcLog)
	classSvc := service.NewClassService(classes, courses, enrollments, svcLog)
	enrollmentSvc := service.NewEnrollmentService(enrollments, courses, users, svcLog)

	e := api.NewRouter(api.Dependencies{
		Auth:        authSvc,
		Identity:    identitySvc,
		Courses:     courseSvc,
		Classes:     classSvc,
		Enrollments: enrollmentSvc,
		Readiness: map[string]handlers.Pinger{
			"mongodb": handlers.MongoPinger(db),
			"redis":   handlers.RedisPinger(rdb),
		},
		HorizonDays: cfg.UpcomingHorizonDays,
		Log:         logger.Component(log, "http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	log.Info().Msg("server stopped")
}
