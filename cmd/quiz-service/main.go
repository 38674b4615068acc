package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"mannerisms/internal/auth"
	"mannerisms/internal/cache"
	"mannerisms/internal/config"
	"mannerisms/internal/grader"
	"mannerisms/internal/httpapi"
	"mannerisms/internal/logging"
	"mannerisms/internal/quiz"
	"mannerisms/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	logger := logging.New("quiz-service", cfg.LogLevel)
	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("quiz-service stopped")
	}
}

func run(cfg *config.Config, logger *logrus.Entry) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	driver, _ := store.Resolve(cfg.DatabaseURL)
	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.WithField("driver", driver).Info("database ready")

	readiness := []httpapi.Pinger{db}
	quizOpts := []quiz.Option{quiz.WithLogger(logger)}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		questionCache := cache.NewRedisQuestionCache(client, cfg.QuestionCacheTTL)
		if err := questionCache.Ping(ctx); err != nil {
			logger.WithError(err).Warn("redis unreachable at startup, continuing")
		}
		quizOpts = append(quizOpts, quiz.WithCache(questionCache))
		readiness = append(readiness, questionCache)
		logger.WithField("addr", cfg.RedisAddr).Info("question cache backed by redis")
	} else {
		quizOpts = append(quizOpts, quiz.WithCache(quiz.NewMemoryQuestionCache(cfg.QuestionCacheTTL)))
	}

	llm, err := grader.NewClient(ctx, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	if err != nil {
		return err
	}

	authService := auth.NewService(
		db,
		auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		auth.WithLogger(logger),
	)
	quizService := quiz.NewService(db, db, db, llm, quizOpts...)

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr: cfg.Addr,
		Handler: httpapi.NewRouter(authService, quizService,
			httpapi.WithLogger(logger),
			httpapi.WithReadiness(readiness...),
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Addr).Info("quiz-service listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
