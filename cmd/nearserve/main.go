package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nearserve/nearserve/internal/config"
	dbRedis "github.com/nearserve/nearserve/internal/db/redis"
	logpkg "github.com/nearserve/nearserve/internal/logger"
	"github.com/nearserve/nearserve/internal/metrics"
	providerrepo "github.com/nearserve/nearserve/internal/repository/provider"
	"github.com/nearserve/nearserve/internal/storage"
	"github.com/nearserve/nearserve/internal/token"
	"github.com/nearserve/nearserve/internal/transport/httpapi"
	smtpMail "github.com/nearserve/nearserve/internal/transport/smtp"
	accountuc "github.com/nearserve/nearserve/internal/usecase/account"
	directoryuc "github.com/nearserve/nearserve/internal/usecase/directory"
	healthuc "github.com/nearserve/nearserve/internal/usecase/health"
	profileuc "github.com/nearserve/nearserve/internal/usecase/profile"
	searchuc "github.com/nearserve/nearserve/internal/usecase/search"
	suggestuc "github.com/nearserve/nearserve/internal/usecase/suggest"
	"github.com/nearserve/nearserve/internal/version"
)

func main() {
	// Load .env if present, then configuration based on ENV
	_ = godotenv.Load()
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting nearserve API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	repo := providerrepo.New(store)

	tokens := token.NewManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.Issuer,
		time.Duration(cfg.Auth.TokenTTLHrs)*time.Hour,
	)

	// Mailer falls back to log-only delivery without an SMTP host.
	var mailer accountuc.Mailer
	if cfg.Email.Host != "" {
		mailer = smtpMail.NewMailer(smtpMail.Config{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
		})
		logger.Info("SMTP mailer configured", zap.String("host", cfg.Email.Host))
	} else {
		mailer = logMailer{logger: logger}
		logger.Warn("No SMTP host configured, emails will only be logged")
	}

	// Photo storage is optional. Pass nil interfaces (not typed nil pointers!)
	// downstream when the bucket is not configured.
	// Go gotcha: (*storage.S3Store)(nil) wrapped in an interface != nil.
	var objects profileuc.ObjectStore
	var storageChecker healthuc.StorageChecker
	if cfg.Storage.Bucket != "" {
		s3store, err := storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:      cfg.Storage.Endpoint,
			Region:        cfg.Storage.Region,
			Bucket:        cfg.Storage.Bucket,
			AccessKey:     cfg.Storage.AccessKey,
			SecretKey:     cfg.Storage.SecretKey,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
			UsePathStyle:  cfg.Storage.UsePathStyle,
		})
		if err != nil {
			logger.Fatal("Failed to create object store", zap.Error(err))
		}
		objects = s3store
		storageChecker = s3store
		logger.Info("Photo storage configured", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		logger.Warn("No storage bucket configured, photo uploads are disabled")
	}

	// Create use case services
	searchSvc := searchuc.New(repo)
	suggestSvc := suggestuc.New(repo)
	accountSvc := accountuc.New(repo, mailer, tokens, logger)
	profileSvc := profileuc.New(repo, objects, logger)
	directorySvc := directoryuc.New(repo)
	healthSvc := healthuc.New(store, storageChecker)

	server := httpapi.NewServer(
		searchSvc, suggestSvc, accountSvc, profileSvc, directorySvc, healthSvc,
		tokens, logger,
		httpapi.Options{
			MaxUploadBytes: int64(cfg.HTTP.MaxUploadMB) << 20,
			PhotosEnabled:  objects != nil,
		},
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.RegisterRoutes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// logMailer records outgoing codes instead of delivering them. Local-only.
type logMailer struct {
	logger *zap.Logger
}

func (m logMailer) SendVerificationCode(_ context.Context, to, _, code string) error {
	m.logger.Info("verification code issued", zap.String("to", to), zap.String("code", code))
	return nil
}

func (m logMailer) SendResetCode(_ context.Context, to, _, code string) error {
	m.logger.Info("reset code issued", zap.String("to", to), zap.String("code", code))
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"success": false,
						"error":   "INTERNAL_ERROR",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
