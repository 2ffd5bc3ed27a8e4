package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/uptask/config"
	"github.com/ErlanBelekov/uptask/internal/access"
	"github.com/ErlanBelekov/uptask/internal/credential"
	"github.com/ErlanBelekov/uptask/internal/email"
	"github.com/ErlanBelekov/uptask/internal/health"
	"github.com/ErlanBelekov/uptask/internal/infrastructure/store"
	ctxlog "github.com/ErlanBelekov/uptask/internal/log"
	"github.com/ErlanBelekov/uptask/internal/metrics"
	httptransport "github.com/ErlanBelekov/uptask/internal/transport/http"
	"github.com/ErlanBelekov/uptask/internal/transport/http/handler"
	"github.com/ErlanBelekov/uptask/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := ctxlog.New(os.Stdout, cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	db, err := store.Open(ctx, cfg)
	if err != nil {
		stop()
		log.Fatalf("store: %v", err)
	}
	defer db.Close()
	logger.Info("store connected", "driver", db.Driver)

	jwt := credential.NewJWT([]byte(cfg.JWTSecret), cfg.JWTTTL)
	mailer := email.NewDispatcher(email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger), cfg.FrontendURL, logger)

	// Accounts
	authUsecase := usecase.NewAuthUsecase(db.Users, db.Tokens, credential.Bcrypt{}, jwt, mailer, logger).
		WithTokenTTL(cfg.TokenTTL)
	profileUsecase := usecase.NewProfileUsecase(db.Users, credential.Bcrypt{})

	// Projects
	projectUsecase := usecase.NewProjectUsecase(db.Projects, db.Tasks)
	taskUsecase := usecase.NewTaskUsecase(db.Projects, db.Tasks, db.Notes, db.Users, logger)
	teamUsecase := usecase.NewTeamUsecase(db.Projects, db.Users)
	noteUsecase := usecase.NewNoteUsecase(db.Tasks, db.Notes, logger)

	handlers := httptransport.Handlers{
		Auth:    handler.NewAuthHandler(authUsecase, logger),
		Profile: handler.NewProfileHandler(profileUsecase, logger),
		Project: handler.NewProjectHandler(projectUsecase, logger),
		Task:    handler.NewTaskHandler(taskUsecase, logger),
		Team:    handler.NewTeamHandler(teamUsecase, logger),
		Note:    handler.NewNoteHandler(noteUsecase, logger),
	}

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer, health.Dependency{Name: db.Driver, Pinger: db.Pinger})

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, handlers, httptransport.Deps{
			Verifier:    jwt,
			Identities:  db.Users,
			Resolvers:   access.Resolvers{Projects: db.Projects, Tasks: db.Tasks, Notes: db.Notes},
			FrontendURL: cfg.FrontendURL,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker.Handlers())

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	// Emails queued by the last requests still go out before the store closes.
	mailer.Wait()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}
