package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"org-site-backend/internal/auth"
	"org-site-backend/internal/config"
	"org-site-backend/internal/database"
	"org-site-backend/internal/handlers"
	"org-site-backend/internal/mailer"
	"org-site-backend/internal/metrics"
	"org-site-backend/internal/repository"
	"org-site-backend/internal/scheduler"
	"org-site-backend/internal/server"
	"org-site-backend/internal/service"
)

// Run wires the application together and blocks until shutdown.
func Run() {
	// Configure logging
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	logrus.Info("Starting organization site backend")

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Configuration validation failed: %v", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	m := metrics.New()

	sender, err := mailer.New(&cfg.Mail)
	if err != nil {
		logrus.Fatalf("Failed to create mail sender: %v", err)
	}

	var verifier auth.Verifier
	if cfg.Auth.IdentityURL != "" {
		verifier = auth.NewHTTPVerifier(cfg.Auth)
	} else {
		logrus.Warn("No identity service configured, admin endpoints are unavailable")
		verifier = auth.NewStaticVerifier(nil)
	}

	subscribers := repository.NewSubscribers(db)
	newsletters := repository.NewNewsletters(db)
	blogs := repository.NewBlogs(db)
	projects := repository.NewProjects(db)
	activities := repository.NewActivities(db)
	topicRequests := repository.NewRequests(db)

	subscriptions := service.NewSubscriptionService(subscribers, m)
	dispatcher := service.NewDispatcher(newsletters, subscribers, sender, m, &cfg.Mail)
	requests := service.NewRequestService(topicRequests)
	blogService := service.NewBlogService(blogs, m)
	projectService := service.NewProjectService(projects, m)
	activityService := service.NewActivityService(activities)

	sched := scheduler.New(&cfg.Scheduler, dispatcher)

	h := handlers.New(db, subscriptions, dispatcher, requests, blogService, projectService, activityService, sched)
	router := server.NewRouter(h, verifier)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if cfg.Scheduler.Enabled {
		if err := sched.Start(); err != nil {
			logrus.Fatalf("Failed to start scheduler: %v", err)
		}
	} else {
		logrus.Warn("Scheduler is disabled, scheduled newsletters will not be dispatched")
	}

	go func() {
		logrus.Infof("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sched.Stop(); err != nil {
		logrus.Errorf("Failed to stop scheduler: %v", err)
	}
	sched.Wait()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("HTTP server shutdown error: %v", err)
	}

	if err := sender.Close(); err != nil {
		logrus.Errorf("Failed to close mail sender: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}
