// Package main runs the event registration portal HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/acm-vitap/registration-portal/config"
	"github.com/acm-vitap/registration-portal/internal/auth"
	"github.com/acm-vitap/registration-portal/internal/events"
	"github.com/acm-vitap/registration-portal/internal/export"
	"github.com/acm-vitap/registration-portal/internal/legacy"
	"github.com/acm-vitap/registration-portal/internal/middleware"
	"github.com/acm-vitap/registration-portal/internal/registrations"
	"github.com/acm-vitap/registration-portal/pkg/database"
	"github.com/acm-vitap/registration-portal/web"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	sessionService := auth.NewSessionService(cfg.Session.Secret, cfg.Session.ExpireHours)
	authHandler := auth.NewHandler(cfg.Admin, sessionService, logger)

	eventRepo := events.NewRepository(pool)
	eventHandler := events.NewHandler(eventRepo, logger)

	registrationRepo := registrations.NewRepository(pool)
	registrationHandler := registrations.NewHandler(registrationRepo, eventRepo, logger)

	exportHandler := export.NewHandler(registrationRepo, logger)

	legacyRepo := legacy.NewRepository(pool)
	legacyHandler := legacy.NewHandler(legacyRepo, logger)

	tmpl, err := web.Templates()
	if err != nil {
		logger.Fatal("parse templates", zap.Error(err))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.SetHTMLTemplate(tmpl)

	// Public pages
	router.GET("/", func(c *gin.Context) { c.HTML(http.StatusOK, "home.html", gin.H{}) })
	router.GET("/treasure", func(c *gin.Context) { c.HTML(http.StatusOK, "treasure.html", gin.H{}) })
	router.GET("/upcoming_events", func(c *gin.Context) { c.HTML(http.StatusOK, "upcoming_events.html", gin.H{}) })
	router.GET("/choose_event", eventHandler.ChooseEvent)

	// Registration workflow. The bare path predates per-event forms and
	// bounces to the chooser.
	router.GET("/team_register", registrationHandler.RegisterRoot)
	router.POST("/team_register", registrationHandler.RegisterRoot)
	router.GET("/team_register/:event_id", registrationHandler.RegisterForm)
	router.POST("/team_register/:event_id", registrationHandler.Register)
	router.POST("/download_info", exportHandler.DownloadInfo)

	// The public stats endpoint intentionally mirrors /admin/stats; only the
	// admin route is guarded.
	router.GET("/stats", exportHandler.Stats)

	// Admin auth
	router.GET("/admin_login", authHandler.LoginPage)
	router.POST("/admin_login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)

	// Admin-only pages
	admin := router.Group("")
	admin.Use(middleware.AdminRequired(sessionService))
	{
		admin.GET("/admin_dashboard", func(c *gin.Context) { c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{}) })

		admin.GET("/admin/events", eventHandler.AdminList)
		admin.POST("/admin/events", eventHandler.AdminCreate)
		admin.GET("/admin/event/:id/edit", eventHandler.AdminEditPage)
		admin.POST("/admin/event/:id/edit", eventHandler.AdminEdit)
		admin.POST("/admin/event/:id/delete", eventHandler.AdminDelete)

		admin.GET("/view_registered_teams", registrationHandler.ViewRegisteredTeams)
		admin.GET("/admin/teams", registrationHandler.AdminTeams)
		admin.GET("/admin/team/:id", registrationHandler.AdminViewTeam)
		admin.GET("/admin/team/:id/edit", registrationHandler.AdminEditTeamPage)
		admin.POST("/admin/team/:id/edit", registrationHandler.AdminEditTeam)
		admin.POST("/admin/team/:id/delete", registrationHandler.AdminDeleteTeam)

		admin.GET("/export_excel", exportHandler.ExportExcel)
		admin.GET("/admin/teams/export", exportHandler.ExportTeams)
		admin.GET("/admin/stats", exportHandler.Stats)

		admin.GET("/legacy_teams", legacyHandler.ListTeams)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
