package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"soleledger/internal/ai"
	"soleledger/internal/auth"
	"soleledger/internal/database"
	"soleledger/internal/handlers"
	"soleledger/internal/logger"
	"soleledger/internal/repository"
	"soleledger/internal/service"
)

func main() {
	// missing .env is fine in containers where env comes from the orchestrator
	_ = godotenv.Load()

	logger.Initialize(os.Getenv("APP_ENV"))
	defer logger.Log.Sync()

	db, err := database.Open(os.Getenv("DB_DSN"))
	if err != nil {
		logger.Log.Fatal("database connection failed", zap.Error(err))
	}

	store := repository.NewGormStore(db)
	items := repository.NewGormItems(store)
	sales := repository.NewGormSales(store)
	tasks := repository.NewGormTasks(store)
	reminders := repository.NewGormReminders(store)
	users := repository.NewGormUsers(store)

	itemSvc := service.NewItemService(items, sales)
	saleSvc := service.NewSaleService(items, sales, store)
	taskSvc := service.NewTaskService(tasks)
	reminderSvc := service.NewReminderService(reminders)
	dashboardSvc := service.NewDashboardService(items, sales, tasks)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Log.Fatal("JWT_SECRET is required")
	}

	var assistant *ai.Assistant
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		assistant = ai.NewAssistant(itemSvc, dashboardSvc, key)
	} else {
		logger.Log.Warn("GEMINI_API_KEY not set, /api/ask disabled")
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		logger.Log.Fatal("cannot create upload dir", zap.Error(err))
	}

	origins := []string{"http://localhost:5173"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}

	server := handlers.NewServer(handlers.Config{
		Tokens:            auth.NewTokenManager(jwtSecret),
		Users:             users,
		Items:             itemSvc,
		Sales:             saleSvc,
		Tasks:             taskSvc,
		Reminders:         reminderSvc,
		Dashboard:         dashboardSvc,
		Assistant:         assistant,
		AllowRegistration: os.Getenv("ALLOW_REGISTRATION") == "true",
		UploadDir:         uploadDir,
		BaseURL:           os.Getenv("BASE_URL"),
		CORSOrigins:       origins,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	httpServer := &http.Server{
		Addr:    ":" + port,
		Handler: server.Engine(),
	}

	go func() {
		logger.Log.Info("server starting", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Log.Error("forced shutdown", zap.Error(err))
	}
	logger.Log.Info("server stopped")
}
