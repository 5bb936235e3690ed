package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"soleledger/internal/ai"
	"soleledger/internal/auth"
	"soleledger/internal/logger"
	"soleledger/internal/middleware"
	"soleledger/internal/repository"
	"soleledger/internal/service"
)

// Config wires the server's collaborators. Everything is injected; the
// handlers own no state of their own.
type Config struct {
	Tokens            *auth.TokenManager
	Users             repository.UserRepository
	Items             *service.ItemService
	Sales             *service.SaleService
	Tasks             *service.TaskService
	Reminders         *service.ReminderService
	Dashboard         *service.DashboardService
	Assistant         *ai.Assistant // nil disables /api/ask
	AllowRegistration bool
	UploadDir         string
	BaseURL           string
	CORSOrigins       []string // empty disables CORS (tests)
}

type Server struct {
	engine *gin.Engine
	cfg    Config
}

func NewServer(cfg Config) *Server {
	r := gin.New()
	r.Use(logger.RequestLogger(), gin.Recovery())
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	s := &Server{engine: r, cfg: cfg}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	r := s.engine

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "online"}) })
	r.POST("/login", s.login)
	if s.cfg.AllowRegistration {
		r.POST("/register", s.register)
	}
	if s.cfg.UploadDir != "" {
		r.Static("/uploads", s.cfg.UploadDir)
	}

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(s.cfg.Tokens))
	{
		// OPEN TO STAFF & ADMIN
		api.GET("/items", s.listItems)
		api.GET("/items/:id", s.getItem)
		api.GET("/sales", s.listSales)
		api.POST("/sales", s.recordSale)
		api.GET("/sales/:id", s.getSale)
		api.PUT("/sales/:id", s.updateSale)
		api.DELETE("/sales/:id", s.deleteSale)
		api.GET("/tasks", s.listTasks)
		api.POST("/tasks", s.createTask)
		api.GET("/tasks/:id", s.getTask)
		api.PUT("/tasks/:id", s.updateTask)
		api.DELETE("/tasks/:id", s.deleteTask)
		api.GET("/reminders", s.listReminders)
		api.POST("/reminders", s.createReminder)
		api.DELETE("/reminders/:id", s.deleteReminder)
		api.POST("/reminders/sweep", s.sweepReminders)
		api.GET("/dashboard", s.dashboard)

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/items", s.createItem)
			admin.PUT("/items/:id", s.updateItem)
			admin.DELETE("/items/:id", s.deleteItem)
			admin.POST("/items/:id/adjust", s.adjustItem)
			admin.POST("/upload", s.uploadImage)
			admin.POST("/ask", s.ask)
		}
	}
}

// currentUserID reads the identity RequireAuth stored on the context.
func currentUserID(c *gin.Context) uint {
	return c.MustGet("userID").(uint)
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// parseDate accepts a bare date or a full RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondErr(c *gin.Context, err error) {
	c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
}
