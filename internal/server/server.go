package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"taskboard/internal/service"
)

// Server wires the HTTP surface to the service layer.
type Server struct {
	db          *gorm.DB
	auth        *service.AuthService
	tasks       *service.TaskService
	categories  *service.CategoryService
	sessionTTL  time.Duration
	corsOrigins []string
}

func New(db *gorm.DB, auth *service.AuthService, tasks *service.TaskService, categories *service.CategoryService, sessionTTL time.Duration, corsOrigins []string) *Server {
	return &Server{
		db:          db,
		auth:        auth,
		tasks:       tasks,
		categories:  categories,
		sessionTTL:  sessionTTL,
		corsOrigins: corsOrigins,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	if len(s.corsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     s.corsOrigins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", s.health)

	auth := router.Group("/api/auth")
	auth.POST("/signup", s.signup)
	auth.POST("/login", s.login)
	auth.POST("/logout", s.logout)
	auth.GET("/me", s.requireUser(), s.me)
	auth.POST("/forgot-password", s.forgotPassword)
	auth.POST("/reset-password", s.resetPassword)

	api := router.Group("/api", s.requireUser())
	api.GET("/tasks", s.listTasks)
	api.POST("/tasks", s.createTask)
	api.POST("/tasks/:id/update", s.updateTask)
	api.POST("/tasks/:id/complete", s.completeTask)
	api.POST("/tasks/:id/delete", s.deleteTask)
	api.GET("/history", s.listHistory)
	api.GET("/categories", s.listCategories)
	api.POST("/categories", s.createCategory)

	return router
}

func (s *Server) health(c *gin.Context) {
	dbStatus := "ok"
	if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbStatus = "down"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbStatus})
}
