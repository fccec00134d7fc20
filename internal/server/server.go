package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Pratik-0309/thumbnail-generator/internal/auth"
	"github.com/Pratik-0309/thumbnail-generator/internal/models"
)

// Store is the persistence contract the handlers need.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetRefreshToken(ctx context.Context, userID uuid.UUID, token string) error

	CreateThumbnail(ctx context.Context, t *models.Thumbnail) error
	GetThumbnail(ctx context.Context, id uuid.UUID) (*models.Thumbnail, error)
	ListThumbnails(ctx context.Context, userID uuid.UUID) ([]models.Thumbnail, error)
	SetThumbnailStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteThumbnail(ctx context.Context, id uuid.UUID) error
}

// TaskQueue hands a pending record id to the generation worker.
type TaskQueue interface {
	Enqueue(ctx context.Context, id string) error
}

// AssetRemover deletes a hosted asset by its remote key.
type AssetRemover interface {
	Delete(ctx context.Context, key string) error
}

type Server struct {
	cfg     *models.Config
	router  *gin.Engine
	db      Store
	queue   TaskQueue
	remover AssetRemover
	tokens  *auth.Manager
	log     *logrus.Logger
	httpSrv *http.Server
}

func NewServer(cfg *models.Config, db Store, queue TaskQueue, remover AssetRemover, log *logrus.Logger) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:     cfg,
		router:  r,
		db:      db,
		queue:   queue,
		remover: remover,
		tokens:  auth.NewManager(cfg.AccessTokenSecret, cfg.RefreshTokenSecret),
		log:     log,
	}

	r.Use(s.requestLogger(), s.cors())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	user := r.Group("/api/user")
	{
		user.POST("/register", s.handleRegister)
		user.POST("/login", s.handleLogin)
		user.POST("/logout", s.requireAuth(), s.handleLogout)
		user.POST("/refresh-token", s.handleRefreshToken)
	}

	thumb := r.Group("/api/thumbnail", s.requireAuth())
	{
		thumb.POST("/generate", s.handleGenerate)
		thumb.DELETE("/delete/:id", s.handleDelete)
		thumb.GET("/thumbnails", s.handleList)
		thumb.GET("/thumbnail/:id", s.handleGet)
	}

	return s
}

func (s *Server) Start() error {
	s.httpSrv = &http.Server{Addr: s.cfg.ServerAddr, Handler: s.router}
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Router exposes the engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
