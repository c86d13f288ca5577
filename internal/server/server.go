package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/config"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/handler"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/middleware"
	sleredis "github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/redis"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/transport/httpdto"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/database"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/logger"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Inquiry      *handler.InquiryHandler
	Conversation *handler.ConversationHandler
	Message      *handler.MessageHandler
	Upload       *handler.UploadHandler
	Directory    *handler.DirectoryHandler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) SetupRoutes(handlers *Handlers, limiter *sleredis.RateLimiter) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
			return
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	authed := middleware.AuthMiddleware([]byte(s.config.JWTSecret))
	postLimit := middleware.MessageRateLimitMiddleware(limiter)

	inquiries := s.engine.Group("/v1/inquiries", authed)
	{
		inquiries.POST("", handlers.Inquiry.Create)
		inquiries.GET("", handlers.Inquiry.List)
		inquiries.GET("/:id", handlers.Inquiry.GetByID)
		inquiries.POST("/:id/messages", postLimit, handlers.Inquiry.AppendMessage)
		inquiries.POST("/:id/quotes", handlers.Inquiry.AddQuote)
		inquiries.POST("/:id/quotes/:quoteId/accept", handlers.Inquiry.AcceptQuote)
		inquiries.POST("/:id/quotes/:quoteId/reject", handlers.Inquiry.RejectQuote)
		inquiries.POST("/:id/convert", handlers.Inquiry.Convert)
		inquiries.POST("/:id/reject", handlers.Inquiry.Reject)
		inquiries.POST("/:id/archive", handlers.Inquiry.Archive)
		inquiries.PATCH("/:id/status", handlers.Inquiry.UpdateStatus)
		inquiries.POST("/:id/read", handlers.Inquiry.MarkRead)
	}

	conversations := s.engine.Group("/v1/conversations", authed)
	{
		conversations.GET("", handlers.Conversation.List)
		conversations.POST("/read", handlers.Conversation.MarkRead)
	}

	messages := s.engine.Group("/v1/messages", authed)
	{
		messages.POST("", postLimit, handlers.Message.Post)
		messages.GET("/:threadKind/:threadId", handlers.Message.ListThread)
		messages.POST("/:id/delivered", handlers.Message.MarkDelivered)
	}

	uploads := s.engine.Group("/v1/uploads", authed)
	{
		uploads.POST("/presign", handlers.Upload.PresignUpload)
		uploads.GET("/presign", handlers.Upload.PresignDownload)
	}

	companies := s.engine.Group("/v1/companies", authed)
	{
		companies.GET("/:id", handlers.Directory.GetProfile)
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
