package config

import (
	captureHandler "ProjectMimic/internal/api/capture/handler"
	captureService "ProjectMimic/internal/api/capture/service"
	expressionHandler "ProjectMimic/internal/api/expression/handler"
	expressionService "ProjectMimic/internal/api/expression/service"
	"ProjectMimic/internal/middleware"
	"ProjectMimic/pkg/modelclient"
	"ProjectMimic/pkg/storage"
	"ProjectMimic/pkg/utils"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	handlers    []handler
	modelClient modelclient.IModelClient
	photoStore  storage.IPhotoStore

	saveImage fiber.Handler
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithModelClient(client modelclient.IModelClient) ServerOption {
	return func(s *Server) error {
		s.modelClient = client
		return nil
	}
}

func WithPhotoStore() ServerOption {
	return func(s *Server) error {
		store, err := storage.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize photo store: %v", err)
			}
			return fmt.Errorf("failed to create photo store: %w", err)
		}
		s.photoStore = store
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Expression Domain
	expressionServices := expressionService.New(s.log, s.modelClient)
	expressionHandlers := expressionHandler.New(s.log, s.validator, s.middleware, expressionServices, s.utils)

	// Capture Domain
	captureServices := captureService.New(s.log, s.photoStore, s.utils)
	captureHandlers := captureHandler.New(s.log, s.validator, s.middleware, captureServices)
	s.saveImage = captureHandlers.SaveImage

	s.setupHealthCheck()
	s.handlers = append(s.handlers, expressionHandlers, captureHandlers)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}

	// The documented save endpoint lives outside the versioned group.
	if s.saveImage != nil {
		s.engine.Post("/api/save-image", s.middleware.NewRateLimiter, s.saveImage)
	}

	s.engine.Static("/", publicDir())
	s.engine.Static("/photos", photoDir())

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		if s.modelClient != nil {
			s.modelClient.CloseConnections()
		}
		return err
	}

	return nil
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}

func publicDir() string {
	dir := os.Getenv("PUBLIC_DIR")
	if dir == "" {
		dir = "./public"
	}
	return dir
}

func photoDir() string {
	dir := os.Getenv("PHOTO_DIR")
	if dir == "" {
		dir = "./public/photos"
	}
	return dir
}
