package captureHandler

import (
	captureService "ProjectMimic/internal/api/capture/service"
	"ProjectMimic/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CaptureHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	captureService captureService.ICaptureService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	cs captureService.ICaptureService,
) *CaptureHandler {
	return &CaptureHandler{
		log:            log,
		validator:      validator,
		middleware:     middleware,
		captureService: cs,
	}
}

func (h *CaptureHandler) Start(srv fiber.Router) {
	group := srv.Group("/capture")
	group.Post("/save-image", h.SaveImage)
	group.Post("/retake", h.Retake)
}
