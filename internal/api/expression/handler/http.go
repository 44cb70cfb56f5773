package expressionHandler

import (
	expressionService "ProjectMimic/internal/api/expression/service"
	"ProjectMimic/internal/middleware"
	"ProjectMimic/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type ExpressionHandler struct {
	log               *logrus.Logger
	validator         *validator.Validate
	middleware        middleware.Middleware
	expressionService expressionService.IExpressionService
	utils             utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	es expressionService.IExpressionService,
	utils utils.IUtils,
) *ExpressionHandler {
	return &ExpressionHandler{
		log:               log,
		validator:         validator,
		middleware:        middleware,
		expressionService: es,
		utils:             utils,
	}
}

func (h *ExpressionHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	group := srv.Group("/expression")
	group.Get("/models", h.ModelStatus)
	group.Use("/ws", wsMiddleware)
	group.Get("/ws", websocket.New(h.handleExpressionWS))
}
