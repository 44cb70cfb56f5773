package expressionHandler

import (
	"ProjectMimic/internal/api/expression"
	"ProjectMimic/internal/entity"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// handleExpressionWS owns one capture stream: binary messages are video
// frames, processed strictly one at a time; each reply is the render plan
// for that frame. The read-process-write cycle is the loop's backpressure,
// so a second inference is never in flight while one is pending.
func (h *ExpressionHandler) handleExpressionWS(c *websocket.Conn) {
	sessionID := c.Query("session")
	if sessionID == "" {
		id, err := h.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			h.log.Errorf("Failed to generate session ID: %v", err)
			return
		}
		sessionID = id
	}

	sess := h.expressionService.OpenSession(sessionID)
	defer h.expressionService.CloseSession(sess)

	h.log.Infof("Expression stream %s connected", sessionID)
	defer h.log.Infof("Expression stream %s disconnected", sessionID)

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Expression stream error: %v", err)
			}
			break
		}

		switch messageType {
		case websocket.TextMessage:
			var hello expression.DisplayHello
			if err := json.Unmarshal(message, &hello); err != nil {
				h.log.Warnf("Ignoring malformed display message: %v", err)
				continue
			}
			if err := h.validator.Struct(hello); err != nil {
				h.log.Warnf("Ignoring invalid display size: %v", err)
				continue
			}
			h.expressionService.SetDisplay(sess, entity.Surface{Width: hello.Width, Height: hello.Height})

		case websocket.BinaryMessage:
			plan, err := h.expressionService.ProcessFrame(sess, message)
			if err != nil {
				if errors.Is(err, expression.ErrSessionStopped) {
					return
				}
				h.log.Errorf("Error processing frame: %v", err)
				continue
			}

			if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
				h.log.Errorf("Error setting write deadline: %v", err)
				return
			}
			if err := c.WriteJSON(plan); err != nil {
				h.log.Errorf("Error writing render plan: %v", err)
				return
			}
			if err := c.SetWriteDeadline(time.Time{}); err != nil {
				h.log.Errorf("Error resetting write deadline: %v", err)
				return
			}

		default:
			h.log.Warnf("Received unexpected message type: %d", messageType)
		}
	}
}

// ModelStatus lets the page poll readiness for its loading screen.
func (h *ExpressionHandler) ModelStatus(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(expression.ModelStatusResponse{
		Ready: h.expressionService.ModelsReady(),
	})
}
