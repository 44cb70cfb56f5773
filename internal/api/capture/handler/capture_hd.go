package captureHandler

import (
	"ProjectMimic/internal/api/capture"
	contextPkg "ProjectMimic/pkg/context"
	"ProjectMimic/pkg/handlerUtil"
	"ProjectMimic/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

// SaveImage implements the save endpoint's wire contract: any failure,
// including a malformed body, answers 500 with {"success":false}.
func (h *CaptureHandler) SaveImage(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing save-image request")

	var req capture.SaveImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return h.saveFailed(ctx, requestID, "invalid request body")
	}

	if err := h.validator.Struct(req); err != nil {
		return h.saveFailed(ctx, requestID, "image field is required")
	}

	fileName, err := h.captureService.SaveImage(c, req.Session, req.Image)
	if err != nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"error":      err.Error(),
		}).Error("Failed to save snapshot")
		return h.saveFailed(ctx, requestID, err.Error())
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"file_name":  fileName,
	}).Info("Snapshot saved")

	return ctx.Status(fiber.StatusOK).JSON(capture.SaveImageResponse{
		Success:  true,
		FileName: fileName,
	})
}

func (h *CaptureHandler) saveFailed(ctx *fiber.Ctx, requestID, reason string) error {
	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"reason":     reason,
	}).Warn("Save-image request rejected")

	return ctx.Status(fiber.StatusInternalServerError).JSON(capture.SaveImageResponse{
		Success: false,
		Error:   reason,
	})
}

func (h *CaptureHandler) Retake(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req capture.RetakeRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}

		if err := h.validator.Struct(req); err != nil {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}
	}

	if err := h.captureService.Retake(c, req.Session); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "retake")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"session":    req.Session,
	}).Info("Capture state discarded")

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, capture.RetakeResponse{Success: true})
	}
}
