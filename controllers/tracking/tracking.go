package tracking

import (
	"github.com/gofiber/fiber/v2"

	"profast/apperrors"
	"profast/logger"
	"profast/middleware"
	trackingModel "profast/models/tracking"
	trackingService "profast/services/tracking"
	"profast/types"
	trackingTypes "profast/types/tracking"
	"profast/utils"
)

// TrackingController handles tracking ledger HTTP requests
type TrackingController struct {
	Service        *trackingService.Service
	loggerInstance *logger.AsyncLogger
}

// NewTrackingController creates a new tracking controller
func NewTrackingController(svc *trackingService.Service, asyncLogger *logger.AsyncLogger) *TrackingController {
	return &TrackingController{
		Service:        svc,
		loggerInstance: asyncLogger,
	}
}

func (tc *TrackingController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	tc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// Append records a tracking event. The status is restricted to the
// public write set; events outside it are rejected before any write.
func (tc *TrackingController) Append(c *fiber.Ctx) error {
	var req trackingTypes.AppendEventRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return tc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return tc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}
	caller, _ := middleware.CallerFromCtx(c)

	e, err := tc.Service.Append(c.Context(), trackingService.AppendInput{
		TrackingID: req.TrackingID,
		Status:     req.Status,
		Message:    req.Message,
		Location:   req.Location,
		Details:    req.Details,
	}, trackingModel.Actor{Role: caller.Role.String(), Email: caller.Email})
	if err != nil {
		status := apperrors.HTTPStatus(err)
		message := err.Error()
		if status == fiber.StatusInternalServerError {
			logger.Error("Failed to append tracking event", err)
			message = "Internal server error"
		}
		return tc.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: message,
		})
	}
	return tc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Tracking event recorded",
		Data:    e,
	})
}

// History returns the full event sequence for a tracking id, oldest
// first.
func (tc *TrackingController) History(c *fiber.Ctx) error {
	trackingID := c.Params("trackingId")
	events, err := tc.Service.History(c.Context(), trackingID)
	if err != nil {
		status := apperrors.HTTPStatus(err)
		message := err.Error()
		if status == fiber.StatusInternalServerError {
			logger.Error("Failed to read tracking history", err)
			message = "Internal server error"
		}
		return tc.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: message,
		})
	}
	return tc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status: fiber.StatusOK,
		Data:   events,
	})
}
