package rider

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"profast/apperrors"
	"profast/logger"
	riderModel "profast/models/rider"
	riderService "profast/services/rider"
	"profast/types"
	riderTypes "profast/types/rider"
	"profast/utils"
)

// RiderController handles rider application HTTP requests
type RiderController struct {
	Service        *riderService.Service
	loggerInstance *logger.AsyncLogger
}

// NewRiderController creates a new rider controller
func NewRiderController(svc *riderService.Service, asyncLogger *logger.AsyncLogger) *RiderController {
	return &RiderController{
		Service:        svc,
		loggerInstance: asyncLogger,
	}
}

func (rc *RiderController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	rc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

func (rc *RiderController) sendErrorWithLog(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		logger.Error("Rider operation failed", err)
		message = "Internal server error"
	}
	return rc.sendResponseWithLog(c, status, types.ApiResponse{
		Status:  status,
		Message: message,
	})
}

// Apply stores a new rider application in pending status.
func (rc *RiderController) Apply(c *fiber.Ctx) error {
	var req riderTypes.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	r, err := rc.Service.Apply(c.Context(), riderService.ApplyInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		District: req.District,
	})
	if err != nil {
		return rc.sendErrorWithLog(c, err)
	}
	return rc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Rider application received",
		Data:    r,
	})
}

// List returns riders, optionally filtered by ?status=. Admin only.
func (rc *RiderController) List(c *fiber.Ctx) error {
	status := riderModel.RiderStatus(c.Query("status"))
	riders, err := rc.Service.List(c.Context(), status)
	if err != nil {
		return rc.sendErrorWithLog(c, err)
	}
	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status: fiber.StatusOK,
		Data:   riders,
	})
}

// SetStatus approves or rejects a rider application. Admin only.
func (rc *RiderController) SetStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid rider id",
		})
	}
	var req riderTypes.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	r, err := rc.Service.SetStatus(c.Context(), id, riderModel.RiderStatus(req.Status))
	if err != nil {
		return rc.sendErrorWithLog(c, err)
	}
	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Rider status updated",
		Data:    r,
	})
}

// Delete removes a rider application. Admin only.
func (rc *RiderController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid rider id",
		})
	}
	if err := rc.Service.Delete(c.Context(), id); err != nil {
		return rc.sendErrorWithLog(c, err)
	}
	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Rider removed",
	})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
