package admin

import (
	"github.com/gofiber/fiber/v2"

	"profast/apperrors"
	"profast/logger"
	adminService "profast/services/admin"
	"profast/types"
	"profast/utils"
)

// AdminController serves the admin dashboard
type AdminController struct {
	Service        *adminService.Service
	loggerInstance *logger.AsyncLogger
}

// NewAdminController creates a new admin controller
func NewAdminController(svc *adminService.Service, asyncLogger *logger.AsyncLogger) *AdminController {
	return &AdminController{
		Service:        svc,
		loggerInstance: asyncLogger,
	}
}

func (ac *AdminController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	ac.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// Dashboard returns aggregate counts for the admin overview.
func (ac *AdminController) Dashboard(c *fiber.Ctx) error {
	overview, err := ac.Service.Overview(c.Context())
	if err != nil {
		logger.Error("Failed to build dashboard", err)
		status := apperrors.HTTPStatus(err)
		return ac.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: "Internal server error",
		})
	}
	return ac.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status: fiber.StatusOK,
		Data:   overview,
	})
}
