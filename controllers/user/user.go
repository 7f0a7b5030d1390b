package user

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"profast/logger"
	userModel "profast/models/user"
	"profast/repository"
	"profast/types"
	userTypes "profast/types/user"
	"profast/utils"
)

// UserController handles identity upserts and role lookups. Token
// issuance lives outside this service; these endpoints only mirror a
// verified identity into the users table.
type UserController struct {
	Users          repository.UserStore
	loggerInstance *logger.AsyncLogger
}

// NewUserController creates a new user controller
func NewUserController(users repository.UserStore, asyncLogger *logger.AsyncLogger) *UserController {
	return &UserController{
		Users:          users,
		loggerInstance: asyncLogger,
	}
}

func (uc *UserController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	uc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// Upsert records an identity on login. New identities get the user role;
// existing ones keep whatever role they hold.
func (uc *UserController) Upsert(c *fiber.Ctx) error {
	var req userTypes.UpsertUserRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	u := &userModel.User{Email: req.Email, Name: req.Name, Role: userModel.RoleUser}
	if err := uc.Users.Upsert(c.Context(), u); err != nil {
		logger.Error("Failed to upsert user", err)
		return uc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
	return uc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "User recorded",
		Data:    u,
	})
}

// GetRole resolves an email to its stored role, defaulting to user.
func (uc *UserController) GetRole(c *fiber.Ctx) error {
	email := c.Params("email")
	role := userModel.RoleUser
	u, err := uc.Users.ByEmail(c.Context(), email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		logger.Error("Failed to look up role", err)
		return uc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
	if err == nil {
		role = u.Role
	}
	return uc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status: fiber.StatusOK,
		Data:   fiber.Map{"email": email, "role": role},
	})
}
