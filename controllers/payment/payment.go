package payment

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"profast/apperrors"
	"profast/logger"
	"profast/middleware"
	userModel "profast/models/user"
	paymentService "profast/services/payment"
	"profast/types"
	paymentTypes "profast/types/payment"
	"profast/utils"
)

// PaymentController handles payment settlement HTTP requests
type PaymentController struct {
	Service        *paymentService.Service
	loggerInstance *logger.AsyncLogger
}

// NewPaymentController creates a new payment controller
func NewPaymentController(svc *paymentService.Service, asyncLogger *logger.AsyncLogger) *PaymentController {
	return &PaymentController{
		Service:        svc,
		loggerInstance: asyncLogger,
	}
}

func (pc *PaymentController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	pc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

func (pc *PaymentController) sendErrorWithLog(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		logger.Error("Payment operation failed", err)
		message = "Internal server error"
	}
	return pc.sendResponseWithLog(c, status, types.ApiResponse{
		Status:  status,
		Message: message,
	})
}

// CreateIntent obtains a charge handle from the gateway for client-side
// completion.
func (pc *PaymentController) CreateIntent(c *fiber.Ctx) error {
	var req paymentTypes.CreateIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	secret, err := pc.Service.CreateIntent(c.Context(), req.AmountMinorUnits, req.Currency)
	if err != nil {
		return pc.sendErrorWithLog(c, err)
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status: fiber.StatusOK,
		Data:   fiber.Map{"client_secret": secret},
	})
}

// Record reconciles a completed external charge with a parcel.
func (pc *PaymentController) Record(c *fiber.Ctx) error {
	var req paymentTypes.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}
	caller, ok := middleware.CallerFromCtx(c)
	if !ok {
		return pc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	record, err := pc.Service.Record(c.Context(), paymentService.RecordInput{
		ParcelID:      req.ParcelID,
		PaymentMethod: req.PaymentMethod,
		PayerEmail:    caller.Email,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return pc.sendErrorWithLog(c, err)
	}
	return pc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Payment recorded",
		Data:    record,
	})
}

// List returns payments. Non-admin callers only ever see their own; an
// admin may filter by parcel id.
func (pc *PaymentController) List(c *fiber.Ctx) error {
	caller, ok := middleware.CallerFromCtx(c)
	if !ok {
		return pc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	if parcelParam := c.Query("parcel_id"); parcelParam != "" {
		if caller.Role != userModel.RoleAdmin {
			return pc.sendResponseWithLog(c, fiber.StatusForbidden, types.ApiResponse{
				Status:  fiber.StatusForbidden,
				Message: "Insufficient permissions",
			})
		}
		parcelID, err := strconv.ParseUint(parcelParam, 10, 32)
		if err != nil {
			return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid parcel id",
			})
		}
		payments, err := pc.Service.ListByParcel(c.Context(), uint(parcelID))
		if err != nil {
			return pc.sendErrorWithLog(c, err)
		}
		return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
			Status: fiber.StatusOK,
			Data:   payments,
		})
	}

	payments, err := pc.Service.ListByEmail(c.Context(), caller.Email)
	if err != nil {
		return pc.sendErrorWithLog(c, err)
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status: fiber.StatusOK,
		Data:   payments,
	})
}
