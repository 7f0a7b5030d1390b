package parcel

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"profast/apperrors"
	"profast/logger"
	"profast/middleware"
	parcelModel "profast/models/parcel"
	"profast/models/tracking"
	parcelService "profast/services/parcel"
	"profast/types"
	parcelTypes "profast/types/parcel"
	"profast/utils"
)

// ParcelController handles parcel lifecycle HTTP requests
type ParcelController struct {
	Service        *parcelService.Service
	loggerInstance *logger.AsyncLogger
}

// NewParcelController creates a new parcel controller
func NewParcelController(svc *parcelService.Service, asyncLogger *logger.AsyncLogger) *ParcelController {
	return &ParcelController{
		Service:        svc,
		loggerInstance: asyncLogger,
	}
}

// Helper function to send response and log in one call
func (pc *ParcelController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	pc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

func (pc *ParcelController) sendErrorWithLog(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		logger.Error("Parcel operation failed", err)
		message = "Internal server error"
	}
	return pc.sendResponseWithLog(c, status, types.ApiResponse{
		Status:  status,
		Message: message,
	})
}

// Create submits a new parcel for the authenticated caller.
func (pc *ParcelController) Create(c *fiber.Ctx) error {
	var req parcelTypes.CreateParcelRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
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

	p, err := pc.Service.Create(c.Context(), parcelService.CreateInput{
		ParcelType:     req.ParcelType,
		SenderRegion:   req.SenderRegion,
		ReceiverRegion: req.ReceiverRegion,
		SenderAddress:  req.SenderAddress,
		ReceiverName:   req.ReceiverName,
		ReceiverAddr:   req.ReceiverAddress,
		DeliveryCost:   req.DeliveryCost,
	}, tracking.Actor{Role: caller.Role.String(), Email: caller.Email})
	if err != nil {
		return pc.sendErrorWithLog(c, err)
	}

	return pc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Parcel submitted successfully",
		Data:    p,
	})
}

// Get returns one parcel by id.
func (pc *ParcelController) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid parcel id",
		})
	}
	p, err := pc.Service.Get(c.Context(), id)
	if err != nil {
		return pc.sendErrorWithLog(c, err)
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status: fiber.StatusOK,
		Data:   p,
	})
}

// ListMine lists the authenticated caller's own parcels.
func (pc *ParcelController) ListMine(c *fiber.Ctx) error {
	caller, ok := middleware.CallerFromCtx(c)
	if !ok {
		return pc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}
	parcels, err := pc.Service.ListByCreator(c.Context(), caller.Email)
	if err != nil {
		return pc.sendErrorWithLog(c, err)
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status: fiber.StatusOK,
		Data:   parcels,
	})
}

// Assign records a rider on a parcel and moves it to assigned. Admin only.
func (pc *ParcelController) Assign(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid parcel id",
		})
	}
	var req parcelTypes.AssignRiderRequest
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
	caller, _ := middleware.CallerFromCtx(c)

	p, err := pc.Service.AssignRider(c.Context(), id, parcelModel.AssignedRider{
		RiderID: req.RiderID,
		Name:    req.RiderName,
		Email:   req.RiderEmail,
	}, tracking.Actor{Role: caller.Role.String(), Email: caller.Email})
	if err != nil {
		return pc.sendErrorWithLog(c, err)
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Rider assigned successfully",
		Data:    p,
	})
}

// UpdateStatus advances a parcel on behalf of its assigned rider.
func (pc *ParcelController) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid parcel id",
		})
	}
	var req parcelTypes.UpdateStatusRequest
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
	caller, _ := middleware.CallerFromCtx(c)

	p, err := pc.Service.UpdateStatusByRider(c.Context(), id, parcelModel.Status(req.Status),
		tracking.Actor{Role: caller.Role.String(), Email: caller.Email})
	if err != nil {
		return pc.sendErrorWithLog(c, err)
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcel status updated",
		Data:    p,
	})
}

// CashOut settles the rider's earning for a delivered parcel.
func (pc *ParcelController) CashOut(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid parcel id",
		})
	}
	caller, _ := middleware.CallerFromCtx(c)

	earning, err := pc.Service.CashOut(c.Context(), id, caller.Email)
	if err != nil {
		return pc.sendErrorWithLog(c, err)
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Cash-out successful",
		Data:    fiber.Map{"earning": earning},
	})
}

// RiderPending lists the rider's parcels still in motion.
func (pc *ParcelController) RiderPending(c *fiber.Ctx) error {
	caller, _ := middleware.CallerFromCtx(c)
	parcels, err := pc.Service.PendingForRider(c.Context(), caller.Email)
	if err != nil {
		return pc.sendErrorWithLog(c, err)
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status: fiber.StatusOK,
		Data:   parcels,
	})
}

// RiderCompleted lists the rider's delivered parcels.
func (pc *ParcelController) RiderCompleted(c *fiber.Ctx) error {
	caller, _ := middleware.CallerFromCtx(c)
	parcels, err := pc.Service.CompletedForRider(c.Context(), caller.Email)
	if err != nil {
		return pc.sendErrorWithLog(c, err)
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status: fiber.StatusOK,
		Data:   parcels,
	})
}

// Delete removes a parcel. Admin override; the tracking ledger keeps its
// entries.
func (pc *ParcelController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid parcel id",
		})
	}
	if err := pc.Service.Delete(c.Context(), id); err != nil {
		return pc.sendErrorWithLog(c, err)
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcel deleted",
	})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
