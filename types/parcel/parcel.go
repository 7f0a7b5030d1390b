package parcel

import (
	"fmt"

	parcelModel "profast/models/parcel"
)

type CreateParcelRequest struct {
	ParcelType      string  `json:"parcel_type"`
	SenderRegion    string  `json:"sender_region" validate:"required"`
	ReceiverRegion  string  `json:"receiver_region" validate:"required"`
	SenderAddress   string  `json:"sender_address"`
	ReceiverName    string  `json:"receiver_name"`
	ReceiverAddress string  `json:"receiver_address"`
	DeliveryCost    float64 `json:"delivery_cost" validate:"required"`
}

// Validate validates the CreateParcelRequest fields
func (r *CreateParcelRequest) Validate() error {
	if r.SenderRegion == "" {
		return fmt.Errorf("sender_region is required")
	}
	if r.ReceiverRegion == "" {
		return fmt.Errorf("receiver_region is required")
	}
	if r.DeliveryCost <= 0 {
		return fmt.Errorf("delivery_cost must be greater than zero")
	}
	return nil
}

type AssignRiderRequest struct {
	RiderID    uint   `json:"rider_id" validate:"required"`
	RiderName  string `json:"rider_name" validate:"required"`
	RiderEmail string `json:"rider_email" validate:"required"`
}

// Validate validates the AssignRiderRequest fields
func (r *AssignRiderRequest) Validate() error {
	if r.RiderID == 0 {
		return fmt.Errorf("rider_id is required")
	}
	if r.RiderName == "" {
		return fmt.Errorf("rider_name is required")
	}
	if r.RiderEmail == "" {
		return fmt.Errorf("rider_email is required")
	}
	return nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Validate validates the UpdateStatusRequest fields
func (r *UpdateStatusRequest) Validate() error {
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	if !parcelModel.Status(r.Status).IsRiderTransition() {
		return fmt.Errorf("status must be either 'in-transit' or 'delivered'")
	}
	return nil
}
