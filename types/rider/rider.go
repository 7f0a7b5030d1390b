package rider

import (
	"fmt"

	riderModel "profast/models/rider"
)

type ApplyRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone"`
	District string `json:"district" validate:"required"`
}

// Validate validates the ApplyRequest fields
func (r *ApplyRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.District == "" {
		return fmt.Errorf("district is required")
	}
	return nil
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Validate validates the SetStatusRequest fields
func (r *SetStatusRequest) Validate() error {
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	if !riderModel.RiderStatus(r.Status).IsValid() {
		return fmt.Errorf("status must be one of 'pending', 'active', 'rejected', 'inactive'")
	}
	return nil
}
