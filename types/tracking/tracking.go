package tracking

import (
	"fmt"

	trackingModel "profast/models/tracking"
)

type AppendEventRequest struct {
	TrackingID string `json:"tracking_id" validate:"required"`
	Status     string `json:"status" validate:"required"`
	Message    string `json:"message"`
	Location   string `json:"location"`
	Details    string `json:"details"`
}

// Validate validates the AppendEventRequest fields
func (r *AppendEventRequest) Validate() error {
	if r.TrackingID == "" {
		return fmt.Errorf("tracking_id is required")
	}
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	if !trackingModel.AllowedWriteStatuses[r.Status] {
		return fmt.Errorf("status must be one of 'submitted', 'paid', 'assigned', 'picked-up', 'delivered'")
	}
	return nil
}
