package user

import (
	"fmt"
)

type UpsertUserRequest struct {
	Email string `json:"email" validate:"required"`
	Name  string `json:"name"`
}

// Validate validates the UpsertUserRequest fields
func (r *UpsertUserRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	return nil
}
