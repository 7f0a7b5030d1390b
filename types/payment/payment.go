package payment

import (
	"fmt"
)

type CreateIntentRequest struct {
	AmountMinorUnits int64  `json:"amount" validate:"required"`
	Currency         string `json:"currency" validate:"required"`
}

// Validate validates the CreateIntentRequest fields
func (r *CreateIntentRequest) Validate() error {
	if r.AmountMinorUnits <= 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	if r.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	return nil
}

type RecordPaymentRequest struct {
	ParcelID      uint   `json:"parcel_id" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
	TransactionID string `json:"transaction_id" validate:"required"`
}

// Validate validates the RecordPaymentRequest fields
func (r *RecordPaymentRequest) Validate() error {
	if r.ParcelID == 0 {
		return fmt.Errorf("parcel_id is required")
	}
	if r.PaymentMethod == "" {
		return fmt.Errorf("payment_method is required")
	}
	if r.TransactionID == "" {
		return fmt.Errorf("transaction_id is required")
	}
	return nil
}
