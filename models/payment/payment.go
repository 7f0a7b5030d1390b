package payment

import (
	"time"
)

// Payment is a settlement record created once per successful external
// charge confirmation and immutable thereafter. TransactionID doubles as
// the idempotency key: a duplicate confirmation for the same transaction
// is rejected instead of producing a second row.
type Payment struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ParcelID      uint    `gorm:"not null;index" json:"parcel_id"`
	TrackingID    string  `gorm:"size:50;not null;index" json:"tracking_id"`
	UserEmail     string  `gorm:"size:255;not null;index" json:"user_email"`
	PaymentMethod string  `gorm:"size:50;not null" json:"payment_method"`
	Amount        float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status        string  `gorm:"size:20;not null;default:succeeded" json:"status"`
	TransactionID string  `gorm:"size:120;not null;uniqueIndex" json:"transaction_id"`

	PaymentDate time.Time `gorm:"autoCreateTime" json:"payment_date"`
}

// TableName sets the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
