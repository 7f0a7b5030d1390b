package rider

import (
	"time"
)

// RiderStatus of a rider application.
type RiderStatus string

const (
	RiderStatusPending  RiderStatus = "pending"
	RiderStatusActive   RiderStatus = "active"
	RiderStatusRejected RiderStatus = "rejected"
	RiderStatusInactive RiderStatus = "inactive"
)

func (rs RiderStatus) String() string {
	return string(rs)
}

func (rs RiderStatus) IsValid() bool {
	switch rs {
	case RiderStatusPending, RiderStatusActive, RiderStatusRejected, RiderStatusInactive:
		return true
	default:
		return false
	}
}

// Rider is an actor eligible to carry parcels. Approving a rider (status
// active) also promotes the matching user identity's role to rider; the
// two writes are sequential, not transactional, and approval may be
// re-run safely to reconcile.
type Rider struct {
	ID       uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string      `gorm:"size:120;not null" json:"name"`
	Email    string      `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone    string      `gorm:"size:20" json:"phone"`
	District string      `gorm:"size:100;index" json:"district"`
	Status   RiderStatus `gorm:"size:20;not null;default:pending;index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Rider model
func (Rider) TableName() string {
	return "riders"
}
