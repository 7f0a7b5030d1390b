package parcel

import (
	"time"
)

// AssignedRider is the single rider authorized to advance a parcel past
// the assigned status. Stored embedded on the parcel row.
type AssignedRider struct {
	RiderID uint   `gorm:"column:assigned_rider_id" json:"rider_id,omitempty"`
	Name    string `gorm:"column:assigned_rider_name;size:120" json:"name,omitempty"`
	Email   string `gorm:"column:assigned_rider_email;size:255;index" json:"email,omitempty"`
}

// Parcel represents one shipment from submission through delivery.
type Parcel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackingID string `gorm:"size:50;uniqueIndex;not null" json:"tracking_id"`

	Status        Status        `gorm:"size:20;not null;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"size:10;not null;default:unpaid" json:"payment_status"`

	CreatedByEmail string `gorm:"size:255;not null;index" json:"created_by_email"`
	CreatedByName  string `gorm:"size:120" json:"created_by_name"`

	AssignedRider AssignedRider `gorm:"embedded" json:"assigned_rider"`

	ParcelType     string `gorm:"size:50" json:"parcel_type"`
	SenderRegion   string `gorm:"size:100;not null" json:"sender_region"`
	ReceiverRegion string `gorm:"size:100;not null" json:"receiver_region"`
	SenderAddress  string `gorm:"type:text" json:"sender_address"`
	ReceiverName   string `gorm:"size:120" json:"receiver_name"`
	ReceiverAddr   string `gorm:"type:text" json:"receiver_address"`

	DeliveryCost float64 `gorm:"type:decimal(10,2);not null" json:"delivery_cost"`

	CashedOut   bool       `gorm:"default:false" json:"cashed_out"`
	CashedOutAt *time.Time `json:"cashed_out_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Parcel model
func (Parcel) TableName() string {
	return "parcels"
}

// Assigned reports whether a rider has been recorded on the parcel.
func (p *Parcel) Assigned() bool {
	return p.AssignedRider.Email != ""
}

// EarningRate is the rider's share of the delivery cost. Intra-region
// deliveries pay the higher share; this is a pricing policy, keep in sync
// with the published rider terms.
func (p *Parcel) EarningRate() float64 {
	if p.SenderRegion == p.ReceiverRegion {
		return 0.8
	}
	return 0.3
}

// Earning computes the rider payout for this parcel.
func (p *Parcel) Earning() float64 {
	return p.DeliveryCost * p.EarningRate()
}
