package tracking

import (
	"time"
)

// Actor identifies who caused a tracking event. System-generated events
// use the "system" role with a service email.
type Actor struct {
	Role  string `gorm:"column:updated_by_role;size:20" json:"role"`
	Email string `gorm:"column:updated_by_email;size:255" json:"email"`
}

// Event is one immutable audit record: at Timestamp, the parcel identified
// by TrackingID entered Status. Events are append-only; no update or delete
// path exists anywhere in the codebase.
type Event struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackingID string `gorm:"size:50;not null;index:idx_tracking_events_lookup,priority:1" json:"tracking_id"`

	Status   string `gorm:"size:20;not null" json:"status"`
	Message  string `gorm:"type:text;not null" json:"message"`
	Location string `gorm:"size:255" json:"location,omitempty"`
	Details  string `gorm:"type:text" json:"details,omitempty"`

	UpdatedBy Actor `gorm:"embedded" json:"updated_by"`

	Timestamp time.Time `gorm:"autoCreateTime;index:idx_tracking_events_lookup,priority:2" json:"timestamp"`
}

// TableName sets the table name for the Event model
func (Event) TableName() string {
	return "tracking_events"
}

// SystemActor is the pseudo-actor recorded on automated events such as
// payment reconciliation.
func SystemActor() Actor {
	return Actor{Role: "system", Email: "system@profast.io"}
}

// AllowedWriteStatuses are the status values accepted on the direct
// tracking-append endpoint. Internally generated transition events are not
// restricted to this set.
var AllowedWriteStatuses = map[string]bool{
	"submitted": true,
	"paid":      true,
	"assigned":  true,
	"picked-up": true,
	"delivered": true,
}
