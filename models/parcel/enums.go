package parcel

// Status of a parcel. The lifecycle is strictly forward-moving and single
// path: submitted -> paid -> assigned -> in-transit -> delivered.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusPaid      Status = "paid"
	StatusAssigned  Status = "assigned"
	StatusInTransit Status = "in-transit"
	StatusDelivered Status = "delivered"
)

// PaymentStatus tracks whether the sender's charge has been reconciled.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// Helper methods for Status
func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusSubmitted, StatusPaid, StatusAssigned, StatusInTransit, StatusDelivered:
		return true
	default:
		return false
	}
}

// Next returns the only status that may legally follow s. Delivered is
// terminal and returns an empty status.
func (s Status) Next() Status {
	switch s {
	case StatusSubmitted:
		return StatusPaid
	case StatusPaid:
		return StatusAssigned
	case StatusAssigned:
		return StatusInTransit
	case StatusInTransit:
		return StatusDelivered
	default:
		return ""
	}
}

// CanAssign reports whether a rider may be assigned in this status.
func (s Status) CanAssign() bool {
	return s == StatusSubmitted || s == StatusPaid
}

// IsRiderTransition reports whether s is a status a rider may move a
// parcel into.
func (s Status) IsRiderTransition() bool {
	return s == StatusInTransit || s == StatusDelivered
}

// GetAllStatuses returns every valid parcel status in lifecycle order.
func GetAllStatuses() []Status {
	return []Status{
		StatusSubmitted,
		StatusPaid,
		StatusAssigned,
		StatusInTransit,
		StatusDelivered,
	}
}
