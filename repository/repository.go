// Package repository defines the persistence contracts the services are
// built on. The conditional-update methods (Assign, AdvanceStatus,
// CashOut) must only apply their write when the guard filter still
// matches, reporting the outcome through the matched return value; the
// state-machine and exactly-once guarantees depend on that semantics.
package repository

import (
	"context"
	"errors"
	"time"

	"profast/models/parcel"
	"profast/models/payment"
	"profast/models/rider"
	"profast/models/tracking"
	"profast/models/user"
)

var (
	// ErrNotFound is returned by point lookups when no row matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateTransaction is returned when a payment insert collides
	// with an existing transaction id.
	ErrDuplicateTransaction = errors.New("duplicate transaction id")
)

// ParcelStore persists parcels. All mutating methods besides Insert are
// conditional: they report matched=false instead of writing when the
// parcel no longer satisfies the guard.
type ParcelStore interface {
	Insert(ctx context.Context, p *parcel.Parcel) error
	ByID(ctx context.Context, id uint) (*parcel.Parcel, error)
	ByTrackingID(ctx context.Context, trackingID string) (*parcel.Parcel, error)
	ListByCreator(ctx context.Context, email string) ([]parcel.Parcel, error)
	ListByRider(ctx context.Context, email string, statuses []parcel.Status) ([]parcel.Parcel, error)

	// Assign sets the rider and moves status to assigned, only while the
	// parcel is still submitted or paid with no rider recorded.
	Assign(ctx context.Context, id uint, r parcel.AssignedRider) (matched bool, err error)
	// AdvanceStatus moves status from exactly `from` to `to`, only while
	// the parcel is still assigned to riderEmail.
	AdvanceStatus(ctx context.Context, id uint, riderEmail string, from, to parcel.Status) (matched bool, err error)
	// MarkPaid sets payment_status to paid, advancing status
	// submitted -> paid when applicable. matched=false means the parcel
	// does not exist.
	MarkPaid(ctx context.Context, id uint) (matched bool, err error)
	// CashOut flips cashed_out exactly once: the guard requires owner
	// match, delivered status and cashed_out=false in one update.
	CashOut(ctx context.Context, id uint, riderEmail string, at time.Time) (matched bool, err error)

	Delete(ctx context.Context, id uint) (matched bool, err error)
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountByStatus(ctx context.Context) (map[parcel.Status]int64, error)
}

// EventStore is the append-only tracking ledger.
type EventStore interface {
	Append(ctx context.Context, e *tracking.Event) error
	History(ctx context.Context, trackingID string) ([]tracking.Event, error)
}

// UserStore persists caller identities and their roles.
type UserStore interface {
	Upsert(ctx context.Context, u *user.User) error
	ByEmail(ctx context.Context, email string) (*user.User, error)
	// SetRole upserts the identity row for email with the given role,
	// creating it when absent. Setting the same role twice is a no-op.
	SetRole(ctx context.Context, email, name string, role user.Role) error
	Count(ctx context.Context) (int64, error)
}

// RiderStore persists rider applications.
type RiderStore interface {
	Insert(ctx context.Context, r *rider.Rider) error
	ByID(ctx context.Context, id uint) (*rider.Rider, error)
	List(ctx context.Context, status rider.RiderStatus) ([]rider.Rider, error)
	SetStatus(ctx context.Context, id uint, status rider.RiderStatus) (matched bool, err error)
	Delete(ctx context.Context, id uint) (matched bool, err error)
	Count(ctx context.Context) (int64, error)
}

// PaymentStore persists settlement records.
type PaymentStore interface {
	Insert(ctx context.Context, p *payment.Payment) error
	ListByEmail(ctx context.Context, email string) ([]payment.Payment, error)
	ListByParcel(ctx context.Context, parcelID uint) ([]payment.Payment, error)
}
