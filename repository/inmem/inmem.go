// Package inmem holds mutex-guarded in-memory implementations of the
// repository contracts. The conditional updates hold the store lock for
// the whole check-and-set, giving the same atomicity as the WHERE-guarded
// SQL updates in repository/postgres; the service tests run their race
// scenarios against these.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"profast/models/parcel"
	"profast/models/payment"
	"profast/models/rider"
	"profast/models/tracking"
	"profast/models/user"
	"profast/repository"
)

// ParcelStore is an in-memory repository.ParcelStore.
type ParcelStore struct {
	mu      sync.Mutex
	nextID  uint
	parcels map[uint]parcel.Parcel
}

func NewParcelStore() *ParcelStore {
	return &ParcelStore{parcels: make(map[uint]parcel.Parcel)}
}

func (s *ParcelStore) Insert(_ context.Context, p *parcel.Parcel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p.ID = s.nextID
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.parcels[p.ID] = *p
	return nil
}

func (s *ParcelStore) ByID(_ context.Context, id uint) (*parcel.Parcel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parcels[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *ParcelStore) ByTrackingID(_ context.Context, trackingID string) (*parcel.Parcel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.parcels {
		if p.TrackingID == trackingID {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *ParcelStore) ListByCreator(_ context.Context, email string) ([]parcel.Parcel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []parcel.Parcel
	for _, p := range s.parcels {
		if p.CreatedByEmail == email {
			out = append(out, p)
		}
	}
	sortParcels(out)
	return out, nil
}

func (s *ParcelStore) ListByRider(_ context.Context, email string, statuses []parcel.Status) ([]parcel.Parcel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []parcel.Parcel
	for _, p := range s.parcels {
		if p.AssignedRider.Email != email {
			continue
		}
		for _, st := range statuses {
			if p.Status == st {
				out = append(out, p)
				break
			}
		}
	}
	sortParcels(out)
	return out, nil
}

func (s *ParcelStore) Assign(_ context.Context, id uint, r parcel.AssignedRider) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parcels[id]
	if !ok || !p.Status.CanAssign() || p.Assigned() {
		return false, nil
	}
	p.Status = parcel.StatusAssigned
	p.AssignedRider = r
	p.UpdatedAt = time.Now()
	s.parcels[id] = p
	return true, nil
}

func (s *ParcelStore) AdvanceStatus(_ context.Context, id uint, riderEmail string, from, to parcel.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parcels[id]
	if !ok || p.Status != from || p.AssignedRider.Email != riderEmail {
		return false, nil
	}
	p.Status = to
	p.UpdatedAt = time.Now()
	s.parcels[id] = p
	return true, nil
}

func (s *ParcelStore) MarkPaid(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parcels[id]
	if !ok {
		return false, nil
	}
	if p.Status == parcel.StatusSubmitted {
		p.Status = parcel.StatusPaid
	}
	p.PaymentStatus = parcel.PaymentStatusPaid
	p.UpdatedAt = time.Now()
	s.parcels[id] = p
	return true, nil
}

func (s *ParcelStore) CashOut(_ context.Context, id uint, riderEmail string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parcels[id]
	if !ok || p.AssignedRider.Email != riderEmail || p.Status != parcel.StatusDelivered || p.CashedOut {
		return false, nil
	}
	p.CashedOut = true
	p.CashedOutAt = &at
	p.UpdatedAt = time.Now()
	s.parcels[id] = p
	return true, nil
}

func (s *ParcelStore) Delete(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.parcels[id]; !ok {
		return false, nil
	}
	delete(s.parcels, id)
	return true, nil
}

func (s *ParcelStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.parcels)), nil
}

func (s *ParcelStore) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, p := range s.parcels {
		if !p.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (s *ParcelStore) CountByStatus(_ context.Context) (map[parcel.Status]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[parcel.Status]int64)
	for _, p := range s.parcels {
		counts[p.Status]++
	}
	return counts, nil
}

func sortParcels(parcels []parcel.Parcel) {
	sort.Slice(parcels, func(i, j int) bool {
		return parcels[i].ID < parcels[j].ID
	})
}

// EventStore is an in-memory repository.EventStore.
type EventStore struct {
	mu     sync.Mutex
	nextID uint
	events []tracking.Event
}

func NewEventStore() *EventStore {
	return &EventStore{}
}

func (s *EventStore) Append(_ context.Context, e *tracking.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	e.ID = s.nextID
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	s.events = append(s.events, *e)
	return nil
}

func (s *EventStore) History(_ context.Context, trackingID string) ([]tracking.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []tracking.Event
	for _, e := range s.events {
		if e.TrackingID == trackingID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// UserStore is an in-memory repository.UserStore.
type UserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]user.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]user.User)}
}

func (s *UserStore) Upsert(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if existing, ok := s.users[u.Email]; ok {
		existing.Name = u.Name
		existing.LastLogInAt = &now
		existing.UpdatedAt = now
		s.users[u.Email] = existing
		*u = existing
		return nil
	}
	s.nextID++
	u.ID = s.nextID
	if u.Role == "" {
		u.Role = user.RoleUser
	}
	u.LastLogInAt = &now
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.Email] = *u
	return nil
}

func (s *UserStore) ByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) SetRole(_ context.Context, email, name string, role user.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if existing, ok := s.users[email]; ok {
		existing.Role = role
		existing.UpdatedAt = now
		s.users[email] = existing
		return nil
	}
	s.nextID++
	s.users[email] = user.User{
		ID:        s.nextID,
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (s *UserStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

// RiderStore is an in-memory repository.RiderStore.
type RiderStore struct {
	mu     sync.Mutex
	nextID uint
	riders map[uint]rider.Rider
}

func NewRiderStore() *RiderStore {
	return &RiderStore{riders: make(map[uint]rider.Rider)}
}

func (s *RiderStore) Insert(_ context.Context, r *rider.Rider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	r.ID = s.nextID
	if r.Status == "" {
		r.Status = rider.RiderStatusPending
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	s.riders[r.ID] = *r
	return nil
}

func (s *RiderStore) ByID(_ context.Context, id uint) (*rider.Rider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.riders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (s *RiderStore) List(_ context.Context, status rider.RiderStatus) ([]rider.Rider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []rider.Rider
	for _, r := range s.riders {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *RiderStore) SetStatus(_ context.Context, id uint, status rider.RiderStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.riders[id]
	if !ok {
		return false, nil
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	s.riders[id] = r
	return true, nil
}

func (s *RiderStore) Delete(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.riders[id]; !ok {
		return false, nil
	}
	delete(s.riders, id)
	return true, nil
}

func (s *RiderStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.riders)), nil
}

// PaymentStore is an in-memory repository.PaymentStore.
type PaymentStore struct {
	mu       sync.Mutex
	nextID   uint
	payments []payment.Payment
}

func NewPaymentStore() *PaymentStore {
	return &PaymentStore{}
}

func (s *PaymentStore) Insert(_ context.Context, p *payment.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.payments {
		if existing.TransactionID == p.TransactionID {
			return repository.ErrDuplicateTransaction
		}
	}
	s.nextID++
	p.ID = s.nextID
	if p.PaymentDate.IsZero() {
		p.PaymentDate = time.Now()
	}
	s.payments = append(s.payments, *p)
	return nil
}

func (s *PaymentStore) ListByEmail(_ context.Context, email string) ([]payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []payment.Payment
	for _, p := range s.payments {
		if p.UserEmail == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *PaymentStore) ListByParcel(_ context.Context, parcelID uint) ([]payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []payment.Payment
	for _, p := range s.payments {
		if p.ParcelID == parcelID {
			out = append(out, p)
		}
	}
	return out, nil
}
