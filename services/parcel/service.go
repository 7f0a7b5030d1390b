// Package parcel holds the parcel lifecycle service: creation, the
// status state machine, rider assignment and cash-out. Every successful
// transition appends a matching tracking-ledger event; the append is part
// of the operation, so an append failure is surfaced even though the
// status write has already committed.
package parcel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"profast/apperrors"
	"profast/logger"
	parcelModel "profast/models/parcel"
	"profast/models/tracking"
	"profast/repository"
	"profast/utils"
)

// Service owns the parcel state machine.
type Service struct {
	parcels repository.ParcelStore
	events  repository.EventStore
}

func NewService(parcels repository.ParcelStore, events repository.EventStore) *Service {
	return &Service{parcels: parcels, events: events}
}

// CreateInput carries the validated fields of a parcel submission.
type CreateInput struct {
	ParcelType     string
	SenderRegion   string
	ReceiverRegion string
	SenderAddress  string
	ReceiverName   string
	ReceiverAddr   string
	DeliveryCost   float64
}

// Create submits a new parcel: generates the tracking id, stores the
// parcel as submitted and appends the initial ledger event.
func (s *Service) Create(ctx context.Context, in CreateInput, actor tracking.Actor) (*parcelModel.Parcel, error) {
	p := &parcelModel.Parcel{
		TrackingID:     utils.GenerateTrackingID(),
		Status:         parcelModel.StatusSubmitted,
		PaymentStatus:  parcelModel.PaymentStatusUnpaid,
		CreatedByEmail: actor.Email,
		ParcelType:     in.ParcelType,
		SenderRegion:   in.SenderRegion,
		ReceiverRegion: in.ReceiverRegion,
		SenderAddress:  in.SenderAddress,
		ReceiverName:   in.ReceiverName,
		ReceiverAddr:   in.ReceiverAddr,
		DeliveryCost:   in.DeliveryCost,
	}
	if err := s.parcels.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("%w: insert parcel: %v", apperrors.ErrStorage, err)
	}
	if err := s.appendEvent(ctx, p.TrackingID, parcelModel.StatusSubmitted,
		fmt.Sprintf("Parcel submitted by %s", actor.Email), actor); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns one parcel by its store id.
func (s *Service) Get(ctx context.Context, id uint) (*parcelModel.Parcel, error) {
	p, err := s.parcels.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return p, nil
}

// ListByCreator returns the parcels submitted by the given email.
func (s *Service) ListByCreator(ctx context.Context, email string) ([]parcelModel.Parcel, error) {
	parcels, err := s.parcels.ListByCreator(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return parcels, nil
}

// AssignRider moves a submitted or paid parcel to assigned with the given
// rider recorded, as one conditional update. A parcel already assigned or
// further along fails with an invalid-transition error.
func (s *Service) AssignRider(ctx context.Context, parcelID uint, r parcelModel.AssignedRider, actor tracking.Actor) (*parcelModel.Parcel, error) {
	p, err := s.Get(ctx, parcelID)
	if err != nil {
		return nil, err
	}
	matched, err := s.parcels.Assign(ctx, parcelID, r)
	if err != nil {
		return nil, fmt.Errorf("%w: assign rider: %v", apperrors.ErrStorage, err)
	}
	if !matched {
		return nil, apperrors.ErrInvalidTransition
	}
	if err := s.appendEvent(ctx, p.TrackingID, parcelModel.StatusAssigned,
		fmt.Sprintf("Rider %s assigned to parcel", r.Name), actor); err != nil {
		return nil, err
	}
	return s.Get(ctx, parcelID)
}

// UpdateStatusByRider advances a parcel to in-transit or delivered on
// behalf of its assigned rider. The caller must be the recorded rider and
// the target must be the immediate next status; the write re-checks both
// conditions so racing updates cannot double-apply.
func (s *Service) UpdateStatusByRider(ctx context.Context, parcelID uint, target parcelModel.Status, actor tracking.Actor) (*parcelModel.Parcel, error) {
	p, err := s.Get(ctx, parcelID)
	if err != nil {
		return nil, err
	}
	if p.AssignedRider.Email != actor.Email {
		return nil, apperrors.ErrForbidden
	}
	if !target.IsRiderTransition() || p.Status.Next() != target {
		return nil, apperrors.ErrInvalidTransition
	}
	matched, err := s.parcels.AdvanceStatus(ctx, parcelID, actor.Email, p.Status, target)
	if err != nil {
		return nil, fmt.Errorf("%w: advance status: %v", apperrors.ErrStorage, err)
	}
	if !matched {
		return nil, apperrors.ErrInvalidTransition
	}
	if err := s.appendEvent(ctx, p.TrackingID, target, transitionMessage(target, actor), actor); err != nil {
		return nil, err
	}
	return s.Get(ctx, parcelID)
}

// CashOut settles the rider's earning for a delivered parcel exactly
// once. The guard (owned by caller, delivered, not yet cashed out) and
// the cashed_out flip are one conditional update, so two concurrent
// attempts produce one success. Every failure cause is reported as
// not-found; callers are not told which precondition failed.
func (s *Service) CashOut(ctx context.Context, parcelID uint, riderEmail string) (earning float64, err error) {
	p, err := s.parcels.ByID(ctx, parcelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	matched, err := s.parcels.CashOut(ctx, parcelID, riderEmail, time.Now())
	if err != nil {
		return 0, fmt.Errorf("%w: cash out: %v", apperrors.ErrStorage, err)
	}
	if !matched {
		return 0, apperrors.ErrNotFound
	}
	return p.Earning(), nil
}

// PendingForRider lists the rider's parcels still in motion.
func (s *Service) PendingForRider(ctx context.Context, riderEmail string) ([]parcelModel.Parcel, error) {
	parcels, err := s.parcels.ListByRider(ctx, riderEmail,
		[]parcelModel.Status{parcelModel.StatusAssigned, parcelModel.StatusInTransit})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return parcels, nil
}

// CompletedForRider lists the rider's delivered parcels.
func (s *Service) CompletedForRider(ctx context.Context, riderEmail string) ([]parcelModel.Parcel, error) {
	parcels, err := s.parcels.ListByRider(ctx, riderEmail,
		[]parcelModel.Status{parcelModel.StatusDelivered})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return parcels, nil
}

// Delete removes a parcel. Administrative override: ledger entries
// referencing the parcel are kept, so the audit trail survives the row.
func (s *Service) Delete(ctx context.Context, id uint) error {
	matched, err := s.parcels.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: delete parcel: %v", apperrors.ErrStorage, err)
	}
	if !matched {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *Service) appendEvent(ctx context.Context, trackingID string, status parcelModel.Status, message string, actor tracking.Actor) error {
	e := &tracking.Event{
		TrackingID: trackingID,
		Status:     status.String(),
		Message:    message,
		UpdatedBy:  actor,
	}
	if err := s.events.Append(ctx, e); err != nil {
		// The status write has already committed; the missing ledger entry
		// is an operator-reconciled inconsistency, not a rollback.
		logger.Error("Failed to append tracking event for "+trackingID, err)
		return fmt.Errorf("%w: append tracking event: %v", apperrors.ErrStorage, err)
	}
	return nil
}

func transitionMessage(target parcelModel.Status, actor tracking.Actor) string {
	switch target {
	case parcelModel.StatusInTransit:
		return fmt.Sprintf("Picked up by %s", actor.Email)
	case parcelModel.StatusDelivered:
		return fmt.Sprintf("Delivered by %s", actor.Email)
	default:
		return fmt.Sprintf("Status changed to %s", target)
	}
}
