// Package tracking exposes the tracking ledger: unconditional appends
// and time-ordered history reads. No update or delete exists.
package tracking

import (
	"context"
	"fmt"

	"profast/apperrors"
	trackingModel "profast/models/tracking"
	"profast/repository"
)

type Service struct {
	events repository.EventStore
}

func NewService(events repository.EventStore) *Service {
	return &Service{events: events}
}

// AppendInput carries a well-formed tracking event. Status restriction
// for direct client appends is enforced at the request layer; internal
// transition appends are not restricted.
type AppendInput struct {
	TrackingID string
	Status     string
	Message    string
	Location   string
	Details    string
}

// Append records one event. It never fails beyond well-formedness and
// storage errors.
func (s *Service) Append(ctx context.Context, in AppendInput, actor trackingModel.Actor) (*trackingModel.Event, error) {
	if in.TrackingID == "" || in.Status == "" {
		return nil, apperrors.ErrValidation
	}
	e := &trackingModel.Event{
		TrackingID: in.TrackingID,
		Status:     in.Status,
		Message:    in.Message,
		Location:   in.Location,
		Details:    in.Details,
		UpdatedBy:  actor,
	}
	if err := s.events.Append(ctx, e); err != nil {
		return nil, fmt.Errorf("%w: append event: %v", apperrors.ErrStorage, err)
	}
	return e, nil
}

// History returns all events for a tracking id, oldest first.
func (s *Service) History(ctx context.Context, trackingID string) ([]trackingModel.Event, error) {
	if trackingID == "" {
		return nil, apperrors.ErrValidation
	}
	events, err := s.events.History(ctx, trackingID)
	if err != nil {
		return nil, fmt.Errorf("%w: read history: %v", apperrors.ErrStorage, err)
	}
	return events, nil
}
