package postgres

import (
	"context"

	"gorm.io/gorm"

	"profast/models/tracking"
)

// EventRepo implements repository.EventStore. Inserts only; the ledger
// has no update or delete path.
type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) Append(ctx context.Context, e *tracking.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EventRepo) History(ctx context.Context, trackingID string) ([]tracking.Event, error) {
	var events []tracking.Event
	err := r.db.WithContext(ctx).
		Where("tracking_id = ?", trackingID).
		Order("timestamp ASC").
		Find(&events).Error
	return events, err
}
