// Package admin aggregates dashboard counts across the stores.
package admin

import (
	"context"
	"fmt"

	"github.com/jinzhu/now"

	"profast/apperrors"
	"profast/models/parcel"
	"profast/repository"
)

type Service struct {
	parcels repository.ParcelStore
	users   repository.UserStore
	riders  repository.RiderStore
}

func NewService(parcels repository.ParcelStore, users repository.UserStore, riders repository.RiderStore) *Service {
	return &Service{parcels: parcels, users: users, riders: riders}
}

// Dashboard is the admin overview payload.
type Dashboard struct {
	TotalUsers      int64                   `json:"total_users"`
	TotalParcels    int64                   `json:"total_parcels"`
	TotalRiders     int64                   `json:"total_riders"`
	ParcelsToday    int64                   `json:"parcels_today"`
	ParcelsByStatus map[parcel.Status]int64 `json:"parcels_by_status"`
}

// Overview assembles the dashboard counts. Reads only.
func (s *Service) Overview(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{}
	var err error
	if d.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("%w: count users: %v", apperrors.ErrStorage, err)
	}
	if d.TotalParcels, err = s.parcels.Count(ctx); err != nil {
		return nil, fmt.Errorf("%w: count parcels: %v", apperrors.ErrStorage, err)
	}
	if d.TotalRiders, err = s.riders.Count(ctx); err != nil {
		return nil, fmt.Errorf("%w: count riders: %v", apperrors.ErrStorage, err)
	}
	if d.ParcelsToday, err = s.parcels.CountCreatedSince(ctx, now.BeginningOfDay()); err != nil {
		return nil, fmt.Errorf("%w: count today's parcels: %v", apperrors.ErrStorage, err)
	}
	if d.ParcelsByStatus, err = s.parcels.CountByStatus(ctx); err != nil {
		return nil, fmt.Errorf("%w: count parcels by status: %v", apperrors.ErrStorage, err)
	}
	return d, nil
}
