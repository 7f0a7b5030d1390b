package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"profast/models/rider"
	"profast/repository"
)

// RiderRepo implements repository.RiderStore.
type RiderRepo struct {
	db *gorm.DB
}

func NewRiderRepo(db *gorm.DB) *RiderRepo {
	return &RiderRepo{db: db}
}

func (r *RiderRepo) Insert(ctx context.Context, rd *rider.Rider) error {
	return r.db.WithContext(ctx).Create(rd).Error
}

func (r *RiderRepo) ByID(ctx context.Context, id uint) (*rider.Rider, error) {
	var rd rider.Rider
	if err := r.db.WithContext(ctx).First(&rd, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &rd, nil
}

func (r *RiderRepo) List(ctx context.Context, status rider.RiderStatus) ([]rider.Rider, error) {
	var riders []rider.Rider
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&riders).Error
	return riders, err
}

func (r *RiderRepo) SetStatus(ctx context.Context, id uint, status rider.RiderStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&rider.Rider{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected > 0, res.Error
}

func (r *RiderRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&rider.Rider{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *RiderRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&rider.Rider{}).Count(&n).Error
	return n, err
}
