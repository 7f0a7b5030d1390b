package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"profast/models/parcel"
	"profast/repository"
)

// ParcelRepo implements repository.ParcelStore on GORM. The conditional
// updates rely on WHERE-guarded UPDATEs and RowsAffected, so two racing
// writers can never both match the same guard.
type ParcelRepo struct {
	db *gorm.DB
}

func NewParcelRepo(db *gorm.DB) *ParcelRepo {
	return &ParcelRepo{db: db}
}

func (r *ParcelRepo) Insert(ctx context.Context, p *parcel.Parcel) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ParcelRepo) ByID(ctx context.Context, id uint) (*parcel.Parcel, error) {
	var p parcel.Parcel
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ParcelRepo) ByTrackingID(ctx context.Context, trackingID string) (*parcel.Parcel, error) {
	var p parcel.Parcel
	if err := r.db.WithContext(ctx).First(&p, "tracking_id = ?", trackingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ParcelRepo) ListByCreator(ctx context.Context, email string) ([]parcel.Parcel, error) {
	var parcels []parcel.Parcel
	err := r.db.WithContext(ctx).
		Where("created_by_email = ?", email).
		Order("created_at DESC").
		Find(&parcels).Error
	return parcels, err
}

func (r *ParcelRepo) ListByRider(ctx context.Context, email string, statuses []parcel.Status) ([]parcel.Parcel, error) {
	var parcels []parcel.Parcel
	err := r.db.WithContext(ctx).
		Where("assigned_rider_email = ? AND status IN ?", email, statuses).
		Order("updated_at DESC").
		Find(&parcels).Error
	return parcels, err
}

func (r *ParcelRepo) Assign(ctx context.Context, id uint, rider parcel.AssignedRider) (bool, error) {
	res := r.db.WithContext(ctx).Model(&parcel.Parcel{}).
		Where("id = ? AND status IN ? AND (assigned_rider_email = '' OR assigned_rider_email IS NULL)",
			id, []parcel.Status{parcel.StatusSubmitted, parcel.StatusPaid}).
		Updates(map[string]interface{}{
			"status":               parcel.StatusAssigned,
			"assigned_rider_id":    rider.RiderID,
			"assigned_rider_name":  rider.Name,
			"assigned_rider_email": rider.Email,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *ParcelRepo) AdvanceStatus(ctx context.Context, id uint, riderEmail string, from, to parcel.Status) (bool, error) {
	res := r.db.WithContext(ctx).Model(&parcel.Parcel{}).
		Where("id = ? AND status = ? AND assigned_rider_email = ?", id, from, riderEmail).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}

func (r *ParcelRepo) MarkPaid(ctx context.Context, id uint) (bool, error) {
	// Status is the authoritative signal: a still-submitted parcel moves to
	// paid together with the payment_status flip. A parcel that already
	// advanced keeps its status and only reconciles payment_status.
	res := r.db.WithContext(ctx).Model(&parcel.Parcel{}).
		Where("id = ? AND status = ?", id, parcel.StatusSubmitted).
		Updates(map[string]interface{}{
			"status":         parcel.StatusPaid,
			"payment_status": parcel.PaymentStatusPaid,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	res = r.db.WithContext(ctx).Model(&parcel.Parcel{}).
		Where("id = ?", id).
		Update("payment_status", parcel.PaymentStatusPaid)
	return res.RowsAffected > 0, res.Error
}

func (r *ParcelRepo) CashOut(ctx context.Context, id uint, riderEmail string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&parcel.Parcel{}).
		Where("id = ? AND assigned_rider_email = ? AND status = ? AND cashed_out = ?",
			id, riderEmail, parcel.StatusDelivered, false).
		Updates(map[string]interface{}{
			"cashed_out":    true,
			"cashed_out_at": at,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *ParcelRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&parcel.Parcel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *ParcelRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&parcel.Parcel{}).Count(&n).Error
	return n, err
}

func (r *ParcelRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&parcel.Parcel{}).
		Where("created_at >= ?", since).
		Count(&n).Error
	return n, err
}

func (r *ParcelRepo) CountByStatus(ctx context.Context) (map[parcel.Status]int64, error) {
	rows := []struct {
		Status parcel.Status
		Total  int64
	}{}
	err := r.db.WithContext(ctx).Model(&parcel.Parcel{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[parcel.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
