package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"profast/models/payment"
	"profast/repository"
)

// PaymentRepo implements repository.PaymentStore. The unique index on
// transaction_id makes the insert the idempotency check.
type PaymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) Insert(ctx context.Context, p *payment.Payment) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrDuplicateTransaction
	}
	return err
}

func (r *PaymentRepo) ListByEmail(ctx context.Context, email string) ([]payment.Payment, error) {
	var payments []payment.Payment
	err := r.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}

func (r *PaymentRepo) ListByParcel(ctx context.Context, parcelID uint) ([]payment.Payment, error) {
	var payments []payment.Payment
	err := r.db.WithContext(ctx).
		Where("parcel_id = ?", parcelID).
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}
