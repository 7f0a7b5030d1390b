// Package payment is the settlement bridge: it reconciles external
// charge confirmations with parcels and hands out client secrets for the
// frontend to complete a charge. Rider earnings are not computed here;
// cash-out owns that and works off delivery_cost.
package payment

import (
	"context"
	"errors"
	"fmt"

	"profast/apperrors"
	paymentModel "profast/models/payment"
	"profast/models/tracking"
	"profast/repository"
)

// ChargeCreator obtains a client-side completion handle from the external
// payment gateway. The service never polls or confirms charge status.
type ChargeCreator interface {
	CreateCharge(ctx context.Context, amountMinorUnits int64, currency string) (clientSecret string, err error)
}

type Service struct {
	parcels  repository.ParcelStore
	payments repository.PaymentStore
	events   repository.EventStore
	gateway  ChargeCreator
}

func NewService(parcels repository.ParcelStore, payments repository.PaymentStore, events repository.EventStore, gateway ChargeCreator) *Service {
	return &Service{parcels: parcels, payments: payments, events: events, gateway: gateway}
}

// CreateIntent asks the gateway for a charge handle.
func (s *Service) CreateIntent(ctx context.Context, amountMinorUnits int64, currency string) (string, error) {
	if amountMinorUnits <= 0 || currency == "" {
		return "", apperrors.ErrValidation
	}
	secret, err := s.gateway.CreateCharge(ctx, amountMinorUnits, currency)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrGateway, err)
	}
	return secret, nil
}

// RecordInput is a confirmed external charge to reconcile.
type RecordInput struct {
	ParcelID      uint
	PaymentMethod string
	PayerEmail    string
	TransactionID string
}

// Record marks the parcel paid and stores the settlement record plus a
// system-actor ledger event. The parcel update and the two inserts are
// sequential writes, not a transaction; a failure after the parcel update
// leaves a documented inconsistency window recovered by re-running the
// confirmation (the duplicate transaction id then rejects a second
// Payment row).
func (s *Service) Record(ctx context.Context, in RecordInput) (*paymentModel.Payment, error) {
	if in.ParcelID == 0 || in.TransactionID == "" || in.PayerEmail == "" {
		return nil, apperrors.ErrValidation
	}
	p, err := s.parcels.ByID(ctx, in.ParcelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}

	matched, err := s.parcels.MarkPaid(ctx, in.ParcelID)
	if err != nil {
		return nil, fmt.Errorf("%w: mark paid: %v", apperrors.ErrStorage, err)
	}
	if !matched {
		return nil, apperrors.ErrNotFound
	}

	record := &paymentModel.Payment{
		ParcelID:      p.ID,
		TrackingID:    p.TrackingID,
		UserEmail:     in.PayerEmail,
		PaymentMethod: in.PaymentMethod,
		Amount:        p.DeliveryCost,
		Status:        "succeeded",
		TransactionID: in.TransactionID,
	}
	if err := s.payments.Insert(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicateTransaction) {
			return nil, fmt.Errorf("%w: transaction already recorded", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("%w: insert payment: %v", apperrors.ErrStorage, err)
	}

	event := &tracking.Event{
		TrackingID: p.TrackingID,
		Status:     "paid",
		Message:    "Payment received for parcel",
		UpdatedBy:  tracking.SystemActor(),
	}
	if err := s.events.Append(ctx, event); err != nil {
		return nil, fmt.Errorf("%w: append paid event: %v", apperrors.ErrStorage, err)
	}
	return record, nil
}

// ListByEmail returns the payments made by one payer. Callers enforce
// that the email is the authenticated caller's own.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]paymentModel.Payment, error) {
	payments, err := s.payments.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return payments, nil
}

// ListByParcel returns the payments recorded against one parcel.
func (s *Service) ListByParcel(ctx context.Context, parcelID uint) ([]paymentModel.Payment, error) {
	payments, err := s.payments.ListByParcel(ctx, parcelID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return payments, nil
}
