package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profast/apperrors"
	parcelModel "profast/models/parcel"
	"profast/models/tracking"
	"profast/repository/inmem"
	parcelService "profast/services/parcel"
)

type stubGateway struct {
	secret string
	err    error
}

func (g stubGateway) CreateCharge(context.Context, int64, string) (string, error) {
	return g.secret, g.err
}

type fixture struct {
	payments *Service
	parcels  *parcelService.Service
	store    *inmem.ParcelStore
	events   *inmem.EventStore
	records  *inmem.PaymentStore
}

func newFixture(gw ChargeCreator) *fixture {
	store := inmem.NewParcelStore()
	events := inmem.NewEventStore()
	records := inmem.NewPaymentStore()
	return &fixture{
		payments: NewService(store, records, events, gw),
		parcels:  parcelService.NewService(store, events),
		store:    store,
		events:   events,
		records:  records,
	}
}

func TestCreateIntent(t *testing.T) {
	t.Run("returns the gateway client secret", func(t *testing.T) {
		f := newFixture(stubGateway{secret: "pi_123_secret"})
		secret, err := f.payments.CreateIntent(context.Background(), 15000, "bdt")
		require.NoError(t, err)
		assert.Equal(t, "pi_123_secret", secret)
	})

	t.Run("gateway failure maps to gateway error", func(t *testing.T) {
		f := newFixture(stubGateway{err: errors.New("connection refused")})
		_, err := f.payments.CreateIntent(context.Background(), 15000, "bdt")
		assert.ErrorIs(t, err, apperrors.ErrGateway)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		f := newFixture(stubGateway{secret: "x"})
		_, err := f.payments.CreateIntent(context.Background(), 0, "bdt")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()
	sender := tracking.Actor{Role: "user", Email: "sender@example.com"}

	t.Run("marks parcel paid and appends system event", func(t *testing.T) {
		f := newFixture(stubGateway{})
		p, err := f.parcels.Create(ctx, parcelService.CreateInput{
			SenderRegion: "Dhaka", ReceiverRegion: "Dhaka", DeliveryCost: 100,
		}, sender)
		require.NoError(t, err)

		record, err := f.payments.Record(ctx, RecordInput{
			ParcelID:      p.ID,
			PaymentMethod: "card",
			PayerEmail:    sender.Email,
			TransactionID: "txn_001",
		})
		require.NoError(t, err)
		assert.Equal(t, p.TrackingID, record.TrackingID)
		assert.InDelta(t, 100.0, record.Amount, 1e-9)
		assert.Equal(t, "succeeded", record.Status)

		stored, _ := f.store.ByID(ctx, p.ID)
		assert.Equal(t, parcelModel.StatusPaid, stored.Status)
		assert.Equal(t, parcelModel.PaymentStatusPaid, stored.PaymentStatus)

		history, _ := f.events.History(ctx, p.TrackingID)
		require.Len(t, history, 2)
		assert.Equal(t, "paid", history[1].Status)
		assert.Equal(t, "system", history[1].UpdatedBy.Role)
	})

	t.Run("duplicate transaction id is rejected", func(t *testing.T) {
		f := newFixture(stubGateway{})
		p, _ := f.parcels.Create(ctx, parcelService.CreateInput{
			SenderRegion: "Dhaka", ReceiverRegion: "Dhaka", DeliveryCost: 100,
		}, sender)

		in := RecordInput{ParcelID: p.ID, PaymentMethod: "card", PayerEmail: sender.Email, TransactionID: "txn_dup"}
		_, err := f.payments.Record(ctx, in)
		require.NoError(t, err)

		_, err = f.payments.Record(ctx, in)
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		records, _ := f.records.ListByParcel(ctx, p.ID)
		assert.Len(t, records, 1)
	})

	t.Run("unknown parcel", func(t *testing.T) {
		f := newFixture(stubGateway{})
		_, err := f.payments.Record(ctx, RecordInput{
			ParcelID: 42, PaymentMethod: "card", PayerEmail: sender.Email, TransactionID: "txn_404",
		})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("payment does not advance an already assigned parcel", func(t *testing.T) {
		f := newFixture(stubGateway{})
		p, _ := f.parcels.Create(ctx, parcelService.CreateInput{
			SenderRegion: "Dhaka", ReceiverRegion: "Dhaka", DeliveryCost: 100,
		}, sender)
		_, err := f.parcels.AssignRider(ctx, p.ID,
			parcelModel.AssignedRider{RiderID: 1, Name: "Rashed", Email: "rashed@profast.io"},
			tracking.Actor{Role: "admin", Email: "admin@profast.io"})
		require.NoError(t, err)

		_, err = f.payments.Record(ctx, RecordInput{
			ParcelID: p.ID, PaymentMethod: "card", PayerEmail: sender.Email, TransactionID: "txn_late",
		})
		require.NoError(t, err)

		stored, _ := f.store.ByID(ctx, p.ID)
		assert.Equal(t, parcelModel.StatusAssigned, stored.Status, "status never moves backward")
		assert.Equal(t, parcelModel.PaymentStatusPaid, stored.PaymentStatus)
	})
}

// TestParcelLifecycleEndToEnd walks one parcel through the whole flow:
// submission, payment, assignment, pickup, delivery and a single
// successful cash-out.
func TestParcelLifecycleEndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(stubGateway{secret: "pi_e2e"})

	sender := tracking.Actor{Role: "user", Email: "sender@example.com"}
	admin := tracking.Actor{Role: "admin", Email: "admin@profast.io"}
	riderA := tracking.Actor{Role: "rider", Email: "rashed@profast.io"}
	assigned := parcelModel.AssignedRider{RiderID: 7, Name: "Rashed", Email: riderA.Email}

	// Submission.
	p, err := f.parcels.Create(ctx, parcelService.CreateInput{
		SenderRegion: "Dhaka", ReceiverRegion: "Dhaka", DeliveryCost: 100,
	}, sender)
	require.NoError(t, err)
	require.Equal(t, parcelModel.StatusSubmitted, p.Status)
	require.NotEmpty(t, p.TrackingID)

	// Payment confirmation.
	_, err = f.payments.Record(ctx, RecordInput{
		ParcelID: p.ID, PaymentMethod: "card", PayerEmail: sender.Email, TransactionID: "txn_e2e",
	})
	require.NoError(t, err)
	history, _ := f.events.History(ctx, p.TrackingID)
	require.Len(t, history, 2)

	// Assignment.
	p, err = f.parcels.AssignRider(ctx, p.ID, assigned, admin)
	require.NoError(t, err)
	assert.Equal(t, parcelModel.StatusAssigned, p.Status)
	history, _ = f.events.History(ctx, p.TrackingID)
	require.Len(t, history, 3)

	// Pickup.
	p, err = f.parcels.UpdateStatusByRider(ctx, p.ID, parcelModel.StatusInTransit, riderA)
	require.NoError(t, err)
	history, _ = f.events.History(ctx, p.TrackingID)
	require.Len(t, history, 4)
	assert.Equal(t, riderA.Email, history[3].UpdatedBy.Email)

	// Delivery.
	p, err = f.parcels.UpdateStatusByRider(ctx, p.ID, parcelModel.StatusDelivered, riderA)
	require.NoError(t, err)
	history, _ = f.events.History(ctx, p.TrackingID)
	require.Len(t, history, 5)

	// Cash-out succeeds once, with the intra-region rate.
	earning, err := f.parcels.CashOut(ctx, p.ID, riderA.Email)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, earning, 1e-9)

	// A second attempt fails and changes nothing.
	_, err = f.parcels.CashOut(ctx, p.ID, riderA.Email)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	final, _ := f.store.ByID(ctx, p.ID)
	assert.True(t, final.CashedOut)
	assert.Equal(t, parcelModel.StatusDelivered, final.Status)
	history, _ = f.events.History(ctx, p.TrackingID)
	assert.Len(t, history, 5, "cash-out does not append ledger events")
}
