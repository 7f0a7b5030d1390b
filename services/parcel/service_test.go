package parcel

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profast/apperrors"
	parcelModel "profast/models/parcel"
	"profast/models/tracking"
	"profast/repository/inmem"
)

var (
	userActor  = tracking.Actor{Role: "user", Email: "sender@example.com"}
	adminActor = tracking.Actor{Role: "admin", Email: "admin@profast.io"}
	riderActor = tracking.Actor{Role: "rider", Email: "rashed@profast.io"}

	testRider = parcelModel.AssignedRider{RiderID: 7, Name: "Rashed", Email: riderActor.Email}
)

func newTestService() (*Service, *inmem.ParcelStore, *inmem.EventStore) {
	parcels := inmem.NewParcelStore()
	events := inmem.NewEventStore()
	return NewService(parcels, events), parcels, events
}

func seedParcel(t *testing.T, parcels *inmem.ParcelStore, status parcelModel.Status, rider parcelModel.AssignedRider) *parcelModel.Parcel {
	t.Helper()
	p := &parcelModel.Parcel{
		TrackingID:     "PF-20260831-SEED" + string(status),
		Status:         status,
		PaymentStatus:  parcelModel.PaymentStatusUnpaid,
		CreatedByEmail: userActor.Email,
		SenderRegion:   "Dhaka",
		ReceiverRegion: "Dhaka",
		DeliveryCost:   100,
		AssignedRider:  rider,
	}
	require.NoError(t, parcels.Insert(context.Background(), p))
	return p
}

func TestCreateParcel(t *testing.T) {
	svc, _, events := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{
		SenderRegion:   "Dhaka",
		ReceiverRegion: "Sylhet",
		DeliveryCost:   150,
	}, userActor)
	require.NoError(t, err)

	assert.Equal(t, parcelModel.StatusSubmitted, p.Status)
	assert.Equal(t, parcelModel.PaymentStatusUnpaid, p.PaymentStatus)
	assert.NotEmpty(t, p.TrackingID)
	assert.Equal(t, userActor.Email, p.CreatedByEmail)
	assert.False(t, p.Assigned())

	history, err := events.History(ctx, p.TrackingID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "submitted", history[0].Status)
	assert.Equal(t, userActor.Email, history[0].UpdatedBy.Email)
}

func TestForwardOnlyTransitions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		current parcelModel.Status
		target  parcelModel.Status
	}{
		{"submitted to in-transit skips", parcelModel.StatusSubmitted, parcelModel.StatusInTransit},
		{"submitted to delivered skips", parcelModel.StatusSubmitted, parcelModel.StatusDelivered},
		{"paid to in-transit skips", parcelModel.StatusPaid, parcelModel.StatusInTransit},
		{"paid to delivered skips", parcelModel.StatusPaid, parcelModel.StatusDelivered},
		{"assigned to delivered skips", parcelModel.StatusAssigned, parcelModel.StatusDelivered},
		{"in-transit backward", parcelModel.StatusInTransit, parcelModel.StatusInTransit},
		{"delivered is terminal", parcelModel.StatusDelivered, parcelModel.StatusInTransit},
		{"delivered cannot repeat", parcelModel.StatusDelivered, parcelModel.StatusDelivered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, parcels, events := newTestService()
			p := seedParcel(t, parcels, tt.current, testRider)

			_, err := svc.UpdateStatusByRider(ctx, p.ID, tt.target, riderActor)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

			stored, getErr := parcels.ByID(ctx, p.ID)
			require.NoError(t, getErr)
			assert.Equal(t, tt.current, stored.Status, "status must be unchanged after a rejected transition")

			history, _ := events.History(ctx, p.TrackingID)
			assert.Empty(t, history, "no ledger entry for a rejected transition")
		})
	}
}

func TestLedgerCompleteness(t *testing.T) {
	svc, parcels, events := newTestService()
	ctx := context.Background()

	p := seedParcel(t, parcels, parcelModel.StatusPaid, parcelModel.AssignedRider{})

	steps := []func() error{
		func() error { _, err := svc.AssignRider(ctx, p.ID, testRider, adminActor); return err },
		func() error {
			_, err := svc.UpdateStatusByRider(ctx, p.ID, parcelModel.StatusInTransit, riderActor)
			return err
		},
		func() error {
			_, err := svc.UpdateStatusByRider(ctx, p.ID, parcelModel.StatusDelivered, riderActor)
			return err
		},
	}

	for i, step := range steps {
		before, _ := events.History(ctx, p.TrackingID)
		require.NoError(t, step())
		after, _ := events.History(ctx, p.TrackingID)
		assert.Len(t, after, len(before)+1, "step %d must append exactly one event", i)
	}

	history, _ := events.History(ctx, p.TrackingID)
	stored, _ := parcels.ByID(ctx, p.ID)
	assert.Equal(t, stored.Status.String(), history[len(history)-1].Status,
		"last ledger event must match current parcel status")
}

func TestCashOutExactlyOnce(t *testing.T) {
	svc, parcels, _ := newTestService()
	ctx := context.Background()

	p := seedParcel(t, parcels, parcelModel.StatusDelivered, testRider)

	const attempts = 2
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.CashOut(ctx, p.ID, riderActor.Email)
		}(i)
	}
	wg.Wait()

	var successes, failures int
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrNotFound)
			failures++
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent cash-out must win")
	assert.Equal(t, 1, failures)

	stored, _ := parcels.ByID(ctx, p.ID)
	assert.True(t, stored.CashedOut)
	assert.NotNil(t, stored.CashedOutAt)
}

func TestCashOutEarning(t *testing.T) {
	ctx := context.Background()

	t.Run("intra-region pays 80 percent", func(t *testing.T) {
		svc, parcels, _ := newTestService()
		p := seedParcel(t, parcels, parcelModel.StatusDelivered, testRider)

		earning, err := svc.CashOut(ctx, p.ID, riderActor.Email)
		require.NoError(t, err)
		assert.InDelta(t, 80.0, earning, 1e-9)
	})

	t.Run("cross-region pays 30 percent", func(t *testing.T) {
		svc, parcels, _ := newTestService()
		p2 := &parcelModel.Parcel{
			TrackingID:     "PF-20260831-CROSS",
			Status:         parcelModel.StatusDelivered,
			SenderRegion:   "Dhaka",
			ReceiverRegion: "Sylhet",
			DeliveryCost:   100,
			AssignedRider:  testRider,
		}
		require.NoError(t, parcels.Insert(ctx, p2))

		earning, err := svc.CashOut(ctx, p2.ID, riderActor.Email)
		require.NoError(t, err)
		assert.InDelta(t, 30.0, earning, 1e-9)
	})
}

func TestOwnershipEnforcement(t *testing.T) {
	ctx := context.Background()
	stranger := tracking.Actor{Role: "rider", Email: "other@profast.io"}

	t.Run("status update by wrong rider", func(t *testing.T) {
		svc, parcels, events := newTestService()
		p := seedParcel(t, parcels, parcelModel.StatusAssigned, testRider)

		_, err := svc.UpdateStatusByRider(ctx, p.ID, parcelModel.StatusInTransit, stranger)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)

		stored, _ := parcels.ByID(ctx, p.ID)
		assert.Equal(t, parcelModel.StatusAssigned, stored.Status)
		history, _ := events.History(ctx, p.TrackingID)
		assert.Empty(t, history)
	})

	t.Run("cash-out by wrong rider does not reveal why", func(t *testing.T) {
		svc, parcels, _ := newTestService()
		p := seedParcel(t, parcels, parcelModel.StatusDelivered, testRider)

		_, err := svc.CashOut(ctx, p.ID, stranger.Email)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		stored, _ := parcels.ByID(ctx, p.ID)
		assert.False(t, stored.CashedOut)
	})
}

func TestAssignmentPrecondition(t *testing.T) {
	ctx := context.Background()

	t.Run("assign succeeds on submitted and paid", func(t *testing.T) {
		for _, status := range []parcelModel.Status{parcelModel.StatusSubmitted, parcelModel.StatusPaid} {
			svc, parcels, _ := newTestService()
			p := seedParcel(t, parcels, status, parcelModel.AssignedRider{})

			updated, err := svc.AssignRider(ctx, p.ID, testRider, adminActor)
			require.NoError(t, err, "assignment on %s must succeed", status)
			assert.Equal(t, parcelModel.StatusAssigned, updated.Status)
			assert.Equal(t, testRider.Email, updated.AssignedRider.Email)
		}
	})

	t.Run("assign fails once a rider is on the parcel", func(t *testing.T) {
		for _, status := range []parcelModel.Status{parcelModel.StatusAssigned, parcelModel.StatusInTransit, parcelModel.StatusDelivered} {
			svc, parcels, _ := newTestService()
			p := seedParcel(t, parcels, status, testRider)

			_, err := svc.AssignRider(ctx, p.ID, parcelModel.AssignedRider{RiderID: 9, Name: "Other", Email: "other@profast.io"}, adminActor)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "assignment on %s must fail", status)

			stored, _ := parcels.ByID(ctx, p.ID)
			assert.Equal(t, testRider.Email, stored.AssignedRider.Email)
		}
	})

	t.Run("assign unknown parcel", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.AssignRider(ctx, 999, testRider, adminActor)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("concurrent assignment admits one rider", func(t *testing.T) {
		svc, parcels, _ := newTestService()
		p := seedParcel(t, parcels, parcelModel.StatusPaid, parcelModel.AssignedRider{})

		other := parcelModel.AssignedRider{RiderID: 9, Name: "Other", Email: "other@profast.io"}
		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, r := range []parcelModel.AssignedRider{testRider, other} {
			wg.Add(1)
			go func(i int, r parcelModel.AssignedRider) {
				defer wg.Done()
				_, errs[i] = svc.AssignRider(ctx, p.ID, r, adminActor)
			}(i, r)
		}
		wg.Wait()

		var successes int
		for _, err := range errs {
			if err == nil {
				successes++
			}
		}
		assert.Equal(t, 1, successes, "two concurrent assignments must not both succeed")
	})
}

// failingEventStore rejects every append.
type failingEventStore struct{}

func (failingEventStore) Append(context.Context, *tracking.Event) error {
	return errors.New("ledger unavailable")
}

func (failingEventStore) History(context.Context, string) ([]tracking.Event, error) {
	return nil, nil
}

func TestLedgerAppendFailureIsSurfaced(t *testing.T) {
	parcels := inmem.NewParcelStore()
	svc := NewService(parcels, failingEventStore{})
	ctx := context.Background()

	p := seedParcel(t, parcels, parcelModel.StatusAssigned, testRider)

	_, err := svc.UpdateStatusByRider(ctx, p.ID, parcelModel.StatusInTransit, riderActor)
	require.ErrorIs(t, err, apperrors.ErrStorage)

	// The status write committed before the append failed: the documented
	// inconsistency window, recovered by operator reconciliation.
	stored, _ := parcels.ByID(ctx, p.ID)
	assert.Equal(t, parcelModel.StatusInTransit, stored.Status)
}

func TestRiderWorklists(t *testing.T) {
	svc, parcels, _ := newTestService()
	ctx := context.Background()

	seedParcel(t, parcels, parcelModel.StatusAssigned, testRider)
	seedParcel(t, parcels, parcelModel.StatusInTransit, testRider)
	seedParcel(t, parcels, parcelModel.StatusDelivered, testRider)
	seedParcel(t, parcels, parcelModel.StatusAssigned, parcelModel.AssignedRider{RiderID: 9, Name: "Other", Email: "other@profast.io"})

	pending, err := svc.PendingForRider(ctx, riderActor.Email)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	completed, err := svc.CompletedForRider(ctx, riderActor.Email)
	require.NoError(t, err)
	assert.Len(t, completed, 1)
	assert.Equal(t, parcelModel.StatusDelivered, completed[0].Status)
}
