package rider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profast/apperrors"
	riderModel "profast/models/rider"
	userModel "profast/models/user"
	"profast/repository/inmem"
)

func newTestService() (*Service, *inmem.RiderStore, *inmem.UserStore) {
	riders := inmem.NewRiderStore()
	users := inmem.NewUserStore()
	return NewService(riders, users), riders, users
}

func apply(t *testing.T, svc *Service) *riderModel.Rider {
	t.Helper()
	r, err := svc.Apply(context.Background(), ApplyInput{
		Name:     "Rashed",
		Email:    "rashed@profast.io",
		District: "Dhaka",
	})
	require.NoError(t, err)
	require.Equal(t, riderModel.RiderStatusPending, r.Status)
	return r
}

func TestApprovalSyncsIdentityRole(t *testing.T) {
	svc, _, users := newTestService()
	ctx := context.Background()
	r := apply(t, svc)

	updated, err := svc.SetStatus(ctx, r.ID, riderModel.RiderStatusActive)
	require.NoError(t, err)
	assert.Equal(t, riderModel.RiderStatusActive, updated.Status)

	u, err := users.ByEmail(ctx, r.Email)
	require.NoError(t, err, "identity row must be created when absent")
	assert.Equal(t, userModel.RoleRider, u.Role)
}

func TestRejectionLeavesIdentityAlone(t *testing.T) {
	svc, _, users := newTestService()
	ctx := context.Background()
	r := apply(t, svc)

	_, err := svc.SetStatus(ctx, r.ID, riderModel.RiderStatusRejected)
	require.NoError(t, err)

	_, err = users.ByEmail(ctx, r.Email)
	assert.Error(t, err, "no identity row should appear for a rejected rider")
}

func TestApprovalIsRerunnable(t *testing.T) {
	svc, _, users := newTestService()
	ctx := context.Background()
	r := apply(t, svc)

	_, err := svc.SetStatus(ctx, r.ID, riderModel.RiderStatusActive)
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, r.ID, riderModel.RiderStatusActive)
	require.NoError(t, err, "re-running approval reconciles and is a no-op")

	u, _ := users.ByEmail(ctx, r.Email)
	assert.Equal(t, userModel.RoleRider, u.Role)
}

type failingUserStore struct {
	*inmem.UserStore
}

func (failingUserStore) SetRole(context.Context, string, string, userModel.Role) error {
	return errors.New("users table unavailable")
}

func TestApprovalRoleSyncFailureIsSurfaced(t *testing.T) {
	riders := inmem.NewRiderStore()
	svc := NewService(riders, failingUserStore{inmem.NewUserStore()})
	ctx := context.Background()
	r := apply(t, svc)

	_, err := svc.SetStatus(ctx, r.ID, riderModel.RiderStatusActive)
	require.ErrorIs(t, err, apperrors.ErrStorage)

	// The rider write committed before the sync failed: approved rider,
	// stale identity role, recovered by re-running the approval.
	stored, getErr := riders.ByID(ctx, r.ID)
	require.NoError(t, getErr)
	assert.Equal(t, riderModel.RiderStatusActive, stored.Status)
}

func TestSetStatusValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	r := apply(t, svc)

	_, err := svc.SetStatus(ctx, r.ID, riderModel.RiderStatus("frozen"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.SetStatus(ctx, 999, riderModel.RiderStatusActive)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	r := apply(t, svc)

	require.NoError(t, svc.Delete(ctx, r.ID))
	assert.ErrorIs(t, svc.Delete(ctx, r.ID), apperrors.ErrNotFound)
}
