// Package rider handles rider applications and admin approval. Approval
// to active also promotes the matching identity's role to rider; the two
// writes are sequential and the approval is safe to re-run if the second
// write was lost.
package rider

import (
	"context"
	"errors"
	"fmt"

	"profast/apperrors"
	"profast/logger"
	riderModel "profast/models/rider"
	"profast/models/user"
	"profast/repository"
)

type Service struct {
	riders repository.RiderStore
	users  repository.UserStore
}

func NewService(riders repository.RiderStore, users repository.UserStore) *Service {
	return &Service{riders: riders, users: users}
}

// ApplyInput is a rider application.
type ApplyInput struct {
	Name     string
	Email    string
	Phone    string
	District string
}

// Apply stores a pending rider application.
func (s *Service) Apply(ctx context.Context, in ApplyInput) (*riderModel.Rider, error) {
	r := &riderModel.Rider{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		District: in.District,
		Status:   riderModel.RiderStatusPending,
	}
	if err := s.riders.Insert(ctx, r); err != nil {
		return nil, fmt.Errorf("%w: insert rider: %v", apperrors.ErrStorage, err)
	}
	return r, nil
}

// Get returns one rider.
func (s *Service) Get(ctx context.Context, id uint) (*riderModel.Rider, error) {
	r, err := s.riders.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return r, nil
}

// List returns riders, optionally filtered by status.
func (s *Service) List(ctx context.Context, status riderModel.RiderStatus) ([]riderModel.Rider, error) {
	if status != "" && !status.IsValid() {
		return nil, apperrors.ErrValidation
	}
	riders, err := s.riders.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return riders, nil
}

// SetStatus updates a rider's status. Setting active synchronizes the
// identity role to rider, creating the identity row when absent; any
// other status leaves the identity untouched.
func (s *Service) SetStatus(ctx context.Context, id uint, status riderModel.RiderStatus) (*riderModel.Rider, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrValidation
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	matched, err := s.riders.SetStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("%w: set rider status: %v", apperrors.ErrStorage, err)
	}
	if !matched {
		return nil, apperrors.ErrNotFound
	}
	if status == riderModel.RiderStatusActive {
		if err := s.users.SetRole(ctx, r.Email, r.Name, user.RoleRider); err != nil {
			// Rider is approved but the identity role is stale; re-running
			// the approval reconciles.
			logger.Error("Failed to sync role for approved rider "+r.Email, err)
			return nil, fmt.Errorf("%w: sync identity role: %v", apperrors.ErrStorage, err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes a rider application.
func (s *Service) Delete(ctx context.Context, id uint) error {
	matched, err := s.riders.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: delete rider: %v", apperrors.ErrStorage, err)
	}
	if !matched {
		return apperrors.ErrNotFound
	}
	return nil
}
