package usecase

import (
	"context"
	"errors"

	"open-inn/internal/domain/user"
	"open-inn/internal/repository"

	"github.com/google/uuid"
)

type ProfileUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	Upsert(ctx context.Context, p user.Profile) error
}

type Profile struct {
	users repository.UserRepository
}

func NewProfileUsecase(users repository.UserRepository) *Profile {
	return &Profile{users: users}
}

func (u *Profile) Get(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	if userID == uuid.Nil {
		return user.Profile{}, ErrUnauthorized
	}
	p, err := u.users.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return user.Profile{}, ErrProfileNotFound
		}
		return user.Profile{}, ErrInternal
	}
	return p, nil
}

// Upsert saves the caller's freelancer profile and flips profileCompleted
// once a skill list exists, which is what makes the user a match candidate.
func (u *Profile) Upsert(ctx context.Context, p user.Profile) error {
	if p.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	if len(p.Skills) == 0 {
		return ErrInvalidInput
	}

	if err := u.users.UpsertProfile(ctx, p); err != nil {
		return ErrInternal
	}

	if err := u.users.SetProfileCompleted(ctx, p.UserID, true); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}
	return nil
}
