package usecase

import (
	"context"
	"errors"
	"fmt"

	"magazine/internal/entity"
	"magazine/internal/repo/persistent"
)

type ProfileUseCase interface {
	ListProfiles(ctx context.Context) ([]*entity.Profile, error)
	GetProfile(ctx context.Context, username string) (*entity.Profile, error)
}

type profileUseCase struct {
	profileRepo persistent.ProfileRepository
}

func NewProfileUseCase(profileRepo persistent.ProfileRepository) ProfileUseCase {
	return &profileUseCase{profileRepo: profileRepo}
}

func (uc *profileUseCase) ListProfiles(ctx context.Context) ([]*entity.Profile, error) {
	profiles, err := uc.profileRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (uc *profileUseCase) GetProfile(ctx context.Context, username string) (*entity.Profile, error) {
	profile, err := uc.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}
