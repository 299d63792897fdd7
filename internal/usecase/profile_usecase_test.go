package usecase

import (
	"context"
	"testing"

	"magazine/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListProfiles(t *testing.T) {
	repo := new(MockProfileRepository)
	uc := NewProfileUseCase(repo)

	repo.On("List", mock.Anything).Return([]*entity.Profile{
		{User: entity.User{Username: "alice"}},
		{User: entity.User{Username: "bob"}},
	}, nil)

	profiles, err := uc.ListProfiles(context.Background())

	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}

func TestGetProfile_NotFound(t *testing.T) {
	repo := new(MockProfileRepository)
	uc := NewProfileUseCase(repo)

	repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, entity.ErrNotFound)

	_, err := uc.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestGetProfile_DatabaseError(t *testing.T) {
	repo := new(MockProfileRepository)
	uc := NewProfileUseCase(repo)

	repo.On("GetByUsername", mock.Anything, "alice").Return(nil, errDatabase)

	_, err := uc.GetProfile(context.Background(), "alice")
	assert.ErrorIs(t, err, errDatabase)
	assert.NotErrorIs(t, err, entity.ErrNotFound)
}
