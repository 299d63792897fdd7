package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"magazine/internal/entity"
	"magazine/internal/repo/persistent"
	"magazine/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUseCase(repo *MockUserRepository, store RefreshTokenStore) (AuthUseCase, *jwt.Service) {
	jwtService := jwt.NewService("test-secret", 0, 0)
	return NewAuthUseCase(repo, jwtService, store, testLogger()), jwtService
}

func TestRegister_Success(t *testing.T) {
	repo := new(MockUserRepository)
	uc, jwtService := newAuthUseCase(repo, nil)

	repo.On("UsernameExists", mock.Anything, "alice").Return(false, nil)
	repo.On("CreateWithProfile", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = "user-1"
		}).
		Return(&entity.Profile{ID: "profile-1", UserID: "user-1"}, nil)

	user, tokens, err := uc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret!",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Empty(t, user.Password)

	claims, err := jwtService.ValidateAccessToken(tokens.Access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	_, err = jwtService.ValidateRefreshToken(tokens.Refresh)
	assert.NoError(t, err)

	stored := repo.Calls[1].Arguments.Get(1).(*entity.User)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret!")))
	repo.AssertExpectations(t)
}

func TestRegister_ShortPasswordCreatesNothing(t *testing.T) {
	repo := new(MockUserRepository)
	uc, _ := newAuthUseCase(repo, nil)

	repo.On("UsernameExists", mock.Anything, "alice").Return(false, nil)

	_, _, err := uc.Register(context.Background(), RegisterInput{Username: "alice", Password: "12345"})

	var verr *entity.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Ensure this field has at least 6 characters."}, verr.Fields["password"])
	repo.AssertNotCalled(t, "CreateWithProfile", mock.Anything, mock.Anything)
}

func TestRegister_MultibytePasswordOverBcryptLimit(t *testing.T) {
	repo := new(MockUserRepository)
	uc, _ := newAuthUseCase(repo, nil)

	repo.On("UsernameExists", mock.Anything, "alice").Return(false, nil)

	// 40 characters, 80 bytes
	_, _, err := uc.Register(context.Background(), RegisterInput{Username: "alice", Password: strings.Repeat("é", 40)})

	var verr *entity.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Ensure this field has no more than 72 bytes."}, verr.Fields["password"])
	repo.AssertNotCalled(t, "CreateWithProfile", mock.Anything, mock.Anything)
}

func TestRegister_CollectsEveryFieldError(t *testing.T) {
	repo := new(MockUserRepository)
	uc, _ := newAuthUseCase(repo, nil)

	_, _, err := uc.Register(context.Background(), RegisterInput{
		Username: "not valid!",
		Email:    "nope",
		Password: "123",
	})

	var verr *entity.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{msgInvalidUsername}, verr.Fields["username"])
	assert.Equal(t, []string{msgInvalidEmail}, verr.Fields["email"])
	assert.Len(t, verr.Fields["password"], 1)
	repo.AssertNotCalled(t, "UsernameExists", mock.Anything, mock.Anything)
}

func TestRegister_MissingFields(t *testing.T) {
	repo := new(MockUserRepository)
	uc, _ := newAuthUseCase(repo, nil)

	_, _, err := uc.Register(context.Background(), RegisterInput{})

	var verr *entity.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{msgRequired}, verr.Fields["username"])
	assert.Equal(t, []string{msgRequired}, verr.Fields["password"])
	assert.False(t, verr.HasField("email"))
}

func TestRegister_UsernameTaken(t *testing.T) {
	repo := new(MockUserRepository)
	uc, _ := newAuthUseCase(repo, nil)

	repo.On("UsernameExists", mock.Anything, "alice").Return(true, nil)

	_, _, err := uc.Register(context.Background(), RegisterInput{Username: "alice", Password: "secret1"})

	var verr *entity.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{msgUsernameTaken}, verr.Fields["username"])
}

func TestRegister_ConcurrentDuplicateIsFieldError(t *testing.T) {
	repo := new(MockUserRepository)
	uc, _ := newAuthUseCase(repo, nil)

	repo.On("UsernameExists", mock.Anything, "alice").Return(false, nil)
	repo.On("CreateWithProfile", mock.Anything, mock.Anything).Return(nil, persistent.ErrUsernameTaken)

	_, _, err := uc.Register(context.Background(), RegisterInput{Username: "alice", Password: "secret1"})

	var verr *entity.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{msgUsernameTaken}, verr.Fields["username"])
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	alice := &entity.User{ID: "user-1", Username: "alice", Password: string(hash)}

	tests := []struct {
		name        string
		input       LoginInput
		setup       func(repo *MockUserRepository)
		expectedErr error
	}{
		{
			name:  "Valid credentials",
			input: LoginInput{Username: "alice", Password: "secret1"},
			setup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)
			},
		},
		{
			name:  "Wrong password",
			input: LoginInput{Username: "alice", Password: "wrong-password"},
			setup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)
			},
			expectedErr: entity.ErrInvalidCredentials,
		},
		{
			name:  "Unknown user",
			input: LoginInput{Username: "bob", Password: "secret1"},
			setup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "bob").Return(nil, entity.ErrNotFound)
			},
			expectedErr: entity.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setup(repo)
			uc, jwtService := newAuthUseCase(repo, nil)

			tokens, err := uc.Login(context.Background(), tt.input)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, tokens)
				return
			}
			require.NoError(t, err)
			claims, err := jwtService.ValidateAccessToken(tokens.Access)
			require.NoError(t, err)
			assert.Equal(t, "user-1", claims.UserID)
		})
	}
}

func TestRefresh_RotatesOnce(t *testing.T) {
	repo := new(MockUserRepository)
	store := &memoryTokenStore{}
	uc, jwtService := newAuthUseCase(repo, store)

	repo.On("GetByID", mock.Anything, "user-1").Return(&entity.User{ID: "user-1"}, nil)

	pair, err := jwtService.GenerateTokenPair("user-1")
	require.NoError(t, err)

	rotated, err := uc.Refresh(context.Background(), pair.Refresh)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Refresh, rotated.Refresh)

	_, err = jwtService.ValidateAccessToken(rotated.Access)
	assert.NoError(t, err)

	_, err = uc.Refresh(context.Background(), pair.Refresh)
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	repo := new(MockUserRepository)
	uc, jwtService := newAuthUseCase(repo, &memoryTokenStore{})

	pair, err := jwtService.GenerateTokenPair("user-1")
	require.NoError(t, err)

	_, err = uc.Refresh(context.Background(), pair.Access)
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestRefresh_StoreDownStillRotates(t *testing.T) {
	repo := new(MockUserRepository)
	uc, jwtService := newAuthUseCase(repo, &memoryTokenStore{err: errors.New("redis: connection refused")})

	repo.On("GetByID", mock.Anything, "user-1").Return(&entity.User{ID: "user-1"}, nil)

	pair, err := jwtService.GenerateTokenPair("user-1")
	require.NoError(t, err)

	_, err = uc.Refresh(context.Background(), pair.Refresh)
	assert.NoError(t, err)
}

func TestRefresh_MissingToken(t *testing.T) {
	uc, _ := newAuthUseCase(new(MockUserRepository), nil)

	_, err := uc.Refresh(context.Background(), "")

	var verr *entity.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{msgRequired}, verr.Fields["refresh"])
}
