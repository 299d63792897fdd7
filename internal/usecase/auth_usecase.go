package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"magazine/internal/entity"
	"magazine/internal/repo/persistent"
	"magazine/pkg/jwt"
	"magazine/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

// RefreshTokenStore remembers spent refresh tokens. MarkUsed returns false
// when the token id was already spent.
type RefreshTokenStore interface {
	MarkUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

// bcrypt rejects longer input, and validator's max counts runes.
const maxPasswordBytes = 72

type RegisterInput struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"omitempty,max=254,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, *entity.TokenPair, error)
	Login(ctx context.Context, input LoginInput) (*entity.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	tokenStore RefreshTokenStore
	logger     *logger.Logger
}

// NewAuthUseCase builds the auth flows. tokenStore may be nil, in which case
// refresh tokens are not checked for reuse.
func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	tokenStore RefreshTokenStore,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		logger:     logger,
	}
}

func (uc *authUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, *entity.TokenPair, error) {
	verr := validateStruct(input)

	if !verr.HasField("password") && len(input.Password) > maxPasswordBytes {
		verr.Add("password", msgPasswordTooLong)
	}

	if !verr.HasField("username") {
		exists, err := uc.userRepo.UsernameExists(ctx, input.Username)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check username: %w", err)
		}
		if exists {
			verr.Add("username", msgUsernameTaken)
		}
	}

	if verr.HasErrors() {
		return nil, nil, verr
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashedPassword),
	}

	if _, err := uc.userRepo.CreateWithProfile(ctx, user); err != nil {
		if errors.Is(err, persistent.ErrUsernameTaken) {
			verr.Add("username", msgUsernameTaken)
			return nil, nil, verr
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := uc.issue(user.ID)
	if err != nil {
		return nil, nil, err
	}

	uc.logger.Info("Registered user %s (%s)", user.Username, user.ID)
	user.Password = ""
	return user, tokens, nil
}

func (uc *authUseCase) Login(ctx context.Context, input LoginInput) (*entity.TokenPair, error) {
	if verr := validateStruct(input); verr.HasErrors() {
		return nil, verr
	}

	user, err := uc.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	return uc.issue(user.ID)
}

// Refresh rotates a refresh token. Each refresh token is accepted once when a
// token store is configured.
func (uc *authUseCase) Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	if refreshToken == "" {
		verr := entity.NewValidationError()
		verr.Add("refresh", msgRequired)
		return nil, verr
	}

	claims, err := uc.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, entity.ErrInvalidToken
	}

	if uc.tokenStore != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		fresh, err := uc.tokenStore.MarkUsed(ctx, claims.ID, ttl)
		switch {
		case err != nil:
			uc.logger.Warn("Refresh token reuse check skipped: %v", err)
		case !fresh:
			uc.logger.Warn("Refresh token %s presented twice for user %s", claims.ID, claims.UserID)
			return nil, entity.ErrInvalidToken
		}
	}

	if _, err := uc.userRepo.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return uc.issue(claims.UserID)
}

func (uc *authUseCase) issue(userID string) (*entity.TokenPair, error) {
	pair, err := uc.jwtService.GenerateTokenPair(userID)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &entity.TokenPair{Access: pair.Access, Refresh: pair.Refresh}, nil
}
