package http

import (
	"context"
	"io"

	"magazine/internal/entity"
	"magazine/internal/permission"
	"magazine/internal/usecase"
	"magazine/pkg/jwt"
	"magazine/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, *entity.TokenPair, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entity.User), args.Get(1).(*entity.TokenPair), args.Error(2)
}

func (m *MockAuthUseCase) Login(ctx context.Context, input usecase.LoginInput) (*entity.TokenPair, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TokenPair), args.Error(1)
}

func (m *MockAuthUseCase) Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TokenPair), args.Error(1)
}

var _ usecase.AuthUseCase = (*MockAuthUseCase)(nil)

type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) CreatePost(ctx context.Context, userID string, input usecase.CreatePostInput) (*entity.Post, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPost(ctx context.Context, postID string) (*entity.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) ListPosts(ctx context.Context) ([]*entity.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) UpdatePost(ctx context.Context, postID, userID string, action permission.Action, input usecase.UpdatePostInput) (*entity.Post, error) {
	args := m.Called(ctx, postID, userID, action, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) DeletePost(ctx context.Context, postID, userID string, action permission.Action) error {
	args := m.Called(ctx, postID, userID, action)
	return args.Error(0)
}

func (m *MockPostUseCase) ImageURL(image string) (string, bool) {
	args := m.Called(image)
	return args.String(0), args.Bool(1)
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

type MockInteractionUseCase struct {
	mock.Mock
}

func (m *MockInteractionUseCase) Like(ctx context.Context, postID, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *MockInteractionUseCase) Unlike(ctx context.Context, postID, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *MockInteractionUseCase) Comment(ctx context.Context, postID, userID string, input usecase.CommentInput) (*entity.Comment, error) {
	args := m.Called(ctx, postID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

var _ usecase.InteractionUseCase = (*MockInteractionUseCase)(nil)

type MockProfileUseCase struct {
	mock.Mock
}

func (m *MockProfileUseCase) ListProfiles(ctx context.Context) ([]*entity.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Profile), args.Error(1)
}

func (m *MockProfileUseCase) GetProfile(ctx context.Context, username string) (*entity.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

var _ usecase.ProfileUseCase = (*MockProfileUseCase)(nil)

type testServer struct {
	router       *gin.Engine
	jwtService   *jwt.Service
	auth         *MockAuthUseCase
	posts        *MockPostUseCase
	interactions *MockInteractionUseCase
	profiles     *MockProfileUseCase
}

func setupTestServer() *testServer {
	gin.SetMode(gin.TestMode)

	log := logger.NewWithWriters(io.Discard, io.Discard)
	s := &testServer{
		jwtService:   jwt.NewService("test-secret", 0, 0),
		auth:         new(MockAuthUseCase),
		posts:        new(MockPostUseCase),
		interactions: new(MockInteractionUseCase),
		profiles:     new(MockProfileUseCase),
	}

	s.router = NewRouter(Handlers{
		Auth:        NewAuthHandler(s.auth, log),
		Post:        NewPostHandler(s.posts, log),
		Interaction: NewInteractionHandler(s.interactions, log),
		Profile:     NewProfileHandler(s.profiles, log),
	}, s.jwtService, RouterOptions{
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxUploadBytes: 1 << 20,
	})
	return s
}

func (s *testServer) bearer(userID string) string {
	pair, err := s.jwtService.GenerateTokenPair(userID)
	if err != nil {
		panic(err)
	}
	return "Bearer " + pair.Access
}
