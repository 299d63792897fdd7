package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"magazine/internal/app"
	"magazine/internal/entity"
	"magazine/internal/usecase"
	"magazine/pkg/config"
	"magazine/pkg/database"
	"magazine/pkg/jwt"
	"magazine/pkg/logger"
)

type seedUser struct {
	email    string
	username string
	password string
}

var testUsers = []seedUser{
	{"alice@test.com", "alice", "password123"},
	{"bob@test.com", "bob", "password123"},
	{"charlie@test.com", "charlie", "password123"},
	{"diana@test.com", "diana", "password123"},
}

func main() {
	var withImages bool
	flag.BoolVar(&withImages, "images", true, "Attach cat pictures from cataas.com to seeded posts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	media, err := app.NewMediaStorage(cfg)
	if err != nil {
		log.Error("Failed to set up media storage: %v", err)
		panic(err)
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authUseCase, postUseCase, interactionUseCase, _ := app.UseCases(db, media, jwtService, nil, log)

	var httpClient *http.Client
	if withImages {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	s := &seeder{
		auth:         authUseCase,
		posts:        postUseCase,
		interactions: interactionUseCase,
		httpClient:   httpClient,
		log:          log,
	}
	if err := s.run(context.Background()); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

type seeder struct {
	auth         usecase.AuthUseCase
	posts        usecase.PostUseCase
	interactions usecase.InteractionUseCase
	httpClient   *http.Client
	log          *logger.Logger
}

func (s *seeder) run(ctx context.Context) error {
	userIDs := make([]string, 0, len(testUsers))
	for _, u := range testUsers {
		user, _, err := s.auth.Register(ctx, usecase.RegisterInput{
			Username: u.username,
			Email:    u.email,
			Password: u.password,
		})
		if err != nil {
			var verr *entity.ValidationError
			if errors.As(err, &verr) {
				s.log.Info("User %s already exists, skipping", u.username)
				continue
			}
			return fmt.Errorf("failed to register %s: %w", u.username, err)
		}
		s.log.Info("Created user: %s (%s)", user.Username, user.Email)
		userIDs = append(userIDs, user.ID)
	}

	type seededPost struct {
		id       string
		authorID string
	}
	var seeded []seededPost
	for i, userID := range userIDs {
		postsCount := 2 + i%2
		for j := 0; j < postsCount; j++ {
			post, err := s.posts.CreatePost(ctx, userID, usecase.CreatePostInput{
				Title:   fmt.Sprintf("Issue #%d, article %d", i+1, j+1),
				Content: fmt.Sprintf("Seeded article %d written by user %d.", j+1, i+1),
				Image:   s.catImage(j),
			})
			if err != nil {
				s.log.Error("Failed to create post %d for user %s: %v", j+1, userID, err)
				continue
			}
			s.log.Info("Created post: %s", post.Title)
			seeded = append(seeded, seededPost{id: post.ID, authorID: userID})
		}
	}

	// Users like each other's posts; every third post also gets comments.
	for _, userID := range userIDs {
		for j, post := range seeded {
			if post.authorID == userID {
				continue
			}
			if err := s.interactions.Like(ctx, post.id, userID); err != nil && !errors.Is(err, entity.ErrAlreadyLiked) {
				s.log.Error("Failed to like post %s: %v", post.id, err)
			}
			if j%3 == 0 {
				if _, err := s.interactions.Comment(ctx, post.id, userID, usecase.CommentInput{Body: "Great read!"}); err != nil {
					s.log.Error("Failed to comment on post %s: %v", post.id, err)
				}
			}
		}
	}

	s.log.Info("Seeded %d users and %d posts", len(userIDs), len(seeded))
	return nil
}

// catImage fetches a picture for the post. Failures leave the post text-only.
func (s *seeder) catImage(index int) *usecase.ImageUpload {
	if s.httpClient == nil {
		return nil
	}

	cataasURL := "https://cataas.com/cat"
	if index%2 == 0 {
		cataasURL += "/says/Hello%20reader"
	}

	s.log.Info("Fetching cat image from %s", cataasURL)
	resp, err := s.httpClient.Get(cataasURL)
	if err != nil {
		s.log.Warn("Failed to fetch cat image: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warn("cataas API returned status %d", resp.StatusCode)
		return nil
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil || len(imageData) == 0 {
		s.log.Warn("Failed to read image data: %v", err)
		return nil
	}

	return &usecase.ImageUpload{
		Filename: fmt.Sprintf("seed_%d.jpg", index),
		Reader:   bytes.NewReader(imageData),
	}
}
