package usecase

import (
	"context"
	"errors"
	"fmt"

	"magazine/internal/entity"
	"magazine/internal/repo/persistent"
	"magazine/pkg/logger"
)

type CommentInput struct {
	Body string `json:"body" validate:"required"`
}

type InteractionUseCase interface {
	Like(ctx context.Context, postID, userID string) error
	Unlike(ctx context.Context, postID, userID string) error
	Comment(ctx context.Context, postID, userID string, input CommentInput) (*entity.Comment, error)
}

type interactionUseCase struct {
	interactionRepo persistent.InteractionRepository
	postRepo        persistent.PostRepository
	logger          *logger.Logger
}

func NewInteractionUseCase(
	interactionRepo persistent.InteractionRepository,
	postRepo persistent.PostRepository,
	logger *logger.Logger,
) InteractionUseCase {
	return &interactionUseCase{
		interactionRepo: interactionRepo,
		postRepo:        postRepo,
		logger:          logger,
	}
}

// Like returns entity.ErrAlreadyLiked when the pair exists, including when a
// concurrent request inserted it first.
func (uc *interactionUseCase) Like(ctx context.Context, postID, userID string) error {
	if err := uc.requirePost(ctx, postID); err != nil {
		return err
	}

	if _, err := uc.interactionRepo.CreateLike(ctx, postID, userID); err != nil {
		if errors.Is(err, entity.ErrAlreadyLiked) {
			return err
		}
		uc.logger.Error("Failed to like post: %v", err)
		return fmt.Errorf("failed to like post: %w", err)
	}
	return nil
}

func (uc *interactionUseCase) Unlike(ctx context.Context, postID, userID string) error {
	if err := uc.requirePost(ctx, postID); err != nil {
		return err
	}

	if err := uc.interactionRepo.DeleteLike(ctx, postID, userID); err != nil {
		if errors.Is(err, entity.ErrNotLiked) {
			return err
		}
		uc.logger.Error("Failed to unlike post: %v", err)
		return fmt.Errorf("failed to unlike post: %w", err)
	}
	return nil
}

func (uc *interactionUseCase) Comment(ctx context.Context, postID, userID string, input CommentInput) (*entity.Comment, error) {
	if err := uc.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	if verr := validateStruct(input); verr.HasErrors() {
		return nil, verr
	}

	comment := &entity.Comment{
		PostID:   postID,
		AuthorID: userID,
		Body:     input.Body,
	}
	if err := uc.interactionRepo.CreateComment(ctx, comment); err != nil {
		uc.logger.Error("Failed to create comment: %v", err)
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

func (uc *interactionUseCase) requirePost(ctx context.Context, postID string) error {
	exists, err := uc.postRepo.Exists(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to load post: %w", err)
	}
	if !exists {
		return entity.ErrNotFound
	}
	return nil
}
