package persistent

import (
	"context"

	"magazine/internal/entity"
	"magazine/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InteractionRepository interface {
	CreateLike(ctx context.Context, postID, userID string) (*entity.Like, error)
	DeleteLike(ctx context.Context, postID, userID string) error
	CreateComment(ctx context.Context, comment *entity.Comment) error
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

// CreateLike relies on idx_likes_post_user: a concurrent duplicate becomes a
// no-op insert and is reported as ErrAlreadyLiked.
func (r *interactionRepository) CreateLike(ctx context.Context, postID, userID string) (*entity.Like, error) {
	likeModel := &model.LikeModel{
		PostID: postID,
		UserID: userID,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(likeModel)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, entity.ErrAlreadyLiked
	}

	return ToLikeEntity(likeModel), nil
}

func (r *interactionRepository) DeleteLike(ctx context.Context, postID, userID string) error {
	result := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.LikeModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotLiked
	}
	return nil
}

// CreateComment stores the comment and fills in its author. Both happen in
// one transaction so a failed author lookup leaves no comment behind.
func (r *interactionRepository) CreateComment(ctx context.Context, comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(commentModel).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", commentModel.AuthorID).First(&commentModel.Author).Error
	})
	if err != nil {
		return notFound(err)
	}

	*comment = *ToCommentEntity(commentModel)
	return nil
}
