package persistent

import (
	"context"

	"magazine/internal/entity"
	"magazine/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context) ([]*entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(postModel).Error; err != nil {
		return err
	}
	post.ID = postModel.ID
	post.CreatedAt = postModel.CreatedAt
	post.UpdatedAt = postModel.UpdatedAt
	return nil
}

// GetByID loads the post with its author, its comments in creation order and
// its like count.
func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var postModel model.PostModel
	err := r.withRelations(ctx).Where("posts.id = ?", id).First(&postModel).Error
	if err != nil {
		return nil, notFound(err)
	}

	counts, err := r.likeCounts(ctx, []string{postModel.ID})
	if err != nil {
		return nil, err
	}

	post := ToPostEntity(&postModel)
	post.LikesCount = counts[post.ID]
	return post, nil
}

// List returns every post, newest first.
func (r *postRepository) List(ctx context.Context) ([]*entity.Post, error) {
	var postModels []model.PostModel
	err := r.withRelations(ctx).Order("posts.created_at DESC").Find(&postModels).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(postModels))
	for i := range postModels {
		ids[i] = postModels[i].ID
	}
	counts, err := r.likeCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
		posts[i].LikesCount = counts[posts[i].ID]
	}
	return posts, nil
}

// Update writes title, content and image. The author is never reassigned.
func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	result := r.db.WithContext(ctx).
		Model(&model.PostModel{ID: post.ID}).
		Updates(map[string]interface{}{
			"title":   post.Title,
			"content": post.Content,
			"image":   post.Image,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PostModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *postRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PostModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *postRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author")
}

type likeCount struct {
	PostID string
	Count  int64
}

func (r *postRepository) likeCounts(ctx context.Context, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []likeCount
	err := r.db.WithContext(ctx).
		Model(&model.LikeModel{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}
