package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"magazine/internal/entity"
	"magazine/internal/permission"
	"magazine/internal/repo/persistent"
	"magazine/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MediaStorage is implemented by the filesystem and S3 backends.
type MediaStorage interface {
	Save(ctx context.Context, key string, r io.Reader, contentType string) error
	URL(key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ImageUpload is an uploaded file part. Filename is informational; the stored
// extension comes from the sniffed content.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

type CreatePostInput struct {
	Title   string       `json:"title" validate:"required,max=255"`
	Content string       `json:"content" validate:"required"`
	Image   *ImageUpload `json:"-" validate:"-"`
}

// UpdatePostInput carries only the fields the client sent. With Partial unset
// title and content are both required.
type UpdatePostInput struct {
	Title   *string
	Content *string
	Image   *ImageUpload
	Partial bool
}

type postFields struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

type PostUseCase interface {
	CreatePost(ctx context.Context, userID string, input CreatePostInput) (*entity.Post, error)
	GetPost(ctx context.Context, postID string) (*entity.Post, error)
	ListPosts(ctx context.Context) ([]*entity.Post, error)
	UpdatePost(ctx context.Context, postID, userID string, action permission.Action, input UpdatePostInput) (*entity.Post, error)
	DeletePost(ctx context.Context, postID, userID string, action permission.Action) error
	ImageURL(image string) (string, bool)
}

type postUseCase struct {
	postRepo persistent.PostRepository
	storage  MediaStorage
	policy   permission.Policy
	logger   *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	storage MediaStorage,
	policy permission.Policy,
	logger *logger.Logger,
) PostUseCase {
	if policy == nil {
		policy = permission.OwnerOrReadOnly
	}
	return &postUseCase{
		postRepo: postRepo,
		storage:  storage,
		policy:   policy,
		logger:   logger,
	}
}

func (uc *postUseCase) CreatePost(ctx context.Context, userID string, input CreatePostInput) (*entity.Post, error) {
	verr := validateStruct(input)

	var image *sniffedImage
	if input.Image != nil {
		var err error
		if image, err = sniffImage(input.Image); err != nil {
			return nil, err
		}
		if image == nil {
			verr.Add("image", msgInvalidImage)
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}

	post := &entity.Post{
		AuthorID: userID,
		Title:    input.Title,
		Content:  input.Content,
	}

	if image != nil {
		key, err := uc.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		post.Image = key
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		uc.discardImage(post.Image)
		uc.logger.Error("Failed to create post: %v", err)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.logger.Info("Post %s created by %s", post.ID, userID)
	return uc.GetPost(ctx, post.ID)
}

func (uc *postUseCase) GetPost(ctx context.Context, postID string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	return post, nil
}

func (uc *postUseCase) ListPosts(ctx context.Context) ([]*entity.Post, error) {
	posts, err := uc.postRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list posts: %v", err)
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (uc *postUseCase) UpdatePost(ctx context.Context, postID, userID string, action permission.Action, input UpdatePostInput) (*entity.Post, error) {
	post, err := uc.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !uc.policy.Allow(userID, post, writeAction(action, permission.ActionUpdate)) {
		return nil, entity.ErrForbidden
	}

	fields := postFields{}
	if input.Partial {
		fields.Title, fields.Content = post.Title, post.Content
	}
	if input.Title != nil {
		fields.Title = *input.Title
	}
	if input.Content != nil {
		fields.Content = *input.Content
	}

	verr := validateStruct(fields)

	var image *sniffedImage
	if input.Image != nil {
		if image, err = sniffImage(input.Image); err != nil {
			return nil, err
		}
		if image == nil {
			verr.Add("image", msgInvalidImage)
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}

	post.Title, post.Content = fields.Title, fields.Content

	var storedKey string
	if image != nil {
		if storedKey, err = uc.storeImage(ctx, image); err != nil {
			return nil, err
		}
		post.Image = storedKey
	}

	if err := uc.postRepo.Update(ctx, post); err != nil {
		uc.discardImage(storedKey)
		if errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		uc.logger.Error("Failed to update post: %v", err)
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return uc.GetPost(ctx, postID)
}

func (uc *postUseCase) DeletePost(ctx context.Context, postID, userID string, action permission.Action) error {
	post, err := uc.GetPost(ctx, postID)
	if err != nil {
		return err
	}

	if !uc.policy.Allow(userID, post, writeAction(action, permission.ActionDelete)) {
		return entity.ErrForbidden
	}

	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return err
		}
		uc.logger.Error("Failed to delete post: %v", err)
		return fmt.Errorf("failed to delete post: %w", err)
	}

	uc.logger.Info("Post %s deleted by %s", postID, userID)
	return nil
}

// writeAction keeps a mutation from being authorized as a read.
func writeAction(action, fallback permission.Action) permission.Action {
	if action == "" || action.IsSafe() {
		return fallback
	}
	return action
}

// ImageURL resolves a stored image key. Failures are logged and reported as
// no URL at all.
func (uc *postUseCase) ImageURL(image string) (string, bool) {
	if image == "" || uc.storage == nil {
		return "", false
	}
	url, err := uc.storage.URL(image)
	if err != nil {
		uc.logger.Warn("Failed to resolve image URL for %s: %v", image, err)
		return "", false
	}
	return url, true
}

type sniffedImage struct {
	data      []byte
	mediaType string
	extension string
}

// sniffImage returns nil without error when the bytes are not an image.
func sniffImage(upload *ImageUpload) (*sniffedImage, error) {
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, nil
	}

	return &sniffedImage{
		data:      data,
		mediaType: mtype.String(),
		extension: mtype.Extension(),
	}, nil
}

func (uc *postUseCase) storeImage(ctx context.Context, image *sniffedImage) (string, error) {
	if uc.storage == nil {
		return "", fmt.Errorf("no media storage configured")
	}

	key := fmt.Sprintf("posts/%s%s", uuid.New().String(), image.extension)
	if err := uc.storage.Save(ctx, key, bytes.NewReader(image.data), image.mediaType); err != nil {
		uc.logger.Error("Failed to store image: %v", err)
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return key, nil
}

// discardImage removes an object whose database row was never written.
func (uc *postUseCase) discardImage(key string) {
	if key == "" {
		return
	}
	if err := uc.storage.Delete(context.Background(), key); err != nil {
		uc.logger.Warn("Failed to remove orphaned image %s: %v", key, err)
	}
}
