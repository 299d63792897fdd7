package http

import (
	"errors"
	"net/http"
	"strings"

	"magazine/internal/entity"
	"magazine/internal/permission"
	"magazine/internal/usecase"
	"magazine/pkg/logger"
	"magazine/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

// PostRequest is used for both JSON and multipart bodies. Unset fields stay
// nil so PATCH can tell them apart from empty values.
type PostRequest struct {
	Title   *string `json:"title" form:"title"`
	Content *string `json:"content" form:"content"`
}

func (h *PostHandler) formatPostResponse(c *gin.Context, post *entity.Post) PostResponse {
	response := PostResponse{
		ID:         post.ID,
		Author:     toUserResponse(post.Author),
		Title:      post.Title,
		Content:    post.Content,
		Image:      nullable(post.Image),
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
		Comments:   make([]CommentResponse, 0, len(post.Comments)),
		LikesCount: post.LikesCount,
	}

	if imageURL, ok := h.postUseCase.ImageURL(post.Image); ok {
		resolved := absoluteURL(c, imageURL)
		response.ImageURL = &resolved
	}

	for i := range post.Comments {
		response.Comments = append(response.Comments, toCommentResponse(&post.Comments[i]))
	}

	return response
}

// ListPosts godoc
// @Summary      List posts
// @Description  Returns every post, newest first, with comments and like counts
// @Tags         posts
// @Produce      json
// @Success      200  {array}   PostResponse
// @Failure      500  {object}  DetailResponse
// @Router       /posts/ [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postUseCase.ListPosts(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	response := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		response = append(response, h.formatPostResponse(c, post))
	}

	c.JSON(http.StatusOK, response)
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post authored by the caller. Send multipart/form-data to attach an image, or JSON for a text-only post.
// @Tags         posts
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title    formData  string  true   "Post title"
// @Param        content  formData  string  true   "Post content"
// @Param        image    formData  file    false  "Image file"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  map[string][]string
// @Failure      401  {object}  DetailResponse
// @Router       /posts/ [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req PostRequest
	if err := bindBody(c, &req); err != nil {
		writeBadRequest(c, err)
		return
	}

	image, closeImage, err := h.imageUpload(c)
	if err != nil {
		writeBadRequest(c, err)
		return
	}
	defer closeImage()

	input := usecase.CreatePostInput{Image: image}
	if req.Title != nil {
		input.Title = *req.Title
	}
	if req.Content != nil {
		input.Content = *req.Content
	}

	post, err := h.postUseCase.CreatePost(c.Request.Context(), userID, input)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, h.formatPostResponse(c, post))
}

// GetPost godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  PostResponse
// @Failure      404  {object}  DetailResponse
// @Router       /posts/{id}/ [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, h.formatPostResponse(c, post))
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  PUT replaces title and content, PATCH changes only the fields sent. Only the author may update.
// @Tags         posts
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true   "Post ID"
// @Param        title    formData  string  false  "Post title"
// @Param        content  formData  string  false  "Post content"
// @Param        image    formData  file    false  "Replacement image"
// @Success      200  {object}  PostResponse
// @Failure      400  {object}  map[string][]string
// @Failure      401  {object}  DetailResponse
// @Failure      403  {object}  DetailResponse
// @Failure      404  {object}  DetailResponse
// @Router       /posts/{id}/ [put]
// @Router       /posts/{id}/ [patch]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req PostRequest
	if err := bindBody(c, &req); err != nil {
		writeBadRequest(c, err)
		return
	}

	image, closeImage, err := h.imageUpload(c)
	if err != nil {
		writeBadRequest(c, err)
		return
	}
	defer closeImage()

	action := permission.ActionFromMethod(c.Request.Method)
	post, err := h.postUseCase.UpdatePost(c.Request.Context(), c.Param("id"), userID, action, usecase.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Image:   image,
		Partial: c.Request.Method == http.MethodPatch,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, h.formatPostResponse(c, post))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Only the author may delete
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      204
// @Failure      401  {object}  DetailResponse
// @Failure      403  {object}  DetailResponse
// @Failure      404  {object}  DetailResponse
// @Router       /posts/{id}/ [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	action := permission.ActionFromMethod(c.Request.Method)
	if err := h.postUseCase.DeletePost(c.Request.Context(), c.Param("id"), userID, action); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// imageUpload opens the optional "image" part of a multipart request.
func (h *PostHandler) imageUpload(c *gin.Context) (*usecase.ImageUpload, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, noop, nil
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, nil
		}
		return nil, noop, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, noop, err
	}

	upload := &usecase.ImageUpload{
		Filename: fileHeader.Filename,
		Reader:   file,
	}
	return upload, func() { file.Close() }, nil
}
