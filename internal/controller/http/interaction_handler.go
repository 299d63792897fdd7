package http

import (
	"net/http"

	"magazine/internal/usecase"
	"magazine/pkg/logger"
	"magazine/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	interactionUseCase usecase.InteractionUseCase
	logger             *logger.Logger
}

func NewInteractionHandler(interactionUseCase usecase.InteractionUseCase, logger *logger.Logger) *InteractionHandler {
	return &InteractionHandler{
		interactionUseCase: interactionUseCase,
		logger:             logger,
	}
}

type CommentRequest struct {
	Body string `json:"body" form:"body" example:"Great read!"`
}

// Like godoc
// @Summary      Like a post
// @Tags         interactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      201  {object}  DetailResponse
// @Failure      400  {object}  DetailResponse
// @Failure      401  {object}  DetailResponse
// @Failure      404  {object}  DetailResponse
// @Router       /posts/{id}/like/ [post]
func (h *InteractionHandler) Like(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	if err := h.interactionUseCase.Like(c.Request.Context(), c.Param("id"), userID); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, DetailResponse{Detail: "liked"})
}

// Unlike godoc
// @Summary      Remove a like
// @Tags         interactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  DetailResponse
// @Failure      400  {object}  DetailResponse
// @Failure      401  {object}  DetailResponse
// @Failure      404  {object}  DetailResponse
// @Router       /posts/{id}/unlike/ [post]
func (h *InteractionHandler) Unlike(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	if err := h.interactionUseCase.Unlike(c.Request.Context(), c.Param("id"), userID); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, DetailResponse{Detail: "unliked"})
}

// Comment godoc
// @Summary      Comment on a post
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string          true  "Post ID"
// @Param        request  body  CommentRequest  true  "Comment"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  map[string][]string
// @Failure      401  {object}  DetailResponse
// @Failure      404  {object}  DetailResponse
// @Router       /posts/{id}/comment/ [post]
func (h *InteractionHandler) Comment(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req CommentRequest
	if err := bindBody(c, &req); err != nil {
		writeBadRequest(c, err)
		return
	}

	comment, err := h.interactionUseCase.Comment(c.Request.Context(), c.Param("id"), userID, usecase.CommentInput{Body: req.Body})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(comment))
}
