package http

import (
	"net/http"

	"magazine/internal/usecase"
	"magazine/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *logger.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

type RegisterRequest struct {
	Username string `json:"username" form:"username" example:"alice"`
	Email    string `json:"email" form:"email" example:"alice@example.com"`
	Password string `json:"password" form:"password" example:"s3cret!"`
}

type TokenRequest struct {
	Username string `json:"username" form:"username" example:"alice"`
	Password string `json:"password" form:"password" example:"s3cret!"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" form:"refresh"`
}

type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a user with an empty profile and returns an access/refresh token pair. All field errors are reported at once.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  RegisterResponse
// @Failure      400  {object}  map[string][]string
// @Failure      500  {object}  DetailResponse
// @Router       /register/ [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindBody(c, &req); err != nil {
		writeBadRequest(c, err)
		return
	}

	user, tokens, err := h.authUseCase.Register(c.Request.Context(), usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Access:   tokens.Access,
		Refresh:  tokens.Refresh,
	})
}

// Token godoc
// @Summary      Obtain a token pair
// @Description  Exchanges username and password for an access/refresh token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body TokenRequest true "Credentials"
// @Success      200  {object}  TokenResponse
// @Failure      400  {object}  map[string][]string
// @Failure      401  {object}  DetailResponse
// @Router       /token/ [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := bindBody(c, &req); err != nil {
		writeBadRequest(c, err)
		return
	}

	tokens, err := h.authUseCase.Login(c.Request.Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Access: tokens.Access, Refresh: tokens.Refresh})
}

// Refresh godoc
// @Summary      Rotate a refresh token
// @Description  Returns a new token pair. Each refresh token can be used once.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest true "Refresh token"
// @Success      200  {object}  TokenResponse
// @Failure      400  {object}  map[string][]string
// @Failure      401  {object}  DetailResponse
// @Router       /token/refresh/ [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := bindBody(c, &req); err != nil {
		writeBadRequest(c, err)
		return
	}

	tokens, err := h.authUseCase.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Access: tokens.Access, Refresh: tokens.Refresh})
}
