package http

import (
	"net/http"

	"magazine/internal/usecase"
	"magazine/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUseCase usecase.ProfileUseCase
	logger         *logger.Logger
}

func NewProfileHandler(profileUseCase usecase.ProfileUseCase, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

// ListProfiles godoc
// @Summary      List profiles
// @Tags         profiles
// @Produce      json
// @Success      200  {array}   ProfileResponse
// @Router       /profiles/ [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.profileUseCase.ListProfiles(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	response := make([]ProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		response = append(response, toProfileResponse(profile))
	}

	c.JSON(http.StatusOK, response)
}

// GetProfile godoc
// @Summary      Get a profile by username
// @Tags         profiles
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  ProfileResponse
// @Failure      404       {object}  DetailResponse
// @Router       /profiles/{username}/ [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileUseCase.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(profile))
}
