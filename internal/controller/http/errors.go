package http

import (
	"errors"
	"net/http"

	"magazine/internal/entity"
	"magazine/pkg/logger"

	"github.com/gin-gonic/gin"
)

// writeError maps use case errors onto status codes. Unknown errors are
// logged and hidden behind a generic 500.
func writeError(c *gin.Context, log *logger.Logger, err error) {
	var verr *entity.ValidationError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, verr.Fields)
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, DetailResponse{Detail: "Not found."})
	case errors.Is(err, entity.ErrForbidden):
		c.JSON(http.StatusForbidden, DetailResponse{Detail: "You do not have permission to perform this action."})
	case errors.Is(err, entity.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, DetailResponse{Detail: "No active account found with the given credentials"})
	case errors.Is(err, entity.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, DetailResponse{Detail: "Token is invalid or expired"})
	case errors.Is(err, entity.ErrAlreadyLiked):
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "already liked"})
	case errors.Is(err, entity.ErrNotLiked):
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "not liked"})
	default:
		log.Error("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "A server error occurred."})
	}
}

func writeBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, DetailResponse{Detail: "Malformed request: " + err.Error()})
}
