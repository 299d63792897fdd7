package http

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

// bindBody decodes a JSON or form body. An empty body is not an error; the
// use case reports the missing fields.
func bindBody(c *gin.Context, obj interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBind(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
