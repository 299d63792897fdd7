package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.error)
	assert.NotNil(t, logger.warn)
}

func TestLogger_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWithWriters(&out, &errOut)

	logger.Info("User %s registered", "alice")
	logger.Warn("Image URL for %s unavailable", "posts/a.png")
	logger.Error("Failed to create post: %v", "boom")

	assert.Contains(t, out.String(), "INFO: User alice registered")
	assert.NotContains(t, out.String(), "ERROR")
	assert.Contains(t, errOut.String(), "WARN: Image URL for posts/a.png unavailable")
	assert.Contains(t, errOut.String(), "ERROR: Failed to create post: boom")
}

func TestLogger_Formatting(t *testing.T) {
	var out bytes.Buffer
	logger := NewWithWriters(&out, &out)

	logger.Info("User %s logged in with ID %d", "john", 123)

	assert.Contains(t, out.String(), "User john logged in with ID 123")
}
