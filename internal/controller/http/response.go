package http

import (
	"net/url"
	"strings"
	"time"

	"magazine/internal/entity"

	"github.com/gin-gonic/gin"
)

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type CommentResponse struct {
	ID        string       `json:"id"`
	Author    UserResponse `json:"author"`
	Body      string       `json:"body"`
	CreatedAt time.Time    `json:"created_at"`
}

type PostResponse struct {
	ID         string            `json:"id"`
	Author     UserResponse      `json:"author"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Image      *string           `json:"image"`
	ImageURL   *string           `json:"image_url"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Comments   []CommentResponse `json:"comments"`
	LikesCount int64             `json:"likes_count"`
}

type ProfileResponse struct {
	User   UserResponse `json:"user"`
	Avatar *string      `json:"avatar"`
	Bio    string       `json:"bio"`
}

type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
}

type DetailResponse struct {
	Detail string `json:"detail"`
}

func toUserResponse(u entity.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func toCommentResponse(comment *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Author:    toUserResponse(comment.Author),
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
}

func toProfileResponse(profile *entity.Profile) ProfileResponse {
	return ProfileResponse{
		User:   toUserResponse(profile.User),
		Avatar: nullable(profile.Avatar),
		Bio:    profile.Bio,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// absoluteURL resolves a storage URL against the host the request came in
// on. Already absolute URLs are returned untouched.
func absoluteURL(c *gin.Context, raw string) string {
	if parsed, err := url.Parse(raw); err == nil && parsed.IsAbs() {
		return raw
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.SplitN(proto, ",", 2)[0])
	}

	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return scheme + "://" + c.Request.Host + raw
}
