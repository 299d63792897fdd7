package http

import (
	"net/http"

	"magazine/pkg/jwt"
	"magazine/pkg/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Auth        *AuthHandler
	Post        *PostHandler
	Interaction *InteractionHandler
	Profile     *ProfileHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	MaxUploadBytes int64

	// MediaURL and MediaRoot are set when stored files are served by this
	// process.
	MediaURL  string
	MediaRoot string
}

func NewRouter(h Handlers, jwtService *jwt.Service, opts RouterOptions) *gin.Engine {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if opts.MediaURL != "" && opts.MediaRoot != "" {
		r.Static(opts.MediaURL, opts.MediaRoot)
	}

	r.POST("/register/", h.Auth.Register)
	r.POST("/token/", h.Auth.Token)
	r.POST("/token/refresh/", h.Auth.Refresh)

	// Read routes answer HEAD as well as GET.
	reads := map[string]gin.HandlerFunc{
		"/posts/":              h.Post.ListPosts,
		"/posts/:id/":          h.Post.GetPost,
		"/profiles/":           h.Profile.ListProfiles,
		"/profiles/:username/": h.Profile.GetProfile,
	}
	for path, handler := range reads {
		r.GET(path, handler)
		r.HEAD(path, handler)
	}

	// Protected routes
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		uploads := protected.Group("")
		uploads.Use(middleware.BodyLimitMiddleware(opts.MaxUploadBytes))
		{
			uploads.POST("/posts/", h.Post.CreatePost)
			uploads.PUT("/posts/:id/", h.Post.UpdatePost)
			uploads.PATCH("/posts/:id/", h.Post.UpdatePost)
		}
		protected.DELETE("/posts/:id/", h.Post.DeletePost)

		protected.POST("/posts/:id/like/", h.Interaction.Like)
		protected.POST("/posts/:id/unlike/", h.Interaction.Unlike)
		protected.POST("/posts/:id/comment/", h.Interaction.Comment)
	}

	return r
}
