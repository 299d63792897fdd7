package main

import (
	"magazine/internal/app"
	"magazine/pkg/config"

	_ "magazine/docs" // Swagger docs
)

// @title           Magazine API
// @version         1.0
// @description     Social magazine: users, posts with images, comments and likes.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	serveErr := application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
	if serveErr != nil {
		panic(serveErr)
	}
}
