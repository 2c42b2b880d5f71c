package main

import (
	"context"
	"log"
	"net/http"

	"LessonHubAPI/external/abstractapi"
	"LessonHubAPI/internal/config"
	"LessonHubAPI/internal/db"
	"LessonHubAPI/internal/repository"
	"LessonHubAPI/internal/services"
	"LessonHubAPI/internal/token"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	// ======================
	// CONFIG
	// ======================
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	tokenSvc := token.NewService(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, cfg.Issuer)

	// ======================
	// EXTERNALS
	// ======================
	var emailValidator services.EmailValidator
	if cfg.AbstractAPIKey != "" {
		emailValidator, err = abstractapi.NewReputationValidator(cfg.AbstractAPIKey)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		emailValidator = services.NewLocalValidator()
	}

	// ======================
	// REPOSITORIES
	// ======================
	userRepo := repository.NewUserRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool)
	availRepo := repository.NewAvailabilityRepository(pool)

	// ======================
	// SERVICES
	// ======================
	authSvc := services.NewAuthService(userRepo, tokenSvc, emailValidator)
	userSvc := services.NewUserService(userRepo)
	lessonSvc := services.NewLessonService(lessonRepo, userRepo)
	availSvc := services.NewAvailabilityService(availRepo)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	api := e.Group("/api")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc, tokenSvc)
	registerUserRoutes(api, userSvc, tokenSvc)
	registerLessonRoutes(api, lessonSvc, tokenSvc)
	registerAvailabilityRoutes(api, availSvc, tokenSvc)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
