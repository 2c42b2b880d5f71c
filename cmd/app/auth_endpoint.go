package main

import (
	"errors"
	"net/http"

	"LessonHubAPI/internal/middleware"
	"LessonHubAPI/internal/model"
	"LessonHubAPI/internal/services"
	"LessonHubAPI/internal/token"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Role        string  `json:"role,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func registerHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}

		user, pair, err := authSvc.Register(c.Request().Context(), services.RegisterInput{
			Email:       req.Email,
			Password:    req.Password,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Role:        model.Role(req.Role),
			PhoneNumber: req.PhoneNumber,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmailTaken):
				return c.JSON(http.StatusBadRequest, echo.Map{"message": "user with this email already exists"})
			case errors.Is(err, services.ErrInvalidInput):
				return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
			default:
				c.Logger().Errorf("registration error: %v", err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error during registration"})
			}
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"user":         user,
			"token":        pair.Token,
			"refreshToken": pair.RefreshToken,
		})
	}
}

func loginHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}

		user, pair, err := authSvc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
			case errors.Is(err, services.ErrInvalidCredentials):
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
			default:
				c.Logger().Errorf("login error: %v", err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error during login"})
			}
		}

		return c.JSON(http.StatusOK, echo.Map{
			"user":         user,
			"token":        pair.Token,
			"refreshToken": pair.RefreshToken,
		})
	}
}

func refreshHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(refreshRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		if req.RefreshToken == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "refresh token is required"})
		}

		pair, err := authSvc.Refresh(c.Request().Context(), req.RefreshToken)
		if err != nil {
			switch {
			case errors.Is(err, token.ErrExpired), errors.Is(err, token.ErrInvalid):
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid or expired refresh token"})
			case errors.Is(err, services.ErrUserNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
			default:
				c.Logger().Errorf("token refresh error: %v", err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error during token refresh"})
			}
		}

		return c.JSON(http.StatusOK, pair)
	}
}

// meHandler returns the authenticated user's claims straight from the token.
func meHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"id":    claims.UserID,
			"email": claims.Email,
			"role":  claims.Role,
			"exp":   claims.ExpiresAt,
		})
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService, ts *token.Service) {
	auth := g.Group("/auth")

	// public
	auth.POST("/register", registerHandler(authSvc))
	auth.POST("/login", loginHandler(authSvc))
	auth.POST("/refresh-token", refreshHandler(authSvc))

	// authenticated
	protected := auth.Group("")
	protected.Use(middleware.JWTMiddleware(ts))
	protected.GET("/me", meHandler())
}
