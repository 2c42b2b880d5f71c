package main

import (
	"errors"
	"net/http"
	"strconv"

	"LessonHubAPI/internal/middleware"
	"LessonHubAPI/internal/repository"
	"LessonHubAPI/internal/services"
	"LessonHubAPI/internal/token"

	"github.com/labstack/echo/v4"
)

type updateProfileRequest struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

func registerUserRoutes(api *echo.Group, us *services.UserService, ts *token.Service) {
	users := api.Group("/users")
	users.Use(middleware.JWTMiddleware(ts))

	// GET /api/users/me
	users.GET("/me", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		u, err := us.Get(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		return c.JSON(http.StatusOK, u)
	})

	// PUT /api/users/me
	users.PUT("/me", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(updateProfileRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		if req.FirstName == nil && req.LastName == nil && req.PhoneNumber == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "nothing to update"})
		}
		if err := us.UpdateSelf(c.Request().Context(), claims.UserID, req.FirstName, req.LastName, req.PhoneNumber); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
			}
			c.Logger().Errorf("profile update error: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not update profile"})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
	})

	// GET /api/users/teachers — teacher directory for booking
	users.GET("/teachers", func(c echo.Context) error {
		list, err := us.ListTeachers(c.Request().Context())
		if err != nil {
			c.Logger().Errorf("teacher list error: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not list teachers"})
		}
		return c.JSON(http.StatusOK, list)
	})

	// Admin management group
	admin := api.Group("/admin")
	admin.Use(middleware.JWTMiddleware(ts))
	admin.Use(middleware.AdminOnly)

	admin.GET("/users", func(c echo.Context) error {
		list, err := us.List(c.Request().Context())
		if err != nil {
			c.Logger().Errorf("user list error: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not list users"})
		}
		return c.JSON(http.StatusOK, list)
	})

	admin.GET("/users/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		u, err := us.Get(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		return c.JSON(http.StatusOK, u)
	})

	admin.POST("/users/:id/deactivate", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		if err := us.Deactivate(c.Request().Context(), id); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "user deactivated"})
	})

	admin.POST("/users/:id/reactivate", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		if err := us.Reactivate(c.Request().Context(), id); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "user reactivated"})
	})
}
