package main

import (
	"errors"
	"net/http"
	"strconv"

	"LessonHubAPI/internal/middleware"
	"LessonHubAPI/internal/model"
	"LessonHubAPI/internal/repository"
	"LessonHubAPI/internal/services"
	"LessonHubAPI/internal/token"

	"github.com/labstack/echo/v4"
)

type availabilityRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func registerAvailabilityRoutes(api *echo.Group, as *services.AvailabilityService, ts *token.Service) {
	avail := api.Group("/availability")
	avail.Use(middleware.JWTMiddleware(ts))

	// GET /api/availability/teachers/:id — browse a teacher's slots
	avail.GET("/teachers/:id", func(c echo.Context) error {
		teacherID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		list, err := as.ListByTeacher(c.Request().Context(), teacherID)
		if err != nil {
			c.Logger().Errorf("availability list error: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not list availability"})
		}
		return c.JSON(http.StatusOK, list)
	})

	// CREATE — teachers publish their own slots
	teacherOnly := avail.Group("")
	teacherOnly.Use(middleware.RequireRoles(model.RoleTeacher))

	teacherOnly.POST("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(availabilityRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		slot, err := as.Create(c.Request().Context(), claims.UserID, req.DayOfWeek, req.StartTime, req.EndTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		return c.JSON(http.StatusCreated, slot)
	})

	// UPDATE / DELETE — owning teacher or admin
	avail.PUT("/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		req := new(availabilityRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		if err := as.Update(c.Request().Context(), claims.UserID, claims.Role, id, req.DayOfWeek, req.StartTime, req.EndTime); err != nil {
			return availabilityErrJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
	})

	avail.DELETE("/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		if err := as.Delete(c.Request().Context(), claims.UserID, claims.Role, id); err != nil {
			return availabilityErrJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
	})
}

func availabilityErrJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "availability slot not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"message": "insufficient permissions"})
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
}
