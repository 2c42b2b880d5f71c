package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"LessonHubAPI/internal/middleware"
	"LessonHubAPI/internal/model"
	"LessonHubAPI/internal/repository"
	"LessonHubAPI/internal/services"
	"LessonHubAPI/internal/token"

	"github.com/labstack/echo/v4"
)

type createLessonRequest struct {
	TeacherID     int64     `json:"teacherid"`
	StudentID     int64     `json:"studentid"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	LessonType    string    `json:"lesson_type,omitempty"`
	Location      *string   `json:"location,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
}

type updateLessonRequest struct {
	StartDatetime *time.Time `json:"start_datetime,omitempty"`
	EndDatetime   *time.Time `json:"end_datetime,omitempty"`
	Status        *string    `json:"status,omitempty"`
	LessonType    *string    `json:"lesson_type,omitempty"`
	Location      *string    `json:"location,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

func lessonErrJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "lesson not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"message": "insufficient permissions"})
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
}

func registerLessonRoutes(api *echo.Group, ls *services.LessonService, ts *token.Service) {
	lessons := api.Group("/lessons")
	lessons.Use(middleware.JWTMiddleware(ts))

	// CREATE — students book themselves, teachers create their own lessons,
	// admins create any pairing
	lessons.POST("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(createLessonRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		lesson, err := ls.Create(c.Request().Context(), claims.UserID, claims.Role, services.CreateLessonInput{
			TeacherID:     req.TeacherID,
			StudentID:     req.StudentID,
			StartDatetime: req.StartDatetime,
			EndDatetime:   req.EndDatetime,
			LessonType:    model.LessonType(req.LessonType),
			Location:      req.Location,
			Notes:         req.Notes,
		})
		if err != nil {
			return lessonErrJSON(c, err)
		}
		return c.JSON(http.StatusCreated, lesson)
	})

	// GET /api/lessons/mine
	lessons.GET("/mine", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		list, err := ls.ListMine(c.Request().Context(), claims.UserID)
		if err != nil {
			c.Logger().Errorf("lesson list error: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not list lessons"})
		}
		return c.JSON(http.StatusOK, list)
	})

	// GET /api/lessons/:id — participant or admin
	lessons.GET("/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		lesson, err := ls.Get(c.Request().Context(), claims.UserID, claims.Role, id)
		if err != nil {
			return lessonErrJSON(c, err)
		}
		return c.JSON(http.StatusOK, lesson)
	})

	// UPDATE
	lessons.PUT("/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		req := new(updateLessonRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		in := services.UpdateLessonInput{
			StartDatetime: req.StartDatetime,
			EndDatetime:   req.EndDatetime,
			Location:      req.Location,
			Notes:         req.Notes,
		}
		if req.Status != nil {
			st := model.LessonStatus(*req.Status)
			in.Status = &st
		}
		if req.LessonType != nil {
			lt := model.LessonType(*req.LessonType)
			in.LessonType = &lt
		}
		lesson, err := ls.Update(c.Request().Context(), claims.UserID, claims.Role, id, in)
		if err != nil {
			return lessonErrJSON(c, err)
		}
		return c.JSON(http.StatusOK, lesson)
	})

	// CANCEL
	lessons.DELETE("/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		if err := ls.Cancel(c.Request().Context(), claims.UserID, claims.Role, id); err != nil {
			return lessonErrJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "lesson cancelled"})
	})

	// Admin list of everything
	admin := api.Group("/admin")
	admin.Use(middleware.JWTMiddleware(ts))
	admin.Use(middleware.AdminOnly)

	admin.GET("/lessons", func(c echo.Context) error {
		list, err := ls.ListAll(c.Request().Context())
		if err != nil {
			c.Logger().Errorf("lesson list error: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not list lessons"})
		}
		return c.JSON(http.StatusOK, list)
	})
}
