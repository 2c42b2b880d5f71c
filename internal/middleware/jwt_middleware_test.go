package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"LessonHubAPI/internal/model"
	"LessonHubAPI/internal/token"

	"github.com/labstack/echo/v4"
)

func newTestTokenService() *token.Service {
	return token.NewService("access-secret", "refresh-secret", time.Minute, time.Hour, "test")
}

func runMiddleware(t *testing.T, ts *token.Service, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := JWTMiddleware(ts)(func(c echo.Context) error {
		reached = true
		return c.JSON(http.StatusOK, echo.Map{"email": GetClaims(c).Email})
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, reached
}

func TestMissingAuthorizationHeader(t *testing.T) {
	rec, reached := runMiddleware(t, newTestTokenService(), "")
	if rec.Code != http.StatusUnauthorized || reached {
		t.Fatalf("expected 401 without pass-through, got %d reached=%v", rec.Code, reached)
	}
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	for _, header := range []string{"sometoken", "Basic abc", "Bearer a b"} {
		rec, reached := runMiddleware(t, newTestTokenService(), header)
		if rec.Code != http.StatusUnauthorized || reached {
			t.Fatalf("header %q: expected 401, got %d reached=%v", header, rec.Code, reached)
		}
	}
}

func TestForgedToken(t *testing.T) {
	ts := newTestTokenService()
	other := token.NewService("other-secret", "other-refresh", time.Minute, time.Hour, "test")
	raw, err := other.IssueAccessToken(&model.User{ID: 1, Email: "a@x.com", Role: model.RoleStudent})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	rec, reached := runMiddleware(t, ts, "Bearer "+raw)
	if rec.Code != http.StatusUnauthorized || reached {
		t.Fatalf("expected 401, got %d reached=%v", rec.Code, reached)
	}
}

func TestValidTokenPassesThrough(t *testing.T) {
	ts := newTestTokenService()
	raw, err := ts.IssueAccessToken(&model.User{ID: 1, Email: "a@x.com", Role: model.RoleStudent})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	rec, reached := runMiddleware(t, ts, "Bearer "+raw)
	if rec.Code != http.StatusOK || !reached {
		t.Fatalf("expected 200 with pass-through, got %d reached=%v", rec.Code, reached)
	}
}

func runGate(t *testing.T, claims *token.Claims, roles ...model.Role) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(claimsKey, claims)
	}

	reached := false
	h := RequireRoles(roles...)(func(c echo.Context) error {
		reached = true
		return c.JSON(http.StatusOK, echo.Map{"message": "ok"})
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, reached
}

func TestRequireRolesForbidden(t *testing.T) {
	claims := &token.Claims{UserID: 1, Role: model.RoleStudent}
	rec, reached := runGate(t, claims, model.RoleTeacher, model.RoleAdmin)
	if rec.Code != http.StatusForbidden || reached {
		t.Fatalf("expected 403, got %d reached=%v", rec.Code, reached)
	}
}

func TestRequireRolesAllowed(t *testing.T) {
	claims := &token.Claims{UserID: 1, Role: model.RoleStudent}
	rec, reached := runGate(t, claims, model.RoleStudent, model.RoleAdmin)
	if rec.Code != http.StatusOK || !reached {
		t.Fatalf("expected 200, got %d reached=%v", rec.Code, reached)
	}
}

func TestRequireRolesWithoutClaims(t *testing.T) {
	rec, reached := runGate(t, nil, model.RoleAdmin)
	if rec.Code != http.StatusUnauthorized || reached {
		t.Fatalf("expected 401, got %d reached=%v", rec.Code, reached)
	}
}
