package token

import (
	"errors"
	"testing"
	"time"

	"LessonHubAPI/internal/model"
)

func newTestService() *Service {
	return NewService("access-secret", "refresh-secret", time.Minute, time.Hour, "test")
}

func testUser() *model.User {
	return &model.User{ID: 42, Email: "a@x.com", Role: model.RoleStudent}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	raw, err := svc.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	claims, err := svc.ParseAccessToken(raw)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "a@x.com" || claims.Role != model.RoleStudent {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("expected a token id")
	}
}

func TestRefreshTokenCarriesIDOnly(t *testing.T) {
	svc := newTestService()
	raw, err := svc.IssueRefreshToken(testUser())
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	claims, err := svc.ParseRefreshToken(raw)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("unexpected user id: %d", claims.UserID)
	}
	if claims.Email != "" || claims.Role != "" {
		t.Fatalf("refresh token should not carry email or role: %+v", claims)
	}
}

func TestExpiredToken(t *testing.T) {
	svc := NewService("access-secret", "refresh-secret", -time.Minute, -time.Minute, "test")
	raw, err := svc.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	if _, err := svc.ParseAccessToken(raw); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestSecretIsolation(t *testing.T) {
	svc := newTestService()
	access, err := svc.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	refresh, err := svc.IssueRefreshToken(testUser())
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	if _, err := svc.ParseRefreshToken(access); !errors.Is(err, ErrInvalid) {
		t.Fatalf("access token must not verify against refresh secret, got %v", err)
	}
	if _, err := svc.ParseAccessToken(refresh); !errors.Is(err, ErrInvalid) {
		t.Fatalf("refresh token must not verify against access secret, got %v", err)
	}
}

func TestMalformedToken(t *testing.T) {
	svc := newTestService()
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.ParseAccessToken(raw); !errors.Is(err, ErrInvalid) {
			t.Fatalf("expected ErrInvalid for %q, got %v", raw, err)
		}
	}
}

func TestForgedSignature(t *testing.T) {
	svc := newTestService()
	other := NewService("other-secret", "other-refresh", time.Minute, time.Hour, "test")

	raw, err := other.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := svc.ParseAccessToken(raw); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestIssuePair(t *testing.T) {
	svc := newTestService()
	pair, err := svc.IssuePair(testUser())
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if pair.Token == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if _, err := svc.ParseAccessToken(pair.Token); err != nil {
		t.Fatalf("access token does not verify: %v", err)
	}
	if _, err := svc.ParseRefreshToken(pair.RefreshToken); err != nil {
		t.Fatalf("refresh token does not verify: %v", err)
	}
}
