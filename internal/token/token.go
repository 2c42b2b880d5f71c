package token

import (
	"errors"
	"time"

	"LessonHubAPI/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("invalid token")
)

// Claims is the JWT payload for both token classes. Refresh tokens carry the
// user id only; Email and Role stay empty there.
type Claims struct {
	UserID int64      `json:"id"`
	Email  string     `json:"email,omitempty"`
	Role   model.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Service issues and verifies the two token classes. Access and refresh
// tokens are signed with independent secrets so a leaked access secret only
// exposes short-lived tokens. Issued tokens are never persisted: validity is
// a function of signature and expiry alone, so a token cannot be revoked
// before its natural expiry and a rotated refresh token does not invalidate
// its predecessor.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

func NewService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, issuer string) *Service {
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        issuer,
	}
}

// Pair is the session bundle returned to clients after a successful
// authentication event.
type Pair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func (s *Service) IssueAccessToken(u *model.User) (string, error) {
	return s.sign(&Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	}, s.accessSecret, s.accessTTL)
}

func (s *Service) IssueRefreshToken(u *model.User) (string, error) {
	return s.sign(&Claims{UserID: u.ID}, s.refreshSecret, s.refreshTTL)
}

// IssuePair mints the session bundle.
func (s *Service) IssuePair(u *model.User) (*Pair, error) {
	access, err := s.IssueAccessToken(u)
	if err != nil {
		return nil, err
	}
	refresh, err := s.IssueRefreshToken(u)
	if err != nil {
		return nil, err
	}
	return &Pair{Token: access, RefreshToken: refresh}, nil
}

func (s *Service) ParseAccessToken(raw string) (*Claims, error) {
	return s.parse(raw, s.accessSecret)
}

func (s *Service) ParseRefreshToken(raw string) (*Claims, error) {
	return s.parse(raw, s.refreshSecret)
}

func (s *Service) sign(claims *Claims, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(), // room for a future denylist
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// parse verifies signature and expiry. Callers see exactly two failure
// categories: ErrExpired and ErrInvalid.
func (s *Service) parse(raw string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}
