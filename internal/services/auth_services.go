package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"LessonHubAPI/internal/model"
	"LessonHubAPI/internal/repository"
	"LessonHubAPI/internal/token"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen = 6
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInput marks caller mistakes so the endpoint layer can answer
	// 400 without leaking store or crypto failures.
	ErrInvalidInput = errors.New("invalid input")
)

// UserStore is the slice of the persistence layer the auth flow needs.
// *repository.UserRepository satisfies it.
type UserStore interface {
	Create(ctx context.Context, u *model.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type AuthService struct {
	Users          UserStore
	Tokens         *token.Service
	EmailValidator EmailValidator
}

func NewAuthService(users UserStore, tokens *token.Service, ev EmailValidator) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, EmailValidator: ev}
}

type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        model.Role
	PhoneNumber *string
}

func (s *AuthService) validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	return nil
}

func (s *AuthService) validatePassword(pw string) error {
	if len(pw) < MinPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLen)
	}
	return nil
}

// Register creates a new user and mints their first session bundle. The
// EmailExists pre-check is advisory; the store's unique constraint is the
// authoritative guard against concurrent registrations, and its rejection
// also surfaces as ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, *token.Pair, error) {
	if err := s.validateEmail(in.Email); err != nil {
		return nil, nil, err
	}
	if err := s.validatePassword(in.Password); err != nil {
		return nil, nil, err
	}
	if in.Role == "" {
		in.Role = model.RoleStudent
	}
	if !in.Role.Valid() {
		return nil, nil, fmt.Errorf("%w: invalid role %q", ErrInvalidInput, in.Role)
	}
	if s.EmailValidator != nil {
		if err := s.EmailValidator.Validate(ctx, in.Email); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	exists, err := s.Users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		PhoneNumber:  in.PhoneNumber,
	}
	id, err := s.Users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}
	user.ID = id

	pair, err := s.Tokens.IssuePair(user)
	if err != nil {
		return nil, nil, err
	}

	// zero out the hash before returning
	user.PasswordHash = ""
	return user, pair, nil
}

// Login authenticates email + password and mints a fresh session bundle.
// Read-only: no store mutation.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, *token.Pair, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.Tokens.IssuePair(u)
	if err != nil {
		return nil, nil, err
	}

	u.PasswordHash = ""
	return u, pair, nil
}

// Refresh exchanges a valid refresh token for a fully rotated session
// bundle. The previous refresh token stays valid until its own expiry; there
// is no server-side token state to revoke it against.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*token.Pair, error) {
	claims, err := s.Tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.Tokens.IssuePair(u)
}
