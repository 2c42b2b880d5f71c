package repository

import (
	"context"
	"errors"
	"time"

	"LessonHubAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// Create inserts a new user and returns the generated id. The unique index
// on email is the authoritative uniqueness guard; a concurrent insert that
// loses the race surfaces here as ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, u *model.User) (int64, error) {
	var id int64
	query := `INSERT INTO users (email, passwordhash, firstname, lastname, role, phonenumber, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING userid`
	err := r.DB.QueryRow(ctx, query, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.PhoneNumber, time.Now()).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicateEmail
		}
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := `SELECT userid, email, passwordhash, firstname, lastname, role, phonenumber, created_at, deleted_at
		FROM users
		WHERE email=$1 AND deleted_at IS NULL`
	err := r.DB.QueryRow(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role, &u.PhoneNumber, &u.CreatedAt, &u.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	query := `SELECT userid, email, passwordhash, firstname, lastname, role, phonenumber, created_at, deleted_at
		FROM users
		WHERE userid=$1 AND deleted_at IS NULL`
	err := r.DB.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role, &u.PhoneNumber, &u.CreatedAt, &u.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT userid, email, firstname, lastname, role, phonenumber, created_at, deleted_at
		FROM users ORDER BY userid`
	return r.scanUsers(ctx, query)
}

// ListByRole returns active users holding the given role, e.g. the teacher
// directory students browse when booking.
func (r *UserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	query := `SELECT userid, email, firstname, lastname, role, phonenumber, created_at, deleted_at
		FROM users WHERE role=$1 AND deleted_at IS NULL ORDER BY userid`
	return r.scanUsers(ctx, query, role)
}

func (r *UserRepository) scanUsers(ctx context.Context, query string, args ...interface{}) ([]model.User, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.PhoneNumber, &u.CreatedAt, &u.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName, phone *string) error {
	query := `UPDATE users SET
			firstname   = COALESCE($1, firstname),
			lastname    = COALESCE($2, lastname),
			phonenumber = COALESCE($3, phonenumber)
		WHERE userid=$4 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, firstName, lastName, phone, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate soft-deletes a user (sets deleted_at).
func (r *UserRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE users SET deleted_at=$1 WHERE userid=$2 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("user not found or already deactivated")
	}
	return nil
}

func (r *UserRepository) Reactivate(ctx context.Context, id int64) error {
	query := `UPDATE users SET deleted_at=NULL WHERE userid=$1 AND deleted_at IS NOT NULL`
	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("user not found or already active")
	}
	return nil
}
