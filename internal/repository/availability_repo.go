package repository

import (
	"context"
	"errors"
	"time"

	"LessonHubAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AvailabilityRepository struct {
	DB *pgxpool.Pool
}

func NewAvailabilityRepository(db *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

func (r *AvailabilityRepository) Create(ctx context.Context, a *model.Availability) (int64, error) {
	var id int64
	query := `INSERT INTO availability (teacherid, day_of_week, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING availabilityid`
	if err := r.DB.QueryRow(ctx, query, a.TeacherID, a.DayOfWeek, a.StartTime, a.EndTime, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *AvailabilityRepository) GetByID(ctx context.Context, id int64) (*model.Availability, error) {
	var a model.Availability
	query := `SELECT availabilityid, teacherid, day_of_week, start_time, end_time, created_at
		FROM availability WHERE availabilityid=$1`
	err := r.DB.QueryRow(ctx, query, id).
		Scan(&a.AvailabilityID, &a.TeacherID, &a.DayOfWeek, &a.StartTime, &a.EndTime, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AvailabilityRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]model.Availability, error) {
	query := `SELECT availabilityid, teacherid, day_of_week, start_time, end_time, created_at
		FROM availability WHERE teacherid=$1 ORDER BY day_of_week, start_time`
	rows, err := r.DB.Query(ctx, query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Availability
	for rows.Next() {
		var a model.Availability
		if err := rows.Scan(&a.AvailabilityID, &a.TeacherID, &a.DayOfWeek, &a.StartTime, &a.EndTime, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AvailabilityRepository) Update(ctx context.Context, a *model.Availability) error {
	query := `UPDATE availability SET day_of_week=$1, start_time=$2, end_time=$3 WHERE availabilityid=$4`
	tag, err := r.DB.Exec(ctx, query, a.DayOfWeek, a.StartTime, a.EndTime, a.AvailabilityID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM availability WHERE availabilityid=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
