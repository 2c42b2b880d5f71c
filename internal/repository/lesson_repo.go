package repository

import (
	"context"
	"errors"
	"time"

	"LessonHubAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LessonRepository struct {
	DB *pgxpool.Pool
}

func NewLessonRepository(db *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(ctx context.Context, l *model.Lesson) (int64, error) {
	var id int64
	query := `INSERT INTO lessons (teacherid, studentid, start_datetime, end_datetime, status, lesson_type, location, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING lessonid`
	err := r.DB.QueryRow(ctx, query,
		l.TeacherID, l.StudentID, l.StartDatetime, l.EndDatetime, l.Status, l.LessonType, l.Location, l.Notes, time.Now()).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	var l model.Lesson
	query := `SELECT lessonid, teacherid, studentid, start_datetime, end_datetime, status, lesson_type, location, notes, created_at
		FROM lessons WHERE lessonid=$1`
	err := r.DB.QueryRow(ctx, query, id).
		Scan(&l.LessonID, &l.TeacherID, &l.StudentID, &l.StartDatetime, &l.EndDatetime, &l.Status, &l.LessonType, &l.Location, &l.Notes, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// ListForUser returns lessons where the user is either the teacher or the
// student, soonest first.
func (r *LessonRepository) ListForUser(ctx context.Context, userID int64) ([]model.Lesson, error) {
	query := `SELECT lessonid, teacherid, studentid, start_datetime, end_datetime, status, lesson_type, location, notes, created_at
		FROM lessons WHERE teacherid=$1 OR studentid=$1 ORDER BY start_datetime`
	return r.scanLessons(ctx, query, userID)
}

func (r *LessonRepository) List(ctx context.Context) ([]model.Lesson, error) {
	query := `SELECT lessonid, teacherid, studentid, start_datetime, end_datetime, status, lesson_type, location, notes, created_at
		FROM lessons ORDER BY start_datetime`
	return r.scanLessons(ctx, query)
}

func (r *LessonRepository) scanLessons(ctx context.Context, query string, args ...interface{}) ([]model.Lesson, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Lesson
	for rows.Next() {
		var l model.Lesson
		if err := rows.Scan(&l.LessonID, &l.TeacherID, &l.StudentID, &l.StartDatetime, &l.EndDatetime, &l.Status, &l.LessonType, &l.Location, &l.Notes, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LessonRepository) Update(ctx context.Context, l *model.Lesson) error {
	query := `UPDATE lessons SET
			start_datetime=$1, end_datetime=$2, status=$3, lesson_type=$4, location=$5, notes=$6
		WHERE lessonid=$7`
	tag, err := r.DB.Exec(ctx, query, l.StartDatetime, l.EndDatetime, l.Status, l.LessonType, l.Location, l.Notes, l.LessonID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Cancel flips the lesson status; the row itself stays for history.
func (r *LessonRepository) Cancel(ctx context.Context, id int64) error {
	query := `UPDATE lessons SET status=$1 WHERE lessonid=$2 AND status<>$1`
	tag, err := r.DB.Exec(ctx, query, model.LessonCancelled, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("lesson not found or already cancelled")
	}
	return nil
}
