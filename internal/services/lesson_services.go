package services

import (
	"context"
	"errors"
	"time"

	"LessonHubAPI/internal/model"
)

var (
	ErrForbidden     = errors.New("insufficient permissions")
	ErrInvalidLesson = errors.New("invalid lesson")
)

// LessonStore is the persistence slice the lesson flow needs.
// *repository.LessonRepository satisfies it.
type LessonStore interface {
	Create(ctx context.Context, l *model.Lesson) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Lesson, error)
	ListForUser(ctx context.Context, userID int64) ([]model.Lesson, error)
	List(ctx context.Context) ([]model.Lesson, error)
	Update(ctx context.Context, l *model.Lesson) error
	Cancel(ctx context.Context, id int64) error
}

type LessonService struct {
	Lessons LessonStore
	Users   UserStore
}

func NewLessonService(lessons LessonStore, users UserStore) *LessonService {
	return &LessonService{Lessons: lessons, Users: users}
}

type CreateLessonInput struct {
	TeacherID     int64
	StudentID     int64
	StartDatetime time.Time
	EndDatetime   time.Time
	LessonType    model.LessonType
	Location      *string
	Notes         *string
}

// Create books a lesson. Students may only book themselves in; teachers may
// only create lessons they give; admins may create any pairing. Scheduling
// conflicts are not checked here.
func (s *LessonService) Create(ctx context.Context, callerID int64, callerRole model.Role, in CreateLessonInput) (*model.Lesson, error) {
	switch callerRole {
	case model.RoleStudent:
		in.StudentID = callerID
	case model.RoleTeacher:
		in.TeacherID = callerID
	case model.RoleAdmin:
	default:
		return nil, ErrForbidden
	}

	if in.LessonType == "" {
		in.LessonType = model.LessonIndividual
	}
	if err := validateLessonInput(in); err != nil {
		return nil, err
	}

	teacher, err := s.Users.GetByID(ctx, in.TeacherID)
	if err != nil {
		return nil, errors.New("teacher not found")
	}
	if teacher.Role != model.RoleTeacher {
		return nil, errors.New("teacherid does not refer to a teacher")
	}
	student, err := s.Users.GetByID(ctx, in.StudentID)
	if err != nil {
		return nil, errors.New("student not found")
	}
	if student.Role != model.RoleStudent {
		return nil, errors.New("studentid does not refer to a student")
	}

	lesson := &model.Lesson{
		TeacherID:     in.TeacherID,
		StudentID:     in.StudentID,
		StartDatetime: in.StartDatetime,
		EndDatetime:   in.EndDatetime,
		Status:        model.LessonScheduled,
		LessonType:    in.LessonType,
		Location:      in.Location,
		Notes:         in.Notes,
	}
	id, err := s.Lessons.Create(ctx, lesson)
	if err != nil {
		return nil, err
	}
	lesson.LessonID = id
	return lesson, nil
}

func validateLessonInput(in CreateLessonInput) error {
	if in.TeacherID == 0 || in.StudentID == 0 {
		return errors.New("teacherid and studentid are required")
	}
	if in.StartDatetime.IsZero() || in.EndDatetime.IsZero() {
		return errors.New("start and end datetimes are required")
	}
	if !in.EndDatetime.After(in.StartDatetime) {
		return errors.New("end datetime must be after start datetime")
	}
	if !in.LessonType.Valid() {
		return errors.New("invalid lesson type")
	}
	return nil
}

// Get returns the lesson when the caller is a participant or an admin.
func (s *LessonService) Get(ctx context.Context, callerID int64, callerRole model.Role, id int64) (*model.Lesson, error) {
	l, err := s.Lessons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if callerRole != model.RoleAdmin && !l.IsParticipant(callerID) {
		return nil, ErrForbidden
	}
	return l, nil
}

func (s *LessonService) ListMine(ctx context.Context, callerID int64) ([]model.Lesson, error) {
	return s.Lessons.ListForUser(ctx, callerID)
}

func (s *LessonService) ListAll(ctx context.Context) ([]model.Lesson, error) {
	return s.Lessons.List(ctx)
}

type UpdateLessonInput struct {
	StartDatetime *time.Time
	EndDatetime   *time.Time
	Status        *model.LessonStatus
	LessonType    *model.LessonType
	Location      *string
	Notes         *string
}

// Update patches the given fields on a lesson the caller participates in
// (or any lesson for admins).
func (s *LessonService) Update(ctx context.Context, callerID int64, callerRole model.Role, id int64, in UpdateLessonInput) (*model.Lesson, error) {
	l, err := s.Lessons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if callerRole != model.RoleAdmin && !l.IsParticipant(callerID) {
		return nil, ErrForbidden
	}

	if in.StartDatetime != nil {
		l.StartDatetime = *in.StartDatetime
	}
	if in.EndDatetime != nil {
		l.EndDatetime = *in.EndDatetime
	}
	if !l.EndDatetime.After(l.StartDatetime) {
		return nil, errors.New("end datetime must be after start datetime")
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, errors.New("invalid lesson status")
		}
		l.Status = *in.Status
	}
	if in.LessonType != nil {
		if !in.LessonType.Valid() {
			return nil, errors.New("invalid lesson type")
		}
		l.LessonType = *in.LessonType
	}
	if in.Location != nil {
		l.Location = in.Location
	}
	if in.Notes != nil {
		l.Notes = in.Notes
	}

	if err := s.Lessons.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *LessonService) Cancel(ctx context.Context, callerID int64, callerRole model.Role, id int64) error {
	l, err := s.Lessons.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if callerRole != model.RoleAdmin && !l.IsParticipant(callerID) {
		return ErrForbidden
	}
	return s.Lessons.Cancel(ctx, l.LessonID)
}
