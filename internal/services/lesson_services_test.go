package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"LessonHubAPI/internal/model"
	"LessonHubAPI/internal/repository"
)

type fakeLessonStore struct {
	lessons map[int64]*model.Lesson
	nextID  int64
}

func newFakeLessonStore() *fakeLessonStore {
	return &fakeLessonStore{lessons: map[int64]*model.Lesson{}}
}

func (f *fakeLessonStore) Create(_ context.Context, l *model.Lesson) (int64, error) {
	f.nextID++
	stored := *l
	stored.LessonID = f.nextID
	f.lessons[stored.LessonID] = &stored
	return stored.LessonID, nil
}

func (f *fakeLessonStore) GetByID(_ context.Context, id int64) (*model.Lesson, error) {
	l, ok := f.lessons[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *l
	return &copied, nil
}

func (f *fakeLessonStore) ListForUser(_ context.Context, userID int64) ([]model.Lesson, error) {
	var out []model.Lesson
	for _, l := range f.lessons {
		if l.IsParticipant(userID) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLessonStore) List(_ context.Context) ([]model.Lesson, error) {
	var out []model.Lesson
	for _, l := range f.lessons {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeLessonStore) Update(_ context.Context, l *model.Lesson) error {
	if _, ok := f.lessons[l.LessonID]; !ok {
		return repository.ErrNotFound
	}
	copied := *l
	f.lessons[l.LessonID] = &copied
	return nil
}

func (f *fakeLessonStore) Cancel(_ context.Context, id int64) error {
	l, ok := f.lessons[id]
	if !ok {
		return repository.ErrNotFound
	}
	l.Status = model.LessonCancelled
	return nil
}

func newTestLessonService() (*LessonService, *fakeLessonStore, *fakeUserStore) {
	users := newFakeUserStore()
	users.users[1] = &model.User{ID: 1, Email: "t@x.com", Role: model.RoleTeacher}
	users.users[2] = &model.User{ID: 2, Email: "s@x.com", Role: model.RoleStudent}
	users.users[3] = &model.User{ID: 3, Email: "s2@x.com", Role: model.RoleStudent}
	lessons := newFakeLessonStore()
	return NewLessonService(lessons, users), lessons, users
}

func lessonWindow() (time.Time, time.Time) {
	start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	return start, start.Add(time.Hour)
}

func TestStudentBooksThemselves(t *testing.T) {
	svc, _, _ := newTestLessonService()
	start, end := lessonWindow()

	// student 2 tries to book on behalf of student 3; their own id wins
	lesson, err := svc.Create(context.Background(), 2, model.RoleStudent, CreateLessonInput{
		TeacherID:     1,
		StudentID:     3,
		StartDatetime: start,
		EndDatetime:   end,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if lesson.StudentID != 2 || lesson.TeacherID != 1 {
		t.Fatalf("unexpected participants: %+v", lesson)
	}
	if lesson.Status != model.LessonScheduled || lesson.LessonType != model.LessonIndividual {
		t.Fatalf("unexpected defaults: %+v", lesson)
	}
}

func TestTeacherCreatesOwnLessons(t *testing.T) {
	svc, _, _ := newTestLessonService()
	start, end := lessonWindow()

	lesson, err := svc.Create(context.Background(), 1, model.RoleTeacher, CreateLessonInput{
		TeacherID:     99, // ignored, caller is the teacher
		StudentID:     2,
		StartDatetime: start,
		EndDatetime:   end,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if lesson.TeacherID != 1 {
		t.Fatalf("teacher id not forced to caller: %+v", lesson)
	}
}

func TestCreateRejectsBadWindow(t *testing.T) {
	svc, _, _ := newTestLessonService()
	start, _ := lessonWindow()

	_, err := svc.Create(context.Background(), 2, model.RoleStudent, CreateLessonInput{
		TeacherID:     1,
		StartDatetime: start,
		EndDatetime:   start,
	})
	if err == nil {
		t.Fatalf("expected error for zero-length window")
	}
}

func TestCreateRejectsWrongRoles(t *testing.T) {
	svc, _, _ := newTestLessonService()
	start, end := lessonWindow()

	// teacherid points at a student
	_, err := svc.Create(context.Background(), 2, model.RoleStudent, CreateLessonInput{
		TeacherID:     3,
		StartDatetime: start,
		EndDatetime:   end,
	})
	if err == nil {
		t.Fatalf("expected error when teacherid is not a teacher")
	}
}

func TestGetRequiresParticipantOrAdmin(t *testing.T) {
	svc, _, _ := newTestLessonService()
	start, end := lessonWindow()

	lesson, err := svc.Create(context.Background(), 2, model.RoleStudent, CreateLessonInput{
		TeacherID: 1, StartDatetime: start, EndDatetime: end,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if _, err := svc.Get(context.Background(), 3, model.RoleStudent, lesson.LessonID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for outsider, got %v", err)
	}
	if _, err := svc.Get(context.Background(), 1, model.RoleTeacher, lesson.LessonID); err != nil {
		t.Fatalf("participant read error: %v", err)
	}
	if _, err := svc.Get(context.Background(), 99, model.RoleAdmin, lesson.LessonID); err != nil {
		t.Fatalf("admin read error: %v", err)
	}
}

func TestUpdateValidatesStatus(t *testing.T) {
	svc, _, _ := newTestLessonService()
	start, end := lessonWindow()

	lesson, err := svc.Create(context.Background(), 2, model.RoleStudent, CreateLessonInput{
		TeacherID: 1, StartDatetime: start, EndDatetime: end,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	bad := model.LessonStatus("postponed")
	if _, err := svc.Update(context.Background(), 1, model.RoleTeacher, lesson.LessonID, UpdateLessonInput{Status: &bad}); err == nil {
		t.Fatalf("expected error for unknown status")
	}

	done := model.LessonCompleted
	updated, err := svc.Update(context.Background(), 1, model.RoleTeacher, lesson.LessonID, UpdateLessonInput{Status: &done})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.Status != model.LessonCompleted {
		t.Fatalf("status not applied: %+v", updated)
	}
}

func TestCancel(t *testing.T) {
	svc, store, _ := newTestLessonService()
	start, end := lessonWindow()

	lesson, err := svc.Create(context.Background(), 2, model.RoleStudent, CreateLessonInput{
		TeacherID: 1, StartDatetime: start, EndDatetime: end,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := svc.Cancel(context.Background(), 3, model.RoleStudent, lesson.LessonID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for outsider, got %v", err)
	}
	if err := svc.Cancel(context.Background(), 2, model.RoleStudent, lesson.LessonID); err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if store.lessons[lesson.LessonID].Status != model.LessonCancelled {
		t.Fatalf("lesson not cancelled: %+v", store.lessons[lesson.LessonID])
	}
}
