package model

import "time"

type LessonStatus string

const (
	LessonScheduled LessonStatus = "scheduled"
	LessonCompleted LessonStatus = "completed"
	LessonCancelled LessonStatus = "cancelled"
	LessonNoShow    LessonStatus = "no-show"
)

func (s LessonStatus) Valid() bool {
	switch s {
	case LessonScheduled, LessonCompleted, LessonCancelled, LessonNoShow:
		return true
	}
	return false
}

type LessonType string

const (
	LessonIndividual LessonType = "individual"
	LessonGroup      LessonType = "group"
)

func (t LessonType) Valid() bool {
	return t == LessonIndividual || t == LessonGroup
}

type Lesson struct {
	LessonID      int64        `json:"lessonid"`
	TeacherID     int64        `json:"teacherid"`
	StudentID     int64        `json:"studentid"`
	StartDatetime time.Time    `json:"start_datetime"`
	EndDatetime   time.Time    `json:"end_datetime"`
	Status        LessonStatus `json:"status"`
	LessonType    LessonType   `json:"lesson_type"`
	Location      *string      `json:"location,omitempty"`
	Notes         *string      `json:"notes,omitempty"`
	CreatedAt     *time.Time   `json:"created_at,omitempty"`
}

// IsParticipant reports whether the given user takes part in the lesson.
func (l *Lesson) IsParticipant(userID int64) bool {
	return l.TeacherID == userID || l.StudentID == userID
}
