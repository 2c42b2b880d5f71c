package model

import "time"

// Availability is a weekly recurring slot during which a teacher accepts
// lessons. Times are "HH:MM" in the teacher's local timezone.
type Availability struct {
	AvailabilityID int64      `json:"availabilityid"`
	TeacherID      int64      `json:"teacherid"`
	DayOfWeek      int        `json:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartTime      string     `json:"start_time"`
	EndTime        string     `json:"end_time"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}
