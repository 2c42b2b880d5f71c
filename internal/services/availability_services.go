package services

import (
	"context"
	"errors"
	"regexp"

	"LessonHubAPI/internal/model"
	"LessonHubAPI/internal/repository"
)

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type AvailabilityService struct {
	Repo *repository.AvailabilityRepository
}

func NewAvailabilityService(r *repository.AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{Repo: r}
}

func validateSlot(dayOfWeek int, startTime, endTime string) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return errors.New("day_of_week must be between 0 and 6")
	}
	if !timeOfDayRegex.MatchString(startTime) || !timeOfDayRegex.MatchString(endTime) {
		return errors.New("times must be in HH:MM format")
	}
	if endTime <= startTime {
		return errors.New("end_time must be after start_time")
	}
	return nil
}

func (s *AvailabilityService) Create(ctx context.Context, teacherID int64, dayOfWeek int, startTime, endTime string) (*model.Availability, error) {
	if err := validateSlot(dayOfWeek, startTime, endTime); err != nil {
		return nil, err
	}
	slot := &model.Availability{
		TeacherID: teacherID,
		DayOfWeek: dayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
	}
	id, err := s.Repo.Create(ctx, slot)
	if err != nil {
		return nil, err
	}
	slot.AvailabilityID = id
	return slot, nil
}

func (s *AvailabilityService) ListByTeacher(ctx context.Context, teacherID int64) ([]model.Availability, error) {
	return s.Repo.ListByTeacher(ctx, teacherID)
}

// Update rewrites a slot. Only the owning teacher or an admin may touch it.
func (s *AvailabilityService) Update(ctx context.Context, callerID int64, callerRole model.Role, id int64, dayOfWeek int, startTime, endTime string) error {
	slot, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if callerRole != model.RoleAdmin && slot.TeacherID != callerID {
		return ErrForbidden
	}
	if err := validateSlot(dayOfWeek, startTime, endTime); err != nil {
		return err
	}
	slot.DayOfWeek = dayOfWeek
	slot.StartTime = startTime
	slot.EndTime = endTime
	return s.Repo.Update(ctx, slot)
}

func (s *AvailabilityService) Delete(ctx context.Context, callerID int64, callerRole model.Role, id int64) error {
	slot, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if callerRole != model.RoleAdmin && slot.TeacherID != callerID {
		return ErrForbidden
	}
	return s.Repo.Delete(ctx, id)
}
