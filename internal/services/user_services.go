package services

import (
	"context"

	"LessonHubAPI/internal/model"
	"LessonHubAPI/internal/repository"
)

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(r *repository.UserRepository) *UserService {
	return &UserService{Repo: r}
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *UserService) UpdateSelf(ctx context.Context, id int64, firstName, lastName, phone *string) error {
	return s.Repo.UpdateProfile(ctx, id, firstName, lastName, phone)
}

func (s *UserService) ListTeachers(ctx context.Context) ([]model.User, error) {
	return s.Repo.ListByRole(ctx, model.RoleTeacher)
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) Deactivate(ctx context.Context, id int64) error {
	return s.Repo.Deactivate(ctx, id)
}

func (s *UserService) Reactivate(ctx context.Context, id int64) error {
	return s.Repo.Reactivate(ctx, id)
}
