package service

import (
	"go.uber.org/zap"

	"rizal-api/internal/domain"
)

type CreateUserInput struct {
	Email    string
	Name     string
	Password string // 只校验存在，不落库也不返回
}

type UserService struct {
	repo domain.UserRepository
	log  *zap.Logger
}

func NewUserService(repo domain.UserRepository, l *zap.Logger) *UserService {
	if l == nil {
		l = zap.NewNop()
	}
	return &UserService{repo: repo, log: l.Named("user")}
}

func (s *UserService) Create(in CreateUserInput) (*domain.User, error) {
	u := &domain.User{
		Email: in.Email,
		Name:  in.Name,
		Role:  domain.RoleStudent,
	}
	if err := s.repo.Create(u); err != nil {
		s.log.Info("create rejected", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	s.log.Info("user created", zap.Int64("id", u.ID), zap.String("email", u.Email))
	return u, nil
}

func (s *UserService) List() ([]domain.User, error) { return s.repo.List() }

func (s *UserService) Get(id int64) (*domain.User, error) { return s.repo.FindByID(id) }

func (s *UserService) Update(id int64, p domain.UserPatch) (*domain.User, error) {
	u, err := s.repo.Update(id, p)
	if err != nil {
		return nil, err
	}
	s.log.Info("user updated", zap.Int64("id", id), zap.Strings("fields", patchedFields(p)))
	return u, nil
}

func (s *UserService) Delete(id int64) (*domain.User, error) {
	u, err := s.repo.Delete(id)
	if err != nil {
		return nil, err
	}
	s.log.Info("user deleted", zap.Int64("id", id))
	return u, nil
}

func patchedFields(p domain.UserPatch) []string {
	var fs []string
	if p.Email.Set() {
		fs = append(fs, "email")
	}
	if p.Name.Set() {
		fs = append(fs, "name")
	}
	if p.Role.Set() {
		fs = append(fs, "role")
	}
	return fs
}
