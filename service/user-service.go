package service

import (
	"errors"

	"github.com/jlp0422/coffee-golf-leaderboard/repository"

	"gorm.io/gorm"
)

type UserService struct {
	userRepository *repository.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		userRepository: repository.NewUserRepository(db),
	}
}

func (s *UserService) GetUserById(userId int) (*repository.User, error) {
	user, err := s.userRepository.GetUserById(userId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

func (s *UserService) UpdateDisplayName(userId int, displayName string) (*repository.User, error) {
	user, err := s.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	user.DisplayName = displayName
	return s.userRepository.Save(user)
}
