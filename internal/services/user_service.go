package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/danvitmon/contactpro/internal/models"
	"github.com/danvitmon/contactpro/internal/repositories"
)

type UserService struct {
	userRepo *repositories.UserRepository
}

func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetOrCreateUser looks a user up by email, creating the account on first
// login. Identity verification happens upstream of this application.
func (s *UserService) GetOrCreateUser(name, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	user = models.NewUser(name, email)
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}
