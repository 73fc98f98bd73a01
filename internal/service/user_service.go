package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"riskdesk/internal/model"
	"riskdesk/internal/repository"
)

var (
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrRoleNotFound is returned when a role slug does not exist.
	ErrRoleNotFound = errors.New("role not found")
)

// UserService exposes admin operations over users.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	AssignRole(ctx context.Context, userID uint, roleSlug string) (*model.User, error)
	SetStatus(ctx context.Context, userID uint, status model.UserStatus) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	db       *gorm.DB
}

// NewUserService builds a UserService.
func NewUserService(userRepo repository.UserRepository, db *gorm.DB) UserService {
	return &userService{userRepo: userRepo, db: db}
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// AssignRole grants the named role to a user. Assignment is idempotent.
func (s *userService) AssignRole(ctx context.Context, userID uint, roleSlug string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.HasRole(roleSlug) {
		return user, nil
	}

	var role model.Role
	if err := s.db.WithContext(ctx).Where("slug = ?", roleSlug).First(&role).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	if err := s.userRepo.AssignRole(ctx, user, &role); err != nil {
		return nil, fmt.Errorf("assign role: %w", err)
	}

	return s.userRepo.FindByID(ctx, userID)
}

func (s *userService) SetStatus(ctx context.Context, userID uint, status model.UserStatus) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.Status = status
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
