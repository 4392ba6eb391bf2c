package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"sports-booking/internal/data/entity"
	"sports-booking/internal/data/repository"
	"sports-booking/internal/dto/request"
	"sports-booking/internal/dto/response"
	"sports-booking/pkg/auth"
	"sports-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	// ResolveSession maps a verified identity to the session of its user,
	// creating the user on first sign-in.
	ResolveSession(ctx context.Context, identity *auth.IdentityClaims) (utils.Session, error)

	GetProfile(ctx context.Context, actor utils.Session, userID string) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, actor utils.Session, userID string, req *request.UpdateProfileRequest) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	infra    Infra
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, infra Infra, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		infra:    infra,
		log:      log.With(zap.String("service", "user")),
	}
}

func (s *userService) ResolveSession(ctx context.Context, identity *auth.IdentityClaims) (utils.Session, error) {
	email := strings.ToLower(strings.TrimSpace(identity.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.Session{}, fmt.Errorf("resolve session: %w", err)
	}

	if user == nil {
		now := s.infra.Now()
		user = &entity.User{
			Base:  entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Name:  displayName(identity.Name, email),
			Email: email,
			Role:  entity.RoleUser,
		}
		if identity.Picture != "" {
			picture := identity.Picture
			user.Image = &picture
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			return utils.Session{}, fmt.Errorf("resolve session: %w", err)
		}

		// A concurrent first sign-in may have inserted the row first
		user, err = s.userRepo.FindByEmail(ctx, email)
		if err != nil {
			return utils.Session{}, fmt.Errorf("resolve session: %w", err)
		}
		if user == nil {
			return utils.Session{}, fmt.Errorf("user %s vanished after sign-in: %w", email, ErrUserNotFound)
		}

		s.log.Info("User created on first sign-in",
			zap.String("user_id", user.ID.String()),
			zap.String("email", email),
		)
	}

	return utils.Session{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   string(user.Role),
	}, nil
}

func displayName(name, email string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}

func (s *userService) GetProfile(ctx context.Context, actor utils.Session, userID string) (*response.UserResponse, error) {
	user, err := s.findAccessible(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	return response.UserToResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, actor utils.Session, userID string, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) < 2 {
		return nil, &ValidationError{
			Message: "name must be at least 2 characters long",
			Fields:  map[string]string{"name": "Minimum length is 2"},
		}
	}

	user, err := s.findAccessible(ctx, actor, userID)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Phone = utils.TrimToNil(req.Phone)
	user.UpdatedAt = s.infra.Now()

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("Profile updated", zap.String("user_id", userID))
	return response.UserToResponse(user), nil
}

func (s *userService) findAccessible(ctx context.Context, actor utils.Session, userID string) (*entity.User, error) {
	id, err := parseID("userId", userID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessUser(id) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrForbidden)
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}

	return user, nil
}
