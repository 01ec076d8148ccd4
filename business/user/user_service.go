package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cogniLearn/domain"
	"cogniLearn/pkg/logger"
	"cogniLearn/pkg/utils"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidRole        = errors.New("invalid role")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// TokenRepository keeps one live session per user.
type TokenRepository interface {
	StoreToken(ctx context.Context, data domain.Session, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID, token string) error
}

type userService struct {
	userRepo  UserRepository
	tokenRepo TokenRepository
	validate  *validator.Validate
}

func NewUserService(
	userRepo UserRepository,
	tokenRepo TokenRepository,
	validate *validator.Validate,
) *userService {
	return &userService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		validate:  validate,
	}
}

var validRoles = map[string]bool{
	domain.RoleStudent: true,
	domain.RoleParent:  true,
	domain.RoleTeacher: true,
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, ErrInvalidEmail
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, ErrWeakPassword
	}

	role := strings.ToLower(user.Role)
	if role == "" {
		role = domain.RoleStudent
	}
	if !validRoles[role] {
		return domain.User{}, ErrInvalidRole
	}

	link := strings.ToLower(strings.TrimSpace(user.ParentTeacherLink))
	if link != "" {
		if err := s.validate.Var(link, "email"); err != nil {
			return domain.User{}, fmt.Errorf("invalid parent_teacher_link: %w", ErrInvalidEmail)
		}
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing.ID > 0 {
		logger.Warn("Email already registered", "email", email)
		return domain.User{}, ErrEmailExists
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		logger.Error("Failed to check existing email", err)
		return domain.User{}, err
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName:          user.FullName,
		Email:             email,
		Password:          string(passwordHash),
		Role:              role,
		ParentTeacherLink: link,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	logger.Info("User registered", "user_id", newUser.ID, "role", newUser.Role)

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.User{}, ErrInvalidCredentials
		}
		logger.Error("Failed to find user for login", err)
		return "", domain.User{}, err
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Warn("User password incorrect", "user_id", user.ID)
		return "", domain.User{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user, ipAddress, userAgent)
	if err != nil {
		return "", domain.User{}, err
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) issueToken(ctx context.Context, user domain.User, ipAddress, userAgent string) (string, error) {
	userIDStr := strconv.FormatUint(uint64(user.ID), 10)

	token, err := utils.GenerateJWT(userIDStr, user.Role)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", errors.New("failed to generate token")
	}

	now := time.Now()
	ttl := utils.TokenTTL()
	session := domain.Session{
		UserID:    userIDStr,
		Role:      user.Role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if err := s.tokenRepo.StoreToken(ctx, session, ttl); err != nil {
		logger.Error("Failed to store session", err)
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.tokenRepo.ValidateToken(ctx, token)
}

// RefreshToken swaps a live token for a new one with a fresh expiry.
func (s *userService) RefreshToken(ctx context.Context, oldToken, ipAddress, userAgent string) (string, domain.User, error) {
	userIDStr, err := s.tokenRepo.ValidateToken(ctx, oldToken)
	if err != nil {
		return "", domain.User{}, err
	}

	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		return "", domain.User{}, domain.ErrTokenNotFound
	}

	user, err := s.userRepo.FindByID(ctx, uint(userID))
	if err != nil {
		logger.Error("Failed to find user for refresh", err)
		return "", domain.User{}, err
	}

	token, err := s.issueToken(ctx, user, ipAddress, userAgent)
	if err != nil {
		return "", domain.User{}, err
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	if err := s.tokenRepo.DeleteToken(ctx, strconv.FormatUint(uint64(userID), 10), token); err != nil {
		logger.Error("Failed to delete session", err)
		return err
	}
	return nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}
