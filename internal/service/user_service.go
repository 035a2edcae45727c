package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"labquote/internal/middleware"
	"labquote/internal/model"
	"labquote/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DTOs for Request validation
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// UserResponse returns account details without exposing sensitive data
type UserResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities"`
	CreatedAt    string   `json:"created_at"`
}

// UserService defines the interface for accounts and session issuance
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
}

type userService struct {
	repo repository.UserRepository
	db   *gorm.DB
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, db *gorm.DB) UserService {
	return &userService{repo: repo, db: db}
}

// resolveCaps maps a user to the session capability set. The super-admin
// allow-list is read from the environment so the distinguished identity is
// configuration, not code.
func resolveCaps(user *model.User) model.CapabilitySet {
	return model.ResolveCapabilities(user.Role, user.Email, os.Getenv("SUPER_ADMIN_EMAILS"))
}

func mapToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:           user.ID.String(),
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		Role:         user.Role,
		Capabilities: resolveCaps(user).Strings(),
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
	}
}

func (s *userService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hashedPassword),
		Role:     model.RoleCustomer,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return mapToUserResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return s.issueTokens(ctx, user)
}

// Refresh exchanges a stored refresh token for a fresh access token.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var stored model.RefreshToken
	if err := s.db.WithContext(ctx).Preload("User").First(&stored, "token = ?", refreshToken).Error; err != nil {
		return nil, errors.New("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.db.WithContext(ctx).Delete(&stored).Error
		return nil, errors.New("refresh token expired")
	}

	// Rotate: the old token is consumed.
	_ = s.db.WithContext(ctx).Delete(&stored).Error
	return s.issueTokens(ctx, &stored.User)
}

func (s *userService) issueTokens(ctx context.Context, user *model.User) (*TokenResponse, error) {
	caps := resolveCaps(user)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"caps": caps.Strings(),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, errors.New("failed to generate refresh token")
	}
	refresh := &model.RefreshToken{
		UserID:    user.ID,
		Token:     hex.EncodeToString(raw),
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
	if err := s.db.WithContext(ctx).Create(refresh).Error; err != nil {
		return nil, errors.New("failed to persist refresh token")
	}

	return &TokenResponse{
		Token:        tokenString,
		RefreshToken: refresh.Token,
		User:         *mapToUserResponse(user),
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return mapToUserResponse(user), nil
}
