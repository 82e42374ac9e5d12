package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/codegrader/codegrader-api/internal/dto"
	"github.com/codegrader/codegrader-api/internal/models"
	"github.com/codegrader/codegrader-api/internal/repository"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the login endpoint cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("Invalid Credentials")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("Email already registered")
	// ErrMatricTaken indicates another account already holds the matric number.
	ErrMatricTaken = errors.New("Matric number already registered")
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// AuthService exposes account and token use cases.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.TokenResponse, error)
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.UserResponse, error)
	CreateUser(ctx context.Context, payload dto.UserCreateRequest) (dto.UserResponse, error)
	GetUser(ctx context.Context, id uint) (dto.UserResponse, error)
}

type authService struct {
	users     repository.UserRepository
	validator *validator.Validate
	secret    []byte
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService builds a new auth service.
func NewAuthService(users repository.UserRepository, validate *validator.Validate, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		validator: validate,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.TokenResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TokenResponse{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TokenResponse{}, ErrInvalidCredentials
		}
		return dto.TokenResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		return dto.TokenResponse{}, ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return dto.TokenResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role.String()).Msg("user logged in")

	return dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	// Self-registration always yields a student account.
	user, err := s.createAccount(ctx, payload.Email, payload.Password, payload.Name, payload.MatricNumber, models.RoleStudent)
	if err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *authService) CreateUser(ctx context.Context, payload dto.UserCreateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	matric := payload.MatricNumber
	if payload.Role != models.RoleStudent {
		// Matric numbers only apply to students.
		matric = nil
	}

	user, err := s.createAccount(ctx, payload.Email, payload.Password, payload.Name, matric, payload.Role)
	if err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *authService) GetUser(ctx context.Context, id uint) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *authService) createAccount(ctx context.Context, email, password, name string, matric *string, role models.Role) (models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		Password:     string(hashed),
		Name:         name,
		MatricNumber: matric,
		Role:         role,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return models.User{}, ErrEmailTaken
		}
		if errors.Is(err, repository.ErrDuplicateMatric) {
			return models.User{}, ErrMatricTaken
		}
		return models.User{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", role.String()).Msg("user created")

	return user, nil
}

func (s *authService) signToken(user models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"role": user.Role.String(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
