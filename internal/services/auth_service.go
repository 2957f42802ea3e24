package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-application-tracker/internal/apperror"
	"github.com/justsurfingit/job-application-tracker/internal/dtos"
	"github.com/justsurfingit/job-application-tracker/internal/metrics"
	"github.com/justsurfingit/job-application-tracker/internal/models"
	"github.com/justsurfingit/job-application-tracker/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) (bool, error)
}

type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

type AuthService struct {
	Users  UserStore
	Hasher PasswordHasher
	Tokens TokenIssuer
}

func NewAuthService(users UserStore, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{Users: users, Hasher: hasher, Tokens: tokens}
}

var errDuplicateEmail = apperror.Conflict("There is already a user using this email.")

var errPasswordTooLong = &apperror.Error{
	Type:    apperror.TypeValidation,
	Message: "Password must be at most 72 bytes.",
	Rule:    RuleInvalidField,
	Fields:  []string{"password"},
}

// Register creates the account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, req dtos.RegisterRequest) (string, error) {
	_, err := s.Users.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		metrics.AuthAttempts.WithLabelValues("register", "duplicate").Inc()
		return "", errDuplicateEmail
	case !errors.Is(err, repository.ErrNotFound):
		metrics.AuthAttempts.WithLabelValues("register", "error").Inc()
		return "", fmt.Errorf("lookup user: %w", err)
	}

	digest, err := s.Hasher.Hash(req.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		metrics.AuthAttempts.WithLabelValues("register", "invalid").Inc()
		return "", errPasswordTooLong
	}
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("register", "error").Inc()
		return "", err
	}

	user := &models.User{
		Email:         req.Email,
		Password:      digest,
		Name:          req.Name,
		DesiredJob:    req.DesiredJob,
		DesiredSalary: req.DesiredSalary,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		// Two registrations for the same email can both pass the lookup.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			metrics.AuthAttempts.WithLabelValues("register", "duplicate").Inc()
			return "", errDuplicateEmail
		}
		metrics.AuthAttempts.WithLabelValues("register", "error").Inc()
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("register", "error").Inc()
		return "", err
	}

	metrics.AuthAttempts.WithLabelValues("register", "success").Inc()
	slog.Info("User registered", "user_id", user.ID)
	return token, nil
}

func (s *AuthService) Login(ctx context.Context, req dtos.LoginRequest) (string, error) {
	user, err := s.Users.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.AuthAttempts.WithLabelValues("login", "unknown_email").Inc()
		return "", apperror.Unauthorized("There is no account associated with this email.")
	}
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("login", "error").Inc()
		return "", fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.Hasher.Verify(req.Password, user.Password)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("login", "error").Inc()
		return "", err
	}
	if !ok {
		metrics.AuthAttempts.WithLabelValues("login", "bad_password").Inc()
		return "", apperror.Unauthorized("Invalid password.")
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("login", "error").Inc()
		return "", err
	}

	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()
	return token, nil
}

// Me returns the caller's profile.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}
