package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"venuebook/internal/domain"
	"venuebook/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Options holds the token lifetimes and registration policy.
type Options struct {
	RegisterTTL            time.Duration
	LoginTTL               time.Duration
	AllowAdminRegistration bool
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// Service contains all business logic for authentication
type Service struct {
	users  UserRepositoryInterface
	tokens tokenIssuer
	opts   Options
	log    *logrus.Logger
}

func NewService(users UserRepositoryInterface, tokens tokenIssuer, opts Options, log *logrus.Logger) *Service {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:  users,
		tokens: tokens,
		opts:   opts,
		log:    log,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	role := domain.UserRole(req.Role)
	if role == "" {
		role = domain.RoleUser
	}
	if role == domain.RoleAdmin && !s.opts.AllowAdminRegistration {
		return nil, ErrAdminRegistrationDisabled
	}

	email := repository.NormalizeEmail(req.Email)
	if err := s.validateEmailUnique(ctx, email); err != nil {
		return nil, err
	}

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// a concurrent registration can pass the existence check
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role), s.opts.RegisterTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user registered")
	return &AuthResponse{Token: token, User: toPublic(user)}, nil
}

// Login gives the same error for an unknown email and a wrong password.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.WithField("user_id", user.ID).Warn("login failed: wrong password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role), s.opts.LoginTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResponse{Token: token, User: toPublic(user)}, nil
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailAlreadyExists
	}
	return nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
