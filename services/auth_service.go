package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"fakturierung-local/database"
	"fakturierung-local/metrics"
	"fakturierung-local/models"
	"fakturierung-local/repository"
	"fakturierung-local/validation"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
)

// AuthService handles registration, credential checks and the session flag.
type AuthService struct {
	users    *repository.UserRepository
	sessions *database.SessionStore
	logger   *slog.Logger
}

func NewAuthService(users *repository.UserRepository, sessions *database.SessionStore, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Register validates the credentials, rejects an email that is already
// registered in any letter case and appends the new user.
func (s *AuthService) Register(ctx context.Context, email, password string) (models.User, error) {
	if errs := validation.Registration(email, password); !errs.Empty() {
		metrics.ObserveAuth("register", "invalid")
		return models.User{}, errs
	}

	users, err := s.users.All(ctx)
	if err != nil {
		metrics.ObserveAuth("register", "error")
		return models.User{}, err
	}
	for _, u := range users {
		if u.SameEmail(email) {
			s.logger.Info("registration with existing email", slog.String("email", email))
			metrics.ObserveAuth("register", "duplicate")
			return models.User{}, ErrDuplicateEmail
		}
	}

	user := models.User{Email: strings.TrimSpace(email), Password: password}
	if err := s.users.Append(ctx, user); err != nil {
		metrics.ObserveAuth("register", "error")
		return models.User{}, err
	}

	s.logger.Info("user registered", slog.String("email", user.Email))
	metrics.ObserveAuth("register", "ok")
	return user, nil
}

// Authenticate returns the first user whose email and password match exactly.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return models.User{}, err
	}
	email = strings.TrimSpace(email)
	for _, u := range users {
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}

// Login checks the form, authenticates and marks the session as logged in.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	if errs := validation.Login(email, password); !errs.Empty() {
		metrics.ObserveAuth("login", "invalid")
		return models.User{}, errs
	}

	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.logger.Info("login failed", slog.String("email", email))
			metrics.ObserveAuth("login", "rejected")
		} else {
			metrics.ObserveAuth("login", "error")
		}
		return models.User{}, err
	}

	if err := s.sessions.Save(ctx, models.Session{IsAuthenticated: true}); err != nil {
		metrics.ObserveAuth("login", "error")
		return models.User{}, err
	}

	s.logger.Info("user logged in", slog.String("email", user.Email))
	metrics.ObserveAuth("login", "ok")
	return user, nil
}

// Logout clears the session flag.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Save(ctx, models.Session{})
}

// Session reports the current login state.
func (s *AuthService) Session(ctx context.Context) (models.Session, error) {
	return s.sessions.Load(ctx)
}
