package database

import (
	"context"
	"fmt"
	"log/slog"

	"fakturierung-local/models"
)

const authTokenValue = "true"

// SessionStore is the only reader and writer of the authToken key.
type SessionStore struct {
	store  Store
	logger *slog.Logger
}

func NewSessionStore(store Store, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{store: store, logger: logger}
}

// Load reports the session as authenticated only when authToken holds "true".
func (s *SessionStore) Load(ctx context.Context) (models.Session, error) {
	v, ok, err := s.store.Get(ctx, KeyAuthToken)
	if err != nil {
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return models.Session{}, nil
	}
	if v != authTokenValue {
		s.logger.Warn("ignoring unexpected authToken value", slog.String("value", v))
		return models.Session{}, nil
	}
	return models.Session{IsAuthenticated: true}, nil
}

// Save writes "true" for an authenticated session and removes the key otherwise.
func (s *SessionStore) Save(ctx context.Context, session models.Session) error {
	var err error
	if session.IsAuthenticated {
		err = s.store.Set(ctx, KeyAuthToken, authTokenValue)
	} else {
		err = s.store.Delete(ctx, KeyAuthToken)
	}
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
