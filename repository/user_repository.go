package repository

import (
	"context"
	"log/slog"

	"fakturierung-local/database"
	"fakturierung-local/models"
)

// UserRepository gives access to the flat user collection.
type UserRepository struct {
	store  database.Store
	logger *slog.Logger
}

func NewUserRepository(store database.Store, logger *slog.Logger) *UserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserRepository{store: store, logger: logger}
}

// All returns every registered user in registration order.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	return database.LoadUsers(ctx, r.store, r.logger)
}

// Append adds a user to the end of the collection.
func (r *UserRepository) Append(ctx context.Context, user models.User) error {
	users, err := r.All(ctx)
	if err != nil {
		return err
	}
	return database.SaveUsers(ctx, r.store, append(users, user))
}
