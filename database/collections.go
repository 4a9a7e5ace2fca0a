package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"fakturierung-local/metrics"
	"fakturierung-local/models"
)

// LoadInvoices reads the invoice collection. An absent, empty or unparseable
// value yields an empty collection; only backend failures are returned.
func LoadInvoices(ctx context.Context, store Store, logger *slog.Logger) ([]models.Invoice, error) {
	return load[models.Invoice](ctx, store, KeyInvoices, logger)
}

// SaveInvoices overwrites the invoice collection.
func SaveInvoices(ctx context.Context, store Store, invoices []models.Invoice) error {
	return save(ctx, store, KeyInvoices, invoices)
}

// LoadUsers reads the user collection with the same fallback as LoadInvoices.
func LoadUsers(ctx context.Context, store Store, logger *slog.Logger) ([]models.User, error) {
	return load[models.User](ctx, store, KeyUsers, logger)
}

// SaveUsers overwrites the user collection.
func SaveUsers(ctx context.Context, store Store, users []models.User) error {
	return save(ctx, store, KeyUsers, users)
}

func load[T any](ctx context.Context, store Store, key string, logger *slog.Logger) ([]T, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("discarding unparseable stored collection",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		metrics.ObserveDecodeFailure(key)
		return []T{}, nil
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func save[T any](ctx context.Context, store Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := Encode(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Encode serialises v the way JSON.stringify does: no HTML escaping and no
// trailing newline.
func Encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
