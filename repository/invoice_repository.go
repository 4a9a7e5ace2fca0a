package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fakturierung-local/database"
	"fakturierung-local/metrics"
	"fakturierung-local/models"
	"fakturierung-local/validation"

	"github.com/google/uuid"
)

// ErrInvoiceNotFound is returned when no stored invoice has the requested id.
var ErrInvoiceNotFound = errors.New("invoice not found")

// InvoiceRepository applies CRUD operations to the whole invoice collection:
// every call loads it, mutates a copy and writes it back.
type InvoiceRepository struct {
	store  database.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewInvoiceRepository(store database.Store, logger *slog.Logger) *InvoiceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvoiceRepository{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// List returns the stored invoices in storage order.
func (r *InvoiceRepository) List(ctx context.Context) ([]models.Invoice, error) {
	return database.LoadInvoices(ctx, r.store, r.logger)
}

// Get returns the invoice with the given id.
func (r *InvoiceRepository) Get(ctx context.Context, id string) (models.Invoice, error) {
	invoices, err := r.List(ctx)
	if err != nil {
		return models.Invoice{}, err
	}
	if i := indexOf(invoices, id); i >= 0 {
		return invoices[i], nil
	}
	return models.Invoice{}, ErrInvoiceNotFound
}

// NewDraft returns a blank invoice form dated today.
func (r *InvoiceRepository) NewDraft() models.Invoice {
	return models.NewDraft(r.now())
}

// Create validates the draft, stores it under a fresh id and returns the
// stored record.
func (r *InvoiceRepository) Create(ctx context.Context, draft models.Invoice) (models.Invoice, error) {
	if errs := validation.Invoice(&draft); !errs.Empty() {
		metrics.ObserveInvoiceOp("create", "invalid")
		return models.Invoice{}, errs
	}
	invoices, err := r.List(ctx)
	if err != nil {
		metrics.ObserveInvoiceOp("create", "error")
		return models.Invoice{}, err
	}

	invoice := r.prepare(draft, uuid.NewString(), invoices, -1)
	invoices = append(invoices, invoice)
	if err := database.SaveInvoices(ctx, r.store, invoices); err != nil {
		metrics.ObserveInvoiceOp("create", "error")
		return models.Invoice{}, err
	}

	r.logger.Info("invoice created",
		slog.String("id", invoice.Id),
		slog.String("number", invoice.Number),
		slog.Int("products", len(invoice.Products)),
	)
	metrics.ObserveInvoiceOp("create", "ok")
	return invoice, nil
}

// Update replaces the invoice with the given id. When no invoice matches,
// nothing is written and ErrInvoiceNotFound is returned.
func (r *InvoiceRepository) Update(ctx context.Context, id string, draft models.Invoice) (models.Invoice, error) {
	if errs := validation.Invoice(&draft); !errs.Empty() {
		metrics.ObserveInvoiceOp("update", "invalid")
		return models.Invoice{}, errs
	}
	invoices, err := r.List(ctx)
	if err != nil {
		metrics.ObserveInvoiceOp("update", "error")
		return models.Invoice{}, err
	}

	i := indexOf(invoices, id)
	if i < 0 {
		metrics.ObserveInvoiceOp("update", "not_found")
		return models.Invoice{}, ErrInvoiceNotFound
	}
	invoice := r.prepare(draft, id, invoices, i)
	invoices[i] = invoice
	if err := database.SaveInvoices(ctx, r.store, invoices); err != nil {
		metrics.ObserveInvoiceOp("update", "error")
		return models.Invoice{}, err
	}

	r.logger.Info("invoice updated", slog.String("id", id))
	metrics.ObserveInvoiceOp("update", "ok")
	return invoice, nil
}

// Delete removes the invoice with the given id. When no invoice matches,
// nothing is written and ErrInvoiceNotFound is returned.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	invoices, err := r.List(ctx)
	if err != nil {
		metrics.ObserveInvoiceOp("delete", "error")
		return err
	}

	i := indexOf(invoices, id)
	if i < 0 {
		metrics.ObserveInvoiceOp("delete", "not_found")
		return ErrInvoiceNotFound
	}
	invoices = append(invoices[:i], invoices[i+1:]...)
	if err := database.SaveInvoices(ctx, r.store, invoices); err != nil {
		metrics.ObserveInvoiceOp("delete", "error")
		return err
	}

	r.logger.Info("invoice deleted", slog.String("id", id))
	metrics.ObserveInvoiceOp("delete", "ok")
	return nil
}

// prepare turns a validated draft into the record to store: header fields
// trimmed, date defaulted to today, product ids made unique across the
// collection (ignoring the record at index skip) and totals recomputed.
func (r *InvoiceRepository) prepare(draft models.Invoice, id string, invoices []models.Invoice, skip int) models.Invoice {
	invoice := draft.Clone()
	invoice.Id = id
	invoice.Normalize()
	if invoice.Date == "" {
		invoice.Date = r.now().Format(models.DateLayout)
	}

	taken := map[string]bool{}
	for i, inv := range invoices {
		if i == skip {
			continue
		}
		for _, p := range inv.Products {
			taken[p.Id] = true
		}
	}
	for i := range invoice.Products {
		if pid := invoice.Products[i].Id; pid == "" || taken[pid] {
			invoice.Products[i].Id = uuid.NewString()
		}
		taken[invoice.Products[i].Id] = true
	}

	invoice.Recalculate()
	return invoice
}

func indexOf(invoices []models.Invoice, id string) int {
	for i, inv := range invoices {
		if inv.Id == id {
			return i
		}
	}
	return -1
}
