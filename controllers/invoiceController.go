package controllers

import (
	"errors"

	"fakturierung-local/middlewares"
	"fakturierung-local/models"
	"fakturierung-local/repository"

	"github.com/gofiber/fiber/v2"
)

type InvoiceController struct {
	invoices *repository.InvoiceRepository
}

func NewInvoiceController(invoices *repository.InvoiceRepository) *InvoiceController {
	return &InvoiceController{invoices: invoices}
}

func (ic *InvoiceController) GetInvoices(c *fiber.Ctx) error {
	invoices, err := ic.invoices.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"invoices": invoices,
		"message":  "success",
	})
}

// NewInvoiceDraft returns the initial state of an empty invoice form.
func (ic *InvoiceController) NewInvoiceDraft(c *fiber.Ctx) error {
	return c.JSON(ic.invoices.NewDraft())
}

func (ic *InvoiceController) GetInvoice(c *fiber.Ctx) error {
	invoice, err := ic.invoices.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return notFound(err)
	}
	return c.JSON(invoice)
}

func (ic *InvoiceController) CreateInvoice(c *fiber.Ctx) error {
	var draft models.Invoice
	if err := middlewares.BindJSON(c, &draft); err != nil {
		return err
	}
	invoice, err := ic.invoices.Create(c.UserContext(), draft)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

func (ic *InvoiceController) UpdateInvoice(c *fiber.Ctx) error {
	var draft models.Invoice
	if err := middlewares.BindJSON(c, &draft); err != nil {
		return err
	}
	invoice, err := ic.invoices.Update(c.UserContext(), c.Params("id"), draft)
	if err != nil {
		return notFound(err)
	}
	return c.JSON(invoice)
}

func (ic *InvoiceController) DeleteInvoice(c *fiber.Ctx) error {
	if err := ic.invoices.Delete(c.UserContext(), c.Params("id")); err != nil {
		return notFound(err)
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrInvoiceNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "invoice not found")
	}
	return err
}
