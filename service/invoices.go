package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Dibbotcf/Legacyscript/model"
	"github.com/Dibbotcf/Legacyscript/pkg/logger"
	"github.com/Dibbotcf/Legacyscript/store"
)

// ListInvoices returns every valid invoice, newest first.
func (s *Service) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	values, err := s.store.GetByPrefix(ctx, InvoicePrefix)
	if err != nil {
		return nil, fmt.Errorf("scan invoices: %w", err)
	}

	invoices := decodeValid[model.Invoice](ctx, "invoice", values)
	sortNewestFirst(invoices, func(inv *model.Invoice) string { return inv.CreatedAt })

	logger.Debug(ctx, "invoices listed", "stored", len(values), "valid", len(invoices))
	return invoices, nil
}

// GetInvoiceByShareToken returns the first stored invoice whose shareId equals
// token, or ErrInvoiceNotFound. The scan is linear in the number of invoices.
func (s *Service) GetInvoiceByShareToken(ctx context.Context, token string) (model.Invoice, error) {
	if token == "" {
		return model.Invoice{}, ErrInvoiceNotFound
	}

	values, err := s.store.GetByPrefix(ctx, InvoicePrefix)
	if err != nil {
		return model.Invoice{}, fmt.Errorf("scan invoices: %w", err)
	}

	for _, raw := range values {
		var inv model.Invoice
		if err := json.Unmarshal(raw, &inv); err != nil {
			continue
		}
		if inv.ShareID == token {
			return inv, nil
		}
	}
	return model.Invoice{}, ErrInvoiceNotFound
}

// GetInvoice returns the invoice stored under id.
func (s *Service) GetInvoice(ctx context.Context, id string) (model.Invoice, error) {
	raw, err := s.store.Get(ctx, invoiceKey(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Invoice{}, ErrInvoiceNotFound
		}
		return model.Invoice{}, fmt.Errorf("get invoice: %w", err)
	}

	var inv model.Invoice
	if err := json.Unmarshal(raw, &inv); err != nil {
		logger.Warn(ctx, "stored invoice is malformed", "invoice_id", id, "error", err)
		return model.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

// CreateOrReplaceInvoice overwrites the whole record at the invoice's id.
// Fields missing from inv are not merged from the stored record, shareId
// included; createdAt is the only value carried over when omitted.
func (s *Service) CreateOrReplaceInvoice(ctx context.Context, inv model.Invoice) (model.Invoice, error) {
	if strings.TrimSpace(inv.ID) == "" {
		return model.Invoice{}, invalid("Invoice ID is required")
	}
	return s.saveInvoice(ctx, inv)
}

// UpdateInvoice replaces the invoice at id. The path id wins over any id in the body.
func (s *Service) UpdateInvoice(ctx context.Context, id string, inv model.Invoice) (model.Invoice, error) {
	if strings.TrimSpace(id) == "" {
		return model.Invoice{}, invalid("Invoice ID is required")
	}
	inv.ID = id
	return s.saveInvoice(ctx, inv)
}

func (s *Service) saveInvoice(ctx context.Context, inv model.Invoice) (model.Invoice, error) {
	if inv.Status != "" && !model.IsValidStatus(inv.Status) {
		return model.Invoice{}, invalid(fmt.Sprintf("Invalid status %q", inv.Status))
	}
	inv.Normalize()

	if inv.CreatedAt == "" {
		createdAt, err := s.existingCreatedAt(ctx, inv.ID)
		if err != nil {
			return model.Invoice{}, err
		}
		if createdAt == "" {
			createdAt = model.FormatTimestamp(s.now())
		}
		inv.CreatedAt = createdAt
	}

	if err := s.put(ctx, invoiceKey(inv.ID), inv); err != nil {
		return model.Invoice{}, fmt.Errorf("save invoice: %w", err)
	}

	logger.Info(ctx, "invoice saved", "invoice_id", inv.ID, "status", inv.Status)
	return inv, nil
}

// existingCreatedAt returns the createdAt of the stored record, or "" when there is none.
func (s *Service) existingCreatedAt(ctx context.Context, id string) (string, error) {
	existing, err := s.GetInvoice(ctx, id)
	if errors.Is(err, ErrInvoiceNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return existing.CreatedAt, nil
}

// DeleteInvoice removes an invoice. Share links pointing at it stop resolving.
func (s *Service) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, invoiceKey(id)); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	logger.Info(ctx, "invoice deleted", "invoice_id", id)
	return nil
}
