package service

import (
	"context"
	"encoding/base32"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Dibbotcf/Legacyscript/model"
	"github.com/Dibbotcf/Legacyscript/pkg/logger"
	"github.com/google/uuid"
)

// maxShareTokenAttempts bounds the retries when a generated token is already taken.
const maxShareTokenAttempts = 5

// ErrShareTokenExhausted is returned when no unused share token could be generated.
var ErrShareTokenExhausted = errors.New("could not allocate a unique share token")

// NewShareToken returns "INV-<unix millis>-<suffix>" where the suffix is a
// random UUIDv4 encoded as lowercase unpadded base32.
func NewShareToken(now time.Time) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	suffix := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(id[:])
	return fmt.Sprintf("INV-%d-%s", now.UnixMilli(), strings.ToLower(suffix)), nil
}

// ShareURL builds the public link resolving to the invoice with shareID.
func ShareURL(frontendOrigin, shareID string) string {
	return frontendOrigin + "?shared-invoice=" + url.QueryEscape(shareID)
}

// ShareInvoice assigns a share token to the invoice at id unless it already
// has one, in which case the invoice is returned unchanged.
func (s *Service) ShareInvoice(ctx context.Context, id string) (model.Invoice, error) {
	inv, err := s.GetInvoice(ctx, id)
	if err != nil {
		return model.Invoice{}, err
	}
	if inv.ShareID != "" {
		return inv, nil
	}

	taken, err := s.shareTokensInUse(ctx)
	if err != nil {
		return model.Invoice{}, err
	}

	for attempt := 1; attempt <= maxShareTokenAttempts; attempt++ {
		token, err := s.newShareToken(s.now())
		if err != nil {
			return model.Invoice{}, err
		}
		if _, dup := taken[token]; dup {
			logger.Warn(ctx, "share token collision", "invoice_id", id, "attempt", attempt)
			continue
		}

		inv.ShareID = token
		if inv.CreatedAt == "" {
			inv.CreatedAt = model.FormatTimestamp(s.now())
		}
		if err := s.put(ctx, invoiceKey(inv.ID), inv); err != nil {
			return model.Invoice{}, fmt.Errorf("save invoice: %w", err)
		}
		logger.Info(ctx, "share token issued", "invoice_id", inv.ID)
		return inv, nil
	}

	return model.Invoice{}, ErrShareTokenExhausted
}

func (s *Service) shareTokensInUse(ctx context.Context) (map[string]struct{}, error) {
	values, err := s.store.GetByPrefix(ctx, InvoicePrefix)
	if err != nil {
		return nil, fmt.Errorf("scan invoices: %w", err)
	}

	taken := make(map[string]struct{}, len(values))
	for _, raw := range values {
		var inv model.Invoice
		if err := json.Unmarshal(raw, &inv); err == nil && inv.ShareID != "" {
			taken[inv.ShareID] = struct{}{}
		}
	}
	return taken, nil
}
