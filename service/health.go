package service

import (
	"context"
	"fmt"

	"github.com/Dibbotcf/Legacyscript/model"
)

// CheckDB scans both prefixes. Counts include records the list operations would drop.
func (s *Service) CheckDB(ctx context.Context) (model.DBHealth, error) {
	submissions, err := s.store.GetByPrefix(ctx, SubmissionPrefix)
	if err != nil {
		return model.DBHealth{}, fmt.Errorf("scan submissions: %w", err)
	}
	invoices, err := s.store.GetByPrefix(ctx, InvoicePrefix)
	if err != nil {
		return model.DBHealth{}, fmt.Errorf("scan invoices: %w", err)
	}

	return model.DBHealth{
		Status:           "ok",
		Database:         "connected",
		SubmissionsCount: len(submissions),
		InvoicesCount:    len(invoices),
		Timestamp:        model.FormatTimestamp(s.now()),
	}, nil
}
