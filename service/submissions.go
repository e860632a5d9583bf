package service

import (
	"context"
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/Dibbotcf/Legacyscript/model"
	"github.com/Dibbotcf/Legacyscript/pkg/logger"
)

// ListSubmissions returns every valid submission, newest first.
func (s *Service) ListSubmissions(ctx context.Context) ([]model.Submission, error) {
	values, err := s.store.GetByPrefix(ctx, SubmissionPrefix)
	if err != nil {
		return nil, fmt.Errorf("scan submissions: %w", err)
	}

	submissions := decodeValid[model.Submission](ctx, "submission", values)
	sortNewestFirst(submissions, func(sub *model.Submission) string { return sub.Timestamp })

	logger.Debug(ctx, "submissions listed", "stored", len(values), "valid", len(submissions))
	return submissions, nil
}

// CreateSubmission stores a contact form submission. The id and timestamp are
// assigned when absent and the phone defaults to PhoneNotProvided.
func (s *Service) CreateSubmission(ctx context.Context, in model.Submission) (model.Submission, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Submission{}, invalid("Name is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return model.Submission{}, invalid("Email is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return model.Submission{}, invalid("Email is invalid")
	}
	if strings.TrimSpace(in.Message) == "" {
		return model.Submission{}, invalid("Message is required")
	}

	now := s.now()
	if in.ID == "" {
		in.ID = strconv.FormatInt(now.UnixMilli(), 10)
	}
	if in.Phone == "" {
		in.Phone = model.PhoneNotProvided
	}
	if in.Timestamp == "" {
		in.Timestamp = model.FormatTimestamp(now)
	}

	if err := s.put(ctx, submissionKey(in.ID), in); err != nil {
		return model.Submission{}, fmt.Errorf("save submission: %w", err)
	}

	logger.Info(ctx, "submission saved", "submission_id", in.ID)
	return in, nil
}

// DeleteSubmission removes a submission. Deleting an unknown id succeeds.
func (s *Service) DeleteSubmission(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, submissionKey(id)); err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	logger.Info(ctx, "submission deleted", "submission_id", id)
	return nil
}
