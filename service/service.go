// Package service implements the submission and invoice operations on top of
// a key-value store. It owns key naming, the valid-record filter, newest-first
// ordering and share token issuance.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/Dibbotcf/Legacyscript/model"
	"github.com/Dibbotcf/Legacyscript/pkg/logger"
	"github.com/Dibbotcf/Legacyscript/store"
)

// Key prefixes. The service never scans by anything else.
const (
	SubmissionPrefix = "submission:"
	InvoicePrefix    = "invoice:"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrInvoiceNotFound is returned when no invoice matches an id or share token.
	ErrInvoiceNotFound = errors.New("invoice not found")
)

// ValidationError describes a rejected input. Its message is safe to show to callers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// Service exposes the back-office operations.
type Service struct {
	store         store.Store
	now           func() time.Time
	newShareToken func(now time.Time) (string, error)
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithShareTokenGenerator replaces the share token generator.
func WithShareTokenGenerator(fn func(now time.Time) (string, error)) Option {
	return func(s *Service) {
		s.newShareToken = fn
	}
}

func New(kv store.Store, opts ...Option) *Service {
	s := &Service{
		store:         kv,
		now:           time.Now,
		newShareToken: NewShareToken,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func submissionKey(id string) string {
	return SubmissionPrefix + id
}

func invoiceKey(id string) string {
	return InvoicePrefix + id
}

// validRecord is a pointer to a stored record type.
type validRecord[T any] interface {
	*T
	Valid() bool
}

// decodeValid unmarshals raw values and silently drops the ones that are
// malformed or fail the valid-record check.
func decodeValid[T any, P validRecord[T]](ctx context.Context, kind string, values [][]byte) []T {
	result := make([]T, 0, len(values))
	for _, raw := range values {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			logger.Debug(ctx, "dropping malformed record", "kind", kind, "error", err)
			continue
		}
		if !P(&rec).Valid() {
			logger.Debug(ctx, "dropping invalid record", "kind", kind, "value", string(raw))
			continue
		}
		result = append(result, rec)
	}
	return result
}

// sortNewestFirst orders records descending by the timestamp returned by ts.
func sortNewestFirst[T any](records []T, ts func(*T) string) {
	sort.SliceStable(records, func(i, j int) bool {
		return model.ParseTimestamp(ts(&records[i])).After(model.ParseTimestamp(ts(&records[j])))
	})
}

func (s *Service) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, key, data)
}
