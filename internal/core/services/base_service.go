package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/SscSPs/municipal_tax_app/internal/middleware"
	"github.com/SscSPs/municipal_tax_app/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Metrics *metrics.Metrics
	Clock   func() time.Time
}

// ServiceOption is a functional option applied to the BaseService of every service
type ServiceOption func(*BaseService)

// WithMetrics records domain counters on m.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BaseService) {
		s.Metrics = m
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

func newBaseService(opts []ServiceOption) BaseService {
	b := BaseService{}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Now returns the current time in UTC from the configured clock.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs an expected rejection with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()), slog.String("kind", apperrors.KindOf(err)))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LogFailure logs err at Warn when it is an expected domain rejection and at Error otherwise.
func (s *BaseService) LogFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if apperrors.KindOf(err) == "internal" {
		s.LogError(ctx, err, msg, keyvals...)
		return
	}
	s.LogWarn(ctx, err, msg, keyvals...)
}

// Authorize checks the caller's verified role against action.
func (s *BaseService) Authorize(ctx context.Context, caller domain.Caller, action domain.Action) error {
	if caller.Can(action) {
		return nil
	}
	err := apperrors.NewForbiddenError(fmt.Sprintf("role %q is not allowed to perform %s", caller.Role, action))
	s.LogWarn(ctx, err, "Authorization failed",
		slog.String("user_id", caller.UserID),
		slog.String("action", string(action)))
	return err
}

// RequireCaller rejects anonymous callers on read operations.
func (s *BaseService) RequireCaller(caller domain.Caller) error {
	if caller.UserID == "" || !caller.Role.IsValid() {
		return apperrors.NewForbiddenError("an authenticated caller is required")
	}
	return nil
}
