package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/clock"
	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/SscSPs/restaurant_supply_app/internal/middleware"
	"github.com/SscSPs/restaurant_supply_app/internal/platform/metrics"
	"github.com/SscSPs/restaurant_supply_app/internal/utils"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.AuthorizerSvc
	Clock      clock.Clock
	Metrics    *metrics.Metrics
	Analytics  utils.AnalyticsClient
}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithAuthorizer sets the policy authorizer.
func WithAuthorizer(a portssvc.AuthorizerSvc) ServiceOption {
	return func(b *BaseService) { b.Authorizer = a }
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c clock.Clock) ServiceOption {
	return func(b *BaseService) { b.Clock = c }
}

// WithMetrics attaches the prometheus collectors.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(b *BaseService) { b.Metrics = m }
}

// WithAnalytics attaches the product analytics client.
func WithAnalytics(a utils.AnalyticsClient) ServiceOption {
	return func(b *BaseService) { b.Analytics = a }
}

func newBaseService(opts []ServiceOption) BaseService {
	b := BaseService{Clock: clock.New(), Analytics: utils.NoopAnalytics{}}
	for _, opt := range opts {
		opt(&b)
	}
	if b.Authorizer == nil {
		b.Authorizer = NewPolicyAuthorizer()
	}
	return b
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

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Authorize checks the actor against the policy table and logs denials.
func (s *BaseService) Authorize(ctx context.Context, actor domain.Actor, object, action string) error {
	if err := s.Authorizer.Authorize(ctx, actor, object, action); err != nil {
		s.GetLogger(ctx).Warn("Action not permitted",
			slog.String("user_id", actor.UserID),
			slog.String("role", string(actor.Role.Kind)),
			slog.String("object", object),
			slog.String("action", action))
		return err
	}
	return nil
}

func (s *BaseService) now() time.Time {
	return s.Clock.Now()
}
