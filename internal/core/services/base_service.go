package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
	"github.com/SscSPs/association_backoffice/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.Authorizer
	Now        func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
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

// Authorize asks the authorization collaborator whether callerID may perform op.
func (s *BaseService) Authorize(ctx context.Context, callerID string, op portssvc.Operation) error {
	if s.Authorizer != nil {
		return s.Authorizer.Authorize(ctx, callerID, op)
	}
	s.LogDebug(ctx, "No authorizer provided, access granted by default",
		slog.String("caller_id", callerID),
		slog.String("operation", string(op)))
	return nil
}

// clock returns the current time, truncated to microseconds so values survive a
// round trip through PostgreSQL unchanged.
func (s *BaseService) clock() time.Time {
	if s.Now != nil {
		return s.Now().UTC().Truncate(time.Microsecond)
	}
	return time.Now().UTC().Truncate(time.Microsecond)
}
