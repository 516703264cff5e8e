package services

import (
	"context"
	"log/slog"

	"github.com/hoelscher-berlin/tapir/internal/apperrors"
	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	"github.com/hoelscher-berlin/tapir/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

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
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Warn(msg, keyvals...)
}

// RequirePermission checks that the actor holds the given permission.
func (s *BaseService) RequirePermission(ctx context.Context, actor domain.Actor, p domain.Permission) error {
	if actor.HasPermission(p) {
		return nil
	}
	s.LogWarn(ctx, "Permission denied",
		slog.String("actor_id", actor.UserID),
		slog.String("permission", string(p)))
	return apperrors.ErrForbidden
}

// RequireAnyPermission checks that the actor holds at least one of the given
// permissions.
func (s *BaseService) RequireAnyPermission(ctx context.Context, actor domain.Actor, perms ...domain.Permission) error {
	for _, p := range perms {
		if actor.HasPermission(p) {
			return nil
		}
	}
	s.LogWarn(ctx, "Permission denied",
		slog.String("actor_id", actor.UserID))
	return apperrors.ErrForbidden
}
