package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portssvc "github.com/SscSPs/workspace_chat_app/internal/core/ports/services"
	"github.com/SscSPs/workspace_chat_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Publisher portssvc.EventPublisher
	Now       func() time.Time
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

// LogWarn logs an expected failure (denied capability, missing row) without the error level noise
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("reason", err.Error()))
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

// now returns the service clock, defaulting to UTC wall time.
func (s *BaseService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// publish forwards a committed change to the event publisher, if one is configured.
func (s *BaseService) publish(eventType domain.EventType, workspaceID, actorID string, payload any) {
	if s.Publisher == nil {
		return
	}
	s.Publisher.Publish(domain.WorkspaceEvent{
		Type:        eventType,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Payload:     payload,
		OccurredAt:  s.now(),
	})
}
