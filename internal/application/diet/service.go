// Package diet provides the application layer for diet-suggestion acquisition
package diet

import (
	"context"
	"errors"

	"github.com/alchemorsel/nutriguide/internal/domain/diet"
	"github.com/alchemorsel/nutriguide/internal/ports/outbound"
	apperrors "github.com/alchemorsel/nutriguide/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const stage = "diet"

// Fallback reasons reported to the FallbackRecorder
const (
	ReasonNoCredential      = "no_credential"
	ReasonUpstreamError     = "upstream_error"
	ReasonTimeout           = "timeout"
	ReasonCompletionError   = "completion_error"
	ReasonMalformedResponse = "malformed_response"
	ReasonUnrecognizedShape = "unrecognized_shape"
)

// Service obtains diet suggestions from a completion service and falls
// back to fixed suggestions whenever that is not possible
type Service struct {
	completion outbound.CompletionService
	fallbacks  outbound.FallbackRecorder
	logger     *zap.Logger
}

// NewService creates the acquisition service. A nil completion service
// means no credential is configured and every call returns diet.Fallback.
func NewService(completion outbound.CompletionService, fallbacks outbound.FallbackRecorder, logger *zap.Logger) *Service {
	if fallbacks == nil {
		fallbacks = outbound.NopFallbackRecorder{}
	}
	return &Service{
		completion: completion,
		fallbacks:  fallbacks,
		logger:     logger.Named("diet-service"),
	}
}

// Acquire returns at least one suggestion for the advisory text. It never fails.
func (s *Service) Acquire(ctx context.Context, advisory string) []diet.Suggestion {
	ctx, span := otel.Tracer("nutriguide/diet").Start(ctx, "diet.Acquire")
	defer span.End()

	if s.completion == nil {
		s.logger.Debug("Completion credential not configured, using fallback suggestions")
		s.fallbacks.RecordFallback(stage, ReasonNoCredential)
		span.SetAttributes(attribute.String("diet.fallback", ReasonNoCredential))
		return diet.Fallback()
	}

	resp, err := s.completion.Complete(ctx, outbound.CompletionRequest{
		SystemPrompt: diet.SystemPrompt,
		UserPrompt:   diet.BuildPrompt(advisory),
		JSONOnly:     true,
	})
	if err != nil {
		reason := completionFailureReason(err)
		s.logger.Warn("Completion request failed, using fallback suggestions",
			zap.String("reason", reason),
			zap.String("error_code", string(apperrors.GetCode(err))),
			zap.Error(err))
		s.fallbacks.RecordFallback(stage, reason)
		span.SetAttributes(attribute.String("diet.fallback", reason))
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return diet.Fallback()
	}

	suggestions, shape, err := diet.Normalize(resp.Content)
	if err != nil {
		reason := ReasonUpstreamError
		if errors.Is(err, diet.ErrMalformedResponse) {
			reason = ReasonMalformedResponse
		}
		s.logger.Warn("Completion content could not be parsed, using fallback suggestions",
			zap.Error(err),
			zap.Int("content_length", len(resp.Content)))
		s.fallbacks.RecordFallback(stage, reason)
		span.SetAttributes(attribute.String("diet.fallback", reason))
		return diet.Fallback()
	}
	if shape == diet.ShapeUnrecognized {
		s.logger.Warn("Completion content had no recognizable shape, using model fallback")
		s.fallbacks.RecordFallback(stage, ReasonUnrecognizedShape)
	}

	span.SetAttributes(
		attribute.String("diet.shape", string(shape)),
		attribute.Int("diet.suggestions", len(suggestions)),
	)
	s.logger.Info("Diet suggestions acquired",
		zap.String("shape", string(shape)),
		zap.Int("count", len(suggestions)),
		zap.String("model", resp.Model))

	return suggestions
}

// completionFailureReason classifies a completion error. Adapter failures
// carry CodeExternalServiceError; anything else is unexpected.
func completionFailureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case apperrors.Is(err, apperrors.CodeExternalServiceError):
		return ReasonUpstreamError
	default:
		return ReasonCompletionError
	}
}
