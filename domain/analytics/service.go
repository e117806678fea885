package analytics

import (
	"context"
	"strings"

	"github.com/viewmark/viewmark/internal/log"
	"github.com/viewmark/viewmark/internal/models"
	"github.com/viewmark/viewmark/pkg/emailaddr"
	apperrors "github.com/viewmark/viewmark/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type AnalyticsService interface {
	// TrackPageView appends one page_views row.
	TrackPageView(ctx context.Context, view PageView) error
	// TrackInteraction appends one user_interactions row and mirrors
	// page_view and email_signup interactions into their legacy tables.
	TrackInteraction(ctx context.Context, interaction Interaction) error
}

type ServiceOption func(*analyticsService)

func WithMetrics(m *Metrics) ServiceOption {
	return func(s *analyticsService) {
		s.metrics = m
	}
}

type analyticsService struct {
	logger     *log.Logger
	repository AnalyticsRepository
	metrics    *Metrics
	tracer     trace.Tracer
}

func NewAnalyticsService(logger *log.Logger, repository AnalyticsRepository, opts ...ServiceOption) AnalyticsService {
	s := &analyticsService{
		logger:     logger,
		repository: repository,
		tracer:     otel.Tracer("github.com/viewmark/viewmark/domain/analytics"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *analyticsService) TrackPageView(ctx context.Context, view PageView) (err error) {
	ctx, span := s.tracer.Start(ctx, "analytics.TrackPageView")
	defer func() {
		endSpan(span, err)
		s.metrics.observePageView(err)
	}()

	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if err = s.repository.CreatePageView(ctx, toPageViewModel(view)); err != nil {
		logger.Error("Failed to track page view", "error", err, "page_path", view.PagePath)
		return err
	}

	logger.Debug("Page view tracked", "page_path", view.PagePath)
	return nil
}

func (s *analyticsService) TrackInteraction(ctx context.Context, interaction Interaction) (err error) {
	ctx, span := s.tracer.Start(ctx, "analytics.TrackInteraction",
		trace.WithAttributes(attribute.String("interaction.type", interaction.Type)))
	defer func() {
		endSpan(span, err)
		s.metrics.observeInteraction(interaction.Type, err)
	}()

	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if strings.TrimSpace(interaction.Type) == "" {
		return ErrInteractionTypeRequired
	}

	row := &models.UserInteraction{
		InteractionType: interaction.Type,
		PagePath:        interaction.View.PagePath,
		UserAgent:       interaction.View.UserAgent,
		Referrer:        interaction.View.Referrer,
		IPAddress:       interaction.View.IPAddress,
		SessionID:       interaction.View.SessionID,
	}
	if interaction.Email != "" {
		email := interaction.Email
		row.Email = &email
	}

	if err = s.repository.CreateInteraction(ctx, row); err != nil {
		logger.Error("Failed to track interaction", "error", err, "type", interaction.Type)
		return err
	}

	s.mirror(ctx, logger, interaction)
	return nil
}

// mirror keeps page_views and waitlist_emails in step with the unified
// table. Failures are logged only.
func (s *analyticsService) mirror(ctx context.Context, logger *log.Logger, interaction Interaction) {
	switch interaction.Type {
	case models.InteractionTypePageView:
		if err := s.repository.CreatePageView(ctx, toPageViewModel(interaction.View)); err != nil {
			logger.Warn("Failed to mirror page view", "error", err)
		}
	case models.InteractionTypeEmailSignup:
		email := emailaddr.Normalize(interaction.Email)
		if email == "" {
			return
		}
		if err := s.repository.MirrorSignup(ctx, email); err != nil {
			logger.Warn("Failed to mirror email signup", "error", err)
		}
	}
}

func toPageViewModel(view PageView) *models.PageView {
	ip := view.IPAddress
	if ip == "" {
		ip = unknownIP
	}
	return &models.PageView{
		PagePath:  view.PagePath,
		UserAgent: view.UserAgent,
		Referrer:  view.Referrer,
		IPAddress: ip,
		SessionID: view.SessionID,
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil && apperrors.HTTPStatusCode(err) >= 500 {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
