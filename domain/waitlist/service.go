package waitlist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/viewmark/viewmark/internal/log"
	"github.com/viewmark/viewmark/internal/models"
	"github.com/viewmark/viewmark/pkg/emailaddr"
	apperrors "github.com/viewmark/viewmark/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type WaitlistService interface {
	// Submit registers email on the waitlist. It returns ErrEmailRequired,
	// ErrInvalidEmailFormat, ErrEmailAlreadyRegistered or ErrSaveFailed.
	Submit(ctx context.Context, email string) error
}

// KnownSignupCache remembers addresses the store has already rejected as
// duplicates. Only a unique-index conflict writes an entry; a successful
// insert does not. An entry outlives a deleted row for at most the TTL.
type KnownSignupCache interface {
	// Get returns ("", nil) when a key is not found.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type ServiceOption func(*waitlistService)

func WithKnownSignupCache(cache KnownSignupCache, ttl time.Duration) ServiceOption {
	return func(s *waitlistService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

func WithMetrics(m *Metrics) ServiceOption {
	return func(s *waitlistService) {
		s.metrics = m
	}
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
	cache      KnownSignupCache
	cacheTTL   time.Duration
	metrics    *Metrics
	tracer     trace.Tracer
}

func NewWaitlistService(logger *log.Logger, repository WaitlistRepository, opts ...ServiceOption) WaitlistService {
	s := &waitlistService{
		logger:     logger,
		repository: repository,
		tracer:     otel.Tracer("github.com/viewmark/viewmark/domain/waitlist"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *waitlistService) Submit(ctx context.Context, email string) (err error) {
	ctx, span := s.tracer.Start(ctx, "waitlist.Submit")
	defer func() {
		span.SetAttributes(attribute.String("waitlist.outcome", outcomeOf(err)))
		if err != nil && apperrors.HTTPStatusCode(err) >= 500 {
			span.RecordError(err)
			span.SetStatus(codes.Error, "submission failed")
		}
		span.End()
		s.metrics.observe(outcomeOf(err))
	}()

	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if email == "" {
		return ErrEmailRequired
	}

	normalized := emailaddr.Normalize(email)
	if !emailaddr.HasBasicShape(normalized) {
		logger.Info("Rejected malformed waitlist email")
		return ErrInvalidEmailFormat
	}

	key := knownSignupKey(normalized)
	if s.isKnownSignup(ctx, logger, key) {
		logger.Info("Waitlist email already registered (cache)")
		return ErrEmailAlreadyRegistered
	}

	entry := &models.WaitlistEmail{Email: normalized}
	if _, createErr := s.repository.CreateEntry(ctx, entry); createErr != nil {
		if errors.Is(createErr, ErrEmailAlreadyRegistered) {
			logger.Info("Waitlist email already registered")
			s.rememberSignup(ctx, logger, key)
			return createErr
		}
		logger.Error("Failed to save waitlist email", "error", createErr)
		if apperrors.GetErrorType(createErr) == apperrors.ErrorTypeUnknown {
			return apperrors.Wrap(ErrSaveFailed, createErr)
		}
		return createErr
	}

	s.recordSignup(ctx, logger, normalized)

	logger.Info("Waitlist email submitted")
	return nil
}

// recordSignup writes the email_signup interaction. Failures are logged and
// never change the outcome of the submission.
func (s *waitlistService) recordSignup(ctx context.Context, logger *log.Logger, email string) {
	interaction := &models.UserInteraction{
		InteractionType: models.InteractionTypeEmailSignup,
		Email:           &email,
	}
	if err := s.repository.RecordSignup(ctx, interaction); err != nil {
		logger.Warn("Failed to record signup interaction", "error", err)
	}
}

func (s *waitlistService) isKnownSignup(ctx context.Context, logger *log.Logger, key string) bool {
	if s.cache == nil {
		return false
	}

	v, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("Known-signup cache lookup failed", "error", err)
		return false
	}

	return v != ""
}

func (s *waitlistService) rememberSignup(ctx context.Context, logger *log.Logger, key string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, key, "1", s.cacheTTL); err != nil {
		logger.Warn("Known-signup cache write failed", "error", err)
	}
}

// knownSignupKey hashes the address so cache keys carry no plain-text email.
func knownSignupKey(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return "waitlist:known:" + hex.EncodeToString(sum[:])
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeAccepted
	case errors.Is(err, ErrEmailAlreadyRegistered):
		return outcomeDuplicate
	case apperrors.GetErrorType(err) == apperrors.ErrorTypeInvalidRequest:
		return outcomeInvalid
	default:
		return outcomeFailed
	}
}
