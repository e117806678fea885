package analytics

import (
	"context"

	"github.com/viewmark/viewmark/internal/models"
	apperrors "github.com/viewmark/viewmark/pkg/errors"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mocks.go -package=analytics . AnalyticsRepository,AnalyticsService

type AnalyticsRepository interface {
	CreatePageView(ctx context.Context, view *models.PageView) error
	CreateInteraction(ctx context.Context, interaction *models.UserInteraction) error
	// MirrorSignup copies an email_signup interaction into waitlist_emails.
	MirrorSignup(ctx context.Context, email string) error
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (ar *analyticsRepository) CreatePageView(ctx context.Context, view *models.PageView) error {
	if err := ar.db.WithContext(ctx).Create(view).Error; err != nil {
		return apperrors.Wrap(ErrTrackPageViewFailed, err)
	}
	return nil
}

func (ar *analyticsRepository) CreateInteraction(ctx context.Context, interaction *models.UserInteraction) error {
	if err := ar.db.WithContext(ctx).Create(interaction).Error; err != nil {
		return apperrors.Wrap(ErrTrackInteractionFailed, err)
	}
	return nil
}

func (ar *analyticsRepository) MirrorSignup(ctx context.Context, email string) error {
	if err := ar.db.WithContext(ctx).Create(&models.WaitlistEmail{Email: email}).Error; err != nil {
		return apperrors.NewDatabaseError("unable to mirror signup", err)
	}
	return nil
}
