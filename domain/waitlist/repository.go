package waitlist

import (
	"context"

	"github.com/viewmark/viewmark/internal/models"
	apperrors "github.com/viewmark/viewmark/pkg/errors"
	"gorm.io/gorm"
)

var emailUniqueConstraint = apperrors.UniqueConstraint{
	Name:   models.WaitlistEmailConstraint,
	Table:  "waitlist_emails",
	Column: "email",
}

//go:generate mockgen -destination=mocks.go -package=waitlist . WaitlistRepository,WaitlistService,KnownSignupCache

type WaitlistRepository interface {
	// CreateEntry inserts one signup. The store's unique index decides duplicates.
	CreateEntry(ctx context.Context, entry *models.WaitlistEmail) (*models.WaitlistEmail, error)
	// RecordSignup appends an email_signup row to user_interactions.
	RecordSignup(ctx context.Context, interaction *models.UserInteraction) error
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (wr *waitlistRepository) CreateEntry(ctx context.Context, entry *models.WaitlistEmail) (*models.WaitlistEmail, error) {
	if err := wr.db.WithContext(ctx).Create(entry).Error; err != nil {
		if apperrors.IsUniqueViolation(err, emailUniqueConstraint) {
			return nil, apperrors.Wrap(ErrEmailAlreadyRegistered, err)
		}
		return nil, apperrors.Wrap(ErrSaveFailed, err)
	}

	return entry, nil
}

func (wr *waitlistRepository) RecordSignup(ctx context.Context, interaction *models.UserInteraction) error {
	if err := wr.db.WithContext(ctx).Create(interaction).Error; err != nil {
		return apperrors.NewDatabaseError("unable to record signup interaction", err)
	}
	return nil
}
