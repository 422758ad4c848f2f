package service

import (
	"context"
	"errors"

	"bistro/internal/events"
	newslettererrors "bistro/internal/newsletter/errors"
	"bistro/internal/newsletter/repository"
	"bistro/internal/newsletter/validator"
	"bistro/pkg/config"
	apperrors "bistro/pkg/errors"
	"bistro/pkg/model"
	"bistro/pkg/sanitizer"

	"github.com/google/uuid"
)

type NewsletterService interface {
	Subscribe(ctx context.Context, req *model.SubscribeRequest) (*model.Subscriber, error)
}

type newsletterService struct {
	repo      repository.SubscriberRepository
	validator *validator.SubscriberValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewNewsletterService(
	repo repository.SubscriberRepository,
	validator *validator.SubscriberValidator,
	publisher events.Publisher,
	cfg *config.Config,
) NewsletterService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &newsletterService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *newsletterService) Subscribe(ctx context.Context, req *model.SubscribeRequest) (*model.Subscriber, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Newsletter sign-up rejected", "reason", err.Error())
		return nil, apperrors.Validation("Invalid email address.", nil)
	}

	subscriber := &model.Subscriber{
		ID:      uuid.NewString(),
		Email:   req.Email,
		Consent: req.ConsentGiven(),
	}

	if err := s.repo.Create(ctx, subscriber); err != nil {
		if errors.Is(err, newslettererrors.ErrAlreadySubscribed) {
			s.cfg.Log.Info("Duplicate newsletter sign-up")
			return nil, apperrors.Conflict("Already subscribed")
		}
		s.cfg.Log.Error("Failed to create subscriber", "error", err)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Timeout()
		}
		return nil, apperrors.Internal("Subscription failed", err)
	}

	s.cfg.Log.Info("Subscriber created successfully", "id", subscriber.ID, "consent", subscriber.Consent)

	s.publisher.NewsletterSubscribed(ctx, subscriber)

	return subscriber, nil
}
