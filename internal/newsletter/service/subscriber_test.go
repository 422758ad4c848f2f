package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	newslettererrors "bistro/internal/newsletter/errors"
	"bistro/internal/newsletter/validator"
	"bistro/pkg/config"
	apperrors "bistro/pkg/errors"
	"bistro/pkg/logger"
	"bistro/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepository struct {
	mu        sync.Mutex
	byEmail   map[string]*model.Subscriber
	createErr error
}

func (m *memoryRepository) Create(ctx context.Context, subscriber *model.Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return m.createErr
	}
	if m.byEmail == nil {
		m.byEmail = make(map[string]*model.Subscriber)
	}
	if _, exists := m.byEmail[subscriber.Email]; exists {
		return newslettererrors.ErrAlreadySubscribed
	}
	m.byEmail[subscriber.Email] = subscriber
	return nil
}

type mockPublisher struct {
	subscribed []*model.Subscriber
}

func (p *mockPublisher) ReservationConfirmed(context.Context, *model.Reservation, *string) {}

func (p *mockPublisher) NewsletterSubscribed(ctx context.Context, subscriber *model.Subscriber) {
	p.subscribed = append(p.subscribed, subscriber)
}

func (p *mockPublisher) Close() error { return nil }

func newTestService(repo *memoryRepository, publisher *mockPublisher) NewsletterService {
	log := logger.Discard()
	return NewNewsletterService(repo, validator.NewSubscriberValidator(log), publisher, &config.Config{Log: log})
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.StatusCode()
}

func TestSubscribe_TwiceConflicts(t *testing.T) {
	repo := &memoryRepository{}
	publisher := &mockPublisher{}
	svc := newTestService(repo, publisher)

	sub, err := svc.Subscribe(context.Background(), &model.SubscribeRequest{Email: "guest@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.True(t, sub.Consent, "consent defaults to true")

	_, err = svc.Subscribe(context.Background(), &model.SubscribeRequest{Email: "  GUEST@example.com "})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
	assert.Equal(t, "Already subscribed", apperrors.AsAppError(err).Message)

	assert.Len(t, publisher.subscribed, 1)
}

func TestSubscribe_ExplicitConsentFalse(t *testing.T) {
	svc := newTestService(&memoryRepository{}, &mockPublisher{})

	no := false
	sub, err := svc.Subscribe(context.Background(), &model.SubscribeRequest{Email: "guest@example.com", Consent: &no})
	require.NoError(t, err)
	assert.False(t, sub.Consent)
}

func TestSubscribe_InvalidEmail(t *testing.T) {
	repo := &memoryRepository{}
	svc := newTestService(repo, &mockPublisher{})

	_, err := svc.Subscribe(context.Background(), &model.SubscribeRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.Equal(t, "Invalid email address.", apperrors.AsAppError(err).Message)
	assert.Empty(t, repo.byEmail)
}

func TestSubscribe_StorageFailure(t *testing.T) {
	svc := newTestService(&memoryRepository{createErr: errors.New("connection refused")}, &mockPublisher{})

	_, err := svc.Subscribe(context.Background(), &model.SubscribeRequest{Email: "guest@example.com"})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	assert.Equal(t, "Subscription failed", apperrors.AsAppError(err).Message)
}

func TestSubscribe_StorageDeadlineIsTimeout(t *testing.T) {
	repo := &memoryRepository{createErr: fmt.Errorf("failed to insert subscriber: %w", context.DeadlineExceeded)}
	svc := newTestService(repo, &mockPublisher{})

	_, err := svc.Subscribe(context.Background(), &model.SubscribeRequest{Email: "guest@example.com"})
	require.Error(t, err)
	assert.Equal(t, http.StatusGatewayTimeout, statusOf(t, err))
	assert.Equal(t, "Request timed out", apperrors.AsAppError(err).Message)
}
