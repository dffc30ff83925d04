package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aurorahq/akfeed/internal/domain"
)

// PublishNews stores a new item and notifies the publish event stream.
// A failed notification is logged and counted but never fails the write;
// the item is already durable at that point.
func (s *Service) PublishNews(ctx context.Context, item *domain.NewsItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.PublishedAt == nil {
		now := time.Now().UTC()
		item.PublishedAt = &now
	}
	if err := s.store.InsertNewsItem(ctx, item); err != nil {
		return fmt.Errorf("inserting news item: %w", err)
	}

	if s.publisher == nil {
		s.metrics.PublishEvents.WithLabelValues("disabled").Inc()
		return nil
	}
	if err := s.publisher.PublishNews(ctx, *item); err != nil {
		s.logger.Error("publish notification failed", "id", item.ID, "error", err)
		s.metrics.PublishEvents.WithLabelValues("error").Inc()
		return nil
	}
	s.metrics.PublishEvents.WithLabelValues("success").Inc()
	return nil
}

// ErrSummariesDisabled is returned when no summarizer is configured.
var ErrSummariesDisabled = errors.New("summaries are not enabled")

// SummarizeNews drafts a short summary for a stored item and persists it
// as the item's description.
func (s *Service) SummarizeNews(ctx context.Context, id string) (string, error) {
	if s.summarizer == nil {
		return "", ErrSummariesDisabled
	}
	item, err := s.store.GetNewsItem(ctx, id)
	if err != nil {
		return "", err
	}
	summary, err := s.summarizer.SummarizeNews(ctx, item.Title, item.Description)
	if err != nil {
		return "", fmt.Errorf("summarizing %s: %w", id, err)
	}
	item.Description = summary
	if err := s.store.UpdateNewsItem(ctx, &item); err != nil {
		return "", fmt.Errorf("saving summary: %w", err)
	}
	return summary, nil
}

// AddFavorite records a saved story for a user.
func (s *Service) AddFavorite(ctx context.Context, userID, newsItemID string) error {
	if _, err := s.store.GetNewsItem(ctx, newsItemID); err != nil {
		return err
	}
	return s.users.AddFavorite(ctx, userID, newsItemID)
}

// RemoveFavorite deletes a saved story for a user.
func (s *Service) RemoveFavorite(ctx context.Context, userID, newsItemID string) error {
	return s.users.RemoveFavorite(ctx, userID, newsItemID)
}

// ListFavorites returns a user's saved stories, newest first.
func (s *Service) ListFavorites(ctx context.Context, userID string, limit int) ([]domain.NewsItem, error) {
	return s.users.ListFavorites(ctx, userID, limit)
}
