package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventscatalogue/internal/domain"
)

const defaultSimilarLimit = 4

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService backed by the given repository.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if event.Image == "" {
		return fmt.Errorf("%w: image is required", domain.ErrInvalidInput)
	}

	if event.Slug == "" {
		event.Slug = domain.SlugFromTitle(event.Title)
	} else {
		event.Slug = domain.NormalizeSlug(event.Slug)
	}
	if event.Slug == "" {
		return fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}

	if event.Agenda == nil {
		event.Agenda = []string{}
	}
	if event.Tags == nil {
		event.Tags = []string{}
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	normalized := domain.NormalizeSlug(slug)
	if normalized == "" {
		return nil, fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetBySlug(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListSimilarEvents(ctx context.Context, slug string, limit int) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	normalized := domain.NormalizeSlug(slug)
	if normalized == "" {
		return []*domain.Event{}, nil
	}

	source, err := s.eventRepo.GetBySlug(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// "No similar events" is not an error, even for an unknown source.
			return []*domain.Event{}, nil
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	if len(source.Tags) == 0 {
		return []*domain.Event{}, nil
	}

	similar, err := s.eventRepo.ListSimilar(ctx, source.Tags, source.Slug, limit)
	if err != nil {
		return nil, fmt.Errorf("list similar events: %w", err)
	}
	if similar == nil {
		similar = []*domain.Event{}
	}
	return similar, nil
}
