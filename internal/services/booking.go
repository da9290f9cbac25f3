package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"eventscatalogue/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

type bookingService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	publicBaseURL  string
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService with the given repositories.
// emailService may be a noop implementation; confirmation emails are
// best-effort and never fail a booking.
func NewBookingService(
	eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	publicBaseURL string,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		emailService:   emailService,
		logger:         logger,
		publicBaseURL:  publicBaseURL,
		contextTimeout: timeout,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, eventID, slug, email string) (*domain.Booking, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return nil, false, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}

	event, err := s.resolveEvent(ctx, eventID, slug)
	if err != nil {
		return nil, false, err
	}

	// Check if the attendee is already booked; make admission idempotent.
	if existing, err := s.bookingRepo.GetByEventAndEmail(ctx, event.ID, email); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get booking: %w", err)
	}

	booking := domain.NewBooking(event.ID, event.Slug, email)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost a race with an identical submission; return the winner's row.
			existing, err := s.bookingRepo.GetByEventAndEmail(ctx, event.ID, email)
			if err != nil {
				return nil, false, fmt.Errorf("get booking after conflict: %w", err)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create booking: %w", err)
	}

	s.sendConfirmation(ctx, event, email)
	return booking, true, nil
}

// resolveEvent looks up the event by ID or slug, whichever is provided. When
// both are given they must identify the same event.
func (s *bookingService) resolveEvent(ctx context.Context, eventID, slug string) (*domain.Event, error) {
	slug = domain.NormalizeSlug(slug)

	if eventID != "" {
		event, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get event: %w", err)
		}
		if slug != "" && event.Slug != slug {
			return nil, fmt.Errorf("%w: event_id and slug identify different events", domain.ErrInvalidInput)
		}
		return event, nil
	}

	if slug == "" {
		return nil, fmt.Errorf("%w: event_id or slug is required", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *bookingService) sendConfirmation(ctx context.Context, event *domain.Event, email string) {
	if s.emailService == nil {
		return
	}
	data := &domain.BookingConfirmationEmailData{
		Email:      email,
		EventTitle: event.Title,
		EventDate:  event.Date,
		EventTime:  event.Time,
		Location:   event.Location,
		EventURL:   s.publicBaseURL + "/events/" + event.Slug,
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "booking confirmation email failed", "event_id", event.ID, "err", err)
	}
}

func (s *bookingService) ListEventBookings(ctx context.Context, slug string, p domain.PaginationParams) ([]*domain.Booking, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	normalized := domain.NormalizeSlug(slug)
	if normalized == "" {
		return nil, 0, fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetBySlug(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event by slug: %w", err)
	}

	bookings, err := s.bookingRepo.ListByEventID(ctx, event.ID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}

	total, err := s.bookingRepo.CountByEventID(ctx, event.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}
	return bookings, total, nil
}
