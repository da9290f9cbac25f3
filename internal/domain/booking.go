package domain

import (
	"context"
	"time"
)

// Booking represents an attendee's sign-up for an event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Slug      string    `json:"slug"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBooking creates a new Booking. ID and CreatedAt are set by the repository on create.
func NewBooking(eventID, slug, email string) *Booking {
	return &Booking{
		EventID: eventID,
		Slug:    slug,
		Email:   email,
	}
}

// BookingRepository defines storage operations for bookings. The store keeps a
// unique constraint on (event_id, email); Create returns ErrConflict when it
// fires.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByEventAndEmail(ctx context.Context, eventID, email string) (*Booking, error)
	ListByEventID(ctx context.Context, eventID string, p PaginationParams) ([]*Booking, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
}

// BookingService defines attendee-facing booking admission.
type BookingService interface {
	// CreateBooking admits a booking for the event identified by eventID or
	// slug. Returns (booking, created, err): created is true if a new booking
	// was stored, false if the attendee was already booked (idempotent repeat).
	CreateBooking(ctx context.Context, eventID, slug, email string) (*Booking, bool, error)
	// ListEventBookings returns a page of bookings for the event identified by
	// slug along with the total count.
	ListEventBookings(ctx context.Context, slug string, p PaginationParams) ([]*Booking, int, error)
}
