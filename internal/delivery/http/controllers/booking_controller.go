package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventscatalogue/internal/delivery/http/helpers"
	"eventscatalogue/internal/domain"
)

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
	Dev     bool
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService, dev bool) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
		Dev:     dev,
	}
}

// CreateBookingRequest is the request body for POST /bookings. The event may
// be identified by eventId, slug, or both (which must then agree).
type CreateBookingRequest struct {
	EventID string `json:"eventId"`
	Slug    string `json:"slug"`
	Email   string `json:"email"`
}

// Validate implements helpers.Validator.
func (r *CreateBookingRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(r.EventID) == "" && strings.TrimSpace(r.Slug) == "" {
		errs = append(errs, "eventId or slug is required")
	}
	return errs
}

// BookingResponse is the response body for POST /bookings (200 or 201).
type BookingResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Booking *domain.Booking `json:"booking"`
}

// CreateBooking godoc
// @Summary Book a spot at an event
// @Description Admits a booking for the event identified by eventId or slug. Idempotent: returns 201 when a new booking is created, 200 when the email was already booked for the event.
// @Tags bookings
// @Accept json
// @Produce json
// @Param body body controllers.CreateBookingRequest true "Booking request"
// @Success 200 {object} controllers.BookingResponse "Already booked"
// @Success 201 {object} controllers.BookingResponse "New booking created"
// @Failure 400 {object} helpers.ErrorResponse "invalid email or mismatched event identifiers"
// @Failure 404 {object} helpers.ErrorResponse "event not found"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	booking, created, err := c.Service.CreateBooking(r.Context(), strings.TrimSpace(req.EventID), req.Slug, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid email address")
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, "Event not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONErrorDetail(w, http.StatusInternalServerError, "Booking failed", err, c.Dev)
		}
		return
	}

	status := http.StatusOK
	message := "Already booked for this event"
	if created {
		status = http.StatusCreated
		message = "Booking created successfully"
	}
	helpers.WriteJSON(w, status, BookingResponse{
		Success: true,
		Message: message,
		Booking: booking,
	})
}

// ListEventBookingsResponse is the response body for GET /events/{slug}/bookings (200).
type ListEventBookingsResponse struct {
	Message    string                 `json:"message"`
	Bookings   []*domain.Booking      `json:"bookings"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventBookings godoc
// @Summary List bookings for an event
// @Description Returns a page of bookings for the event with the given slug, newest first.
// @Tags bookings
// @Produce json
// @Param slug path string true "Event slug"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventBookingsResponse
// @Failure 400 {object} helpers.ErrorResponse "empty slug"
// @Failure 404 {object} helpers.ErrorResponse "event not found"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/{slug}/bookings [get]
func (c *BookingController) ListEventBookings(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	p := helpers.ParsePagination(r)

	bookings, total, err := c.Service.ListEventBookings(r.Context(), slug, p)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid or missing slug parameter")
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, "Event not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONErrorDetail(w, http.StatusInternalServerError, "Booking fetching failed", err, c.Dev)
		}
		return
	}

	helpers.WriteJSON(w, http.StatusOK, ListEventBookingsResponse{
		Message:    "Bookings fetched successfully",
		Bookings:   bookings,
		Pagination: helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}
