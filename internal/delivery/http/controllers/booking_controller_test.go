package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventscatalogue/internal/delivery/http/helpers"
	"eventscatalogue/internal/domain"
)

type mockBookingService struct {
	booking *domain.Booking
	created bool
	err     error

	gotEventID string
	gotSlug    string
	gotEmail   string

	bookings []*domain.Booking
	total    int
}

func (m *mockBookingService) CreateBooking(ctx context.Context, eventID, slug, email string) (*domain.Booking, bool, error) {
	m.gotEventID = eventID
	m.gotSlug = slug
	m.gotEmail = email
	if m.err != nil {
		return nil, false, m.err
	}
	return m.booking, m.created, nil
}

func (m *mockBookingService) ListEventBookings(ctx context.Context, slug string, p domain.PaginationParams) ([]*domain.Booking, int, error) {
	m.gotSlug = slug
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.bookings, m.total, nil
}

func postBooking(t *testing.T, ctrl *BookingController, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ctrl.CreateBooking(w, req)
	return w
}

func TestBookingController_CreateBooking_Created(t *testing.T) {
	svc := &mockBookingService{
		booking: &domain.Booking{ID: "bk-1", EventID: "ev-1", Slug: "jazz-night", Email: "jane@example.com", CreatedAt: time.Now()},
		created: true,
	}
	ctrl := NewBookingController(testLogger(), svc, false)

	w := postBooking(t, ctrl, `{"slug":"jazz-night","email":"jane@example.com"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var resp BookingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !resp.Success || resp.Message != "Booking created successfully" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Booking == nil || resp.Booking.ID != "bk-1" {
		t.Fatalf("unexpected booking: %+v", resp.Booking)
	}
	if svc.gotSlug != "jazz-night" || svc.gotEmail != "jane@example.com" {
		t.Fatalf("unexpected service call: slug=%q email=%q", svc.gotSlug, svc.gotEmail)
	}
}

func TestBookingController_CreateBooking_AlreadyBooked(t *testing.T) {
	svc := &mockBookingService{
		booking: &domain.Booking{ID: "bk-1", EventID: "ev-1", Slug: "jazz-night", Email: "jane@example.com"},
		created: false,
	}
	ctrl := NewBookingController(testLogger(), svc, false)

	w := postBooking(t, ctrl, `{"eventId":"ev-1","email":"jane@example.com"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp BookingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !resp.Success || resp.Message != "Already booked for this event" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Booking == nil || resp.Booking.ID != "bk-1" {
		t.Fatalf("the existing booking must be returned: %+v", resp.Booking)
	}
}

func TestBookingController_CreateBooking_Errors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		serviceErr  error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "invalid email",
			body:        `{"slug":"jazz-night","email":"not-an-email"}`,
			serviceErr:  domain.ErrInvalidInput,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid email address",
		},
		{
			name:        "unknown event",
			body:        `{"slug":"unknown-slug","email":"jane@example.com"}`,
			serviceErr:  domain.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Event not found",
		},
		{
			name:        "missing email",
			body:        `{"slug":"jazz-night"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "email is required",
		},
		{
			name:        "missing event reference",
			body:        `{"email":"jane@example.com"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "eventId or slug is required",
		},
		{
			name:        "malformed json",
			body:        `{"slug":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid JSON data format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{err: tt.serviceErr}
			ctrl := NewBookingController(testLogger(), svc, false)

			w := postBooking(t, ctrl, tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			var resp helpers.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if !strings.Contains(resp.Message, tt.wantMessage) {
				t.Fatalf("expected message containing %q, got %q", tt.wantMessage, resp.Message)
			}
		})
	}
}

func TestBookingController_ListEventBookings(t *testing.T) {
	svc := &mockBookingService{
		bookings: []*domain.Booking{
			{ID: "bk-2", EventID: "ev-1", Slug: "jazz-night", Email: "joe@example.com"},
			{ID: "bk-1", EventID: "ev-1", Slug: "jazz-night", Email: "jane@example.com"},
		},
		total: 42,
	}
	ctrl := NewBookingController(testLogger(), svc, false)

	req := httptest.NewRequest(http.MethodGet, "/events/jazz-night/bookings?page=2&page_size=2", nil)
	req.SetPathValue("slug", "jazz-night")
	w := httptest.NewRecorder()
	ctrl.ListEventBookings(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp ListEventBookingsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Message != "Bookings fetched successfully" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if len(resp.Bookings) != 2 {
		t.Fatalf("unexpected bookings: %+v", resp.Bookings)
	}
	if resp.Pagination.Total != 42 || resp.Pagination.Page != 2 || resp.Pagination.PageSize != 2 {
		t.Fatalf("unexpected pagination meta: %+v", resp.Pagination)
	}
	if svc.gotSlug != "jazz-night" {
		t.Fatalf("unexpected slug passed to service: %q", svc.gotSlug)
	}
}

func TestBookingController_ListEventBookings_UnknownEvent(t *testing.T) {
	svc := &mockBookingService{err: domain.ErrNotFound}
	ctrl := NewBookingController(testLogger(), svc, false)

	req := httptest.NewRequest(http.MethodGet, "/events/unknown-slug/bookings", nil)
	req.SetPathValue("slug", "unknown-slug")
	w := httptest.NewRecorder()
	ctrl.ListEventBookings(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	var resp helpers.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Message != "Event not found" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}
