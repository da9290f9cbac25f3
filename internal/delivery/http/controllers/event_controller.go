package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"eventscatalogue/internal/delivery/http/helpers"
	"eventscatalogue/internal/domain"
)

// maxUploadBytes caps the parsed multipart form size for event creation.
const maxUploadBytes = 10 << 20

type EventController struct {
	Logger     *slog.Logger
	Service    domain.EventService
	MediaStore domain.MediaStore
	Dev        bool
}

func NewEventController(logger *slog.Logger, svc domain.EventService, media domain.MediaStore, dev bool) *EventController {
	return &EventController{
		Logger:     logger,
		Service:    svc,
		MediaStore: media,
		Dev:        dev,
	}
}

// ListEventsResponse is the response body for GET /events (200).
type ListEventsResponse struct {
	Message string          `json:"message"`
	Events  []*domain.Event `json:"events"`
}

// ListEvents godoc
// @Summary List all events
// @Description Returns all events ordered by creation time, newest first.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.ListEventsResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONErrorDetail(w, http.StatusInternalServerError, "Event fetching failed", err, c.Dev)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ListEventsResponse{
		Message: "Events fetched successfully",
		Events:  events,
	})
}

// EventResponse is the response body for endpoints returning a single event.
type EventResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event from a multipart form. The image file is required and is stored before the event record is written. tags and agenda arrive as JSON array strings and are parsed at this boundary.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Event title"
// @Param slug formData string false "Explicit slug; derived from title when omitted"
// @Param description formData string false "Description"
// @Param overview formData string false "Overview"
// @Param organizer formData string false "Organizer"
// @Param date formData string false "Date"
// @Param time formData string false "Time"
// @Param location formData string false "Location"
// @Param mode formData string false "Mode"
// @Param audience formData string false "Audience"
// @Param tags formData string false "JSON array of tag strings"
// @Param agenda formData string false "JSON array of agenda item strings"
// @Param image formData file true "Event image"
// @Success 201 {object} controllers.EventResponse
// @Failure 400 {object} helpers.ErrorResponse "missing image or malformed tags/agenda"
// @Failure 409 {object} helpers.ErrorResponse "slug already exists"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid multipart form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	tags, err := parseStringArray(r.FormValue("tags"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid JSON data format")
		return
	}
	agenda, err := parseStringArray(r.FormValue("agenda"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid JSON data format")
		return
	}

	// The image must be durable before the event record referencing it exists.
	image, err := c.MediaStore.Save(header.Filename, file)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "image upload failed", "filename", header.Filename, "err", err)
		helpers.WriteJSONErrorDetail(w, http.StatusInternalServerError, "Failed to upload image", err, c.Dev)
		return
	}

	event := domain.NewEvent(
		r.FormValue("slug"),
		r.FormValue("title"),
		r.FormValue("description"),
		r.FormValue("overview"),
		r.FormValue("organizer"),
		r.FormValue("date"),
		r.FormValue("time"),
		r.FormValue("location"),
		r.FormValue("mode"),
		r.FormValue("audience"),
		image,
		agenda,
		tags,
	)

	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrConflict):
			helpers.WriteJSONError(w, http.StatusConflict, "Event with this slug already exists")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONErrorDetail(w, http.StatusInternalServerError, "Event creation failed", err, c.Dev)
		}
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, EventResponse{
		Message: "Event created successfully",
		Event:   event,
	})
}

// parseStringArray parses a form field holding a JSON array of strings.
// An absent field yields an empty slice.
func parseStringArray(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// GetEventBySlug godoc
// @Summary Get an event by slug
// @Description Returns the event with the given slug. The slug is trimmed and lowercased before lookup.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventResponse
// @Failure 400 {object} helpers.ErrorResponse "empty slug"
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/{slug} [get]
func (c *EventController) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	event, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid or missing slug parameter")
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, fmt.Sprintf("Event with slug '%s' not found", domain.NormalizeSlug(slug)))
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONErrorDetail(w, http.StatusInternalServerError, "Failed to fetch event", err, c.Dev)
		}
		return
	}

	helpers.WriteJSON(w, http.StatusOK, EventResponse{
		Message: "Event fetched successfully",
		Event:   event,
	})
}

// ListSimilarEvents godoc
// @Summary List events similar to an event
// @Description Returns up to limit events sharing at least one tag with the given event, ordered by tag overlap then recency. An unknown slug yields an empty list.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Param limit query int false "Maximum number of events (default 4)"
// @Success 200 {object} controllers.ListEventsResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/{slug}/similar [get]
func (c *EventController) ListSimilarEvents(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}

	events, err := c.Service.ListSimilarEvents(r.Context(), slug, limit)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONErrorDetail(w, http.StatusInternalServerError, "Event fetching failed", err, c.Dev)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, ListEventsResponse{
		Message: "Events fetched successfully",
		Events:  events,
	})
}
