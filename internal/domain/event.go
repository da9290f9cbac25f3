package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Event represents a catalogued event.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Organizer   string    `json:"organizer"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Tags        []string  `json:"tags"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID and CreatedAt are set by the repository on create.
func NewEvent(slug, title, description, overview, organizer, date, timeOfDay, location, mode, audience, image string, agenda, tags []string) *Event {
	return &Event{
		Slug:        slug,
		Title:       title,
		Description: description,
		Overview:    overview,
		Organizer:   organizer,
		Date:        date,
		Time:        timeOfDay,
		Location:    location,
		Mode:        mode,
		Audience:    audience,
		Agenda:      agenda,
		Tags:        tags,
		Image:       image,
	}
}

// NormalizeSlug trims surrounding whitespace and lowercases a slug. Every
// comparison and write of a slug goes through this.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// SlugFromTitle derives a URL-safe slug from an event title: lowercase,
// non-alphanumeric runs collapsed to a single hyphen, hyphens trimmed.
func SlugFromTitle(title string) string {
	slug := NormalizeSlug(title)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	ListAll(ctx context.Context) ([]*Event, error)
	// ListSimilar returns up to limit events sharing at least one of the given
	// tags, excluding the event with excludeSlug, ordered by tag-overlap count
	// descending then created_at descending.
	ListSimilar(ctx context.Context, tags []string, excludeSlug string, limit int) ([]*Event, error)
}

// EventService defines catalogue-facing operations over events.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	// ListSimilarEvents returns events sharing at least one tag with the event
	// identified by slug. An unresolvable slug yields an empty list, not an error.
	ListSimilarEvents(ctx context.Context, slug string, limit int) ([]*Event, error)
}
