package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventscatalogue/internal/domain"

	"github.com/lib/pq"
)

const eventColumns = `id, slug, title, description, overview, organizer, date, time, location, mode, audience, agenda, tags, image, created_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(
		&e.ID, &e.Slug, &e.Title, &e.Description, &e.Overview, &e.Organizer,
		&e.Date, &e.Time, &e.Location, &e.Mode, &e.Audience,
		pq.Array(&e.Agenda), pq.Array(&e.Tags), &e.Image, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (slug, title, description, overview, organizer, date, time, location, mode, audience, agenda, tags, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Slug, e.Title, e.Description, e.Overview, e.Organizer,
		e.Date, e.Time, e.Location, e.Mode, e.Audience,
		pq.Array(e.Agenda), pq.Array(e.Tags), e.Image,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) ListSimilar(ctx context.Context, tags []string, excludeSlug string, limit int) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `,
			cardinality(ARRAY(SELECT unnest(tags) INTERSECT SELECT unnest($1::text[]))) AS overlap
		FROM events
		WHERE slug <> $2 AND tags && $1
		ORDER BY overlap DESC, created_at DESC
		LIMIT $3
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(tags), excludeSlug, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var overlap int
		err := rows.Scan(
			&e.ID, &e.Slug, &e.Title, &e.Description, &e.Overview, &e.Organizer,
			&e.Date, &e.Time, &e.Location, &e.Mode, &e.Audience,
			pq.Array(&e.Agenda), pq.Array(&e.Tags), &e.Image, &e.CreatedAt,
			&overlap,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
