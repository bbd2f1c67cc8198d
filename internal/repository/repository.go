// Package repository provides database operations for player tracking events.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/videofront/videofront-embed-go/internal/models"
)

const schema = `
	CREATE SCHEMA IF NOT EXISTS videofront;

	CREATE TABLE IF NOT EXISTS videofront.tracking_events (
		id UUID PRIMARY KEY,
		event_type VARCHAR(50) NOT NULL,
		course_id VARCHAR(255),
		video_id VARCHAR(255) NOT NULL,
		data JSONB,
		source_ip VARCHAR(45),
		user_agent TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		error_message TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		published_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS tracking_events_video_id_idx
		ON videofront.tracking_events (video_id, created_at DESC);
`

// ErrNotFound is returned when no tracking event matches the lookup.
var ErrNotFound = errors.New("tracking event not found")

// Repository handles all database operations for tracking events.
type Repository struct {
	db *pgxpool.Pool
}

// New creates a new Repository instance with the provided database connection pool.
func New(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Migrate creates the schema if it does not exist yet.
func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.db.Exec(ctx, schema)
	return err
}

// CreateTrackingEvent inserts a new tracking event.
func (r *Repository) CreateTrackingEvent(ctx context.Context, event *models.TrackingEvent) error {
	query := `
		INSERT INTO videofront.tracking_events
		(id, event_type, course_id, video_id, data, source_ip, user_agent, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		event.ID, event.EventType, event.CourseID, event.VideoID, event.Data,
		event.SourceIP, event.UserAgent, event.Status,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
}

// UpdateTrackingEventStatus records the delivery outcome of an event.
func (r *Repository) UpdateTrackingEventStatus(ctx context.Context, id uuid.UUID, status models.TrackingStatus, errorMsg *string) error {
	now := time.Now()
	var publishedAt *time.Time
	if status == models.TrackingStatusCompleted {
		publishedAt = &now
	}

	query := `
		UPDATE videofront.tracking_events
		SET status = $2, error_message = $3, published_at = $4, updated_at = $5
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id, status, errorMsg, publishedAt, now)
	return err
}

// GetTrackingEventByID retrieves a tracking event by its ID.
func (r *Repository) GetTrackingEventByID(ctx context.Context, id uuid.UUID) (*models.TrackingEvent, error) {
	query := `
		SELECT id, event_type, course_id, video_id, data::text, source_ip, user_agent,
		       status, error_message, created_at, updated_at, published_at
		FROM videofront.tracking_events
		WHERE id = $1
	`
	var event models.TrackingEvent
	err := r.db.QueryRow(ctx, query, id).Scan(
		&event.ID, &event.EventType, &event.CourseID, &event.VideoID, &event.Data,
		&event.SourceIP, &event.UserAgent, &event.Status, &event.ErrorMessage,
		&event.CreatedAt, &event.UpdatedAt, &event.PublishedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListTrackingEventsByVideoID returns the latest events of a video, newest first.
func (r *Repository) ListTrackingEventsByVideoID(ctx context.Context, videoID string, limit int) ([]models.TrackingEvent, error) {
	query := `
		SELECT id, event_type, course_id, video_id, data::text, source_ip, user_agent,
		       status, error_message, created_at, updated_at, published_at
		FROM videofront.tracking_events
		WHERE video_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, videoID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.TrackingEvent{}
	for rows.Next() {
		var event models.TrackingEvent
		if err := rows.Scan(
			&event.ID, &event.EventType, &event.CourseID, &event.VideoID, &event.Data,
			&event.SourceIP, &event.UserAgent, &event.Status, &event.ErrorMessage,
			&event.CreatedAt, &event.UpdatedAt, &event.PublishedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// Ping checks the database connection health.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
