package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"eventdesk/internal/models"
	"eventdesk/internal/normalize"
	"eventdesk/internal/repository"
	"eventdesk/pkg/rabbitmq"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrDuplicateSlug = errors.New("an event with this slug already exists")
)

// ValidationError reports a client input problem on a single field. Writes
// are rejected before reaching the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	UpdateEvent(ctx context.Context, slug string, event *models.Event) (*models.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	SimilarEvents(ctx context.Context, slug string) ([]models.Event, error)
}

type eventService struct {
	repo      repository.EventRepository
	publisher *rabbitmq.Publisher
}

func NewEventService(repo repository.EventRepository, publisher *rabbitmq.Publisher) EventService {
	return &eventService{repo: repo, publisher: publisher}
}

// CreateEvent validates the record, derives its slug and persists it.
// Any validation failure aborts the write entirely.
func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	event.Slug = ""
	if err := validateEvent(event, true); err != nil {
		return err
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("create event: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.created", event)
	}
	return nil
}

// UpdateEvent replaces the record stored under slug. The slug is regenerated
// only when the title changed.
func (s *eventService) UpdateEvent(ctx context.Context, slug string, event *models.Event) (*models.Event, error) {
	existing, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	event.ID = existing.ID
	event.CreatedAt = existing.CreatedAt
	event.Slug = existing.Slug

	titleChanged := strings.TrimSpace(event.Title) != existing.Title
	if err := validateEvent(event, titleChanged); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, event); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateSlug
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.updated", event)
	}
	return event, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*models.Event, error) {
	event, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.repo.FindAll(ctx)
}

// SimilarEvents returns other events sharing at least one tag with the event
// under slug. Best-effort: every failure degrades to an empty result.
func (s *eventService) SimilarEvents(ctx context.Context, slug string) ([]models.Event, error) {
	source, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			log.Printf("[EventService] similar events source lookup failed for %q: %v", slug, err)
		}
		return []models.Event{}, nil
	}

	if len(source.Tags) == 0 {
		return []models.Event{}, nil
	}

	events, err := s.repo.FindByTagsExcept(ctx, source.Tags, source.ID)
	if err != nil {
		log.Printf("[EventService] similar events query failed for %q: %v", slug, err)
		return []models.Event{}, nil
	}
	return events, nil
}

// requiredFields lists the descriptive string fields an event must carry,
// in the order they are checked.
func requiredFields(e *models.Event) []struct{ name, value string } {
	return []struct{ name, value string }{
		{"title", e.Title},
		{"description", e.Description},
		{"overview", e.Overview},
		{"image", e.Image},
		{"venue", e.Venue},
		{"location", e.Location},
		{"date", e.Date},
		{"time", e.Time},
		{"mode", e.Mode},
		{"audience", e.Audience},
		{"organizer", e.Organizer},
	}
}

// validateEvent enforces the pre-write invariants: required strings non-empty
// after trimming, agenda and tags non-empty with trimmed non-empty elements,
// slug derived from the title, date and time in canonical form. The record is
// mutated to its normalized form; any error means nothing may be written.
func validateEvent(e *models.Event, regenerateSlug bool) error {
	for _, f := range requiredFields(e) {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name, Reason: "is required"}
		}
	}
	e.Title = strings.TrimSpace(e.Title)

	var err error
	if e.Agenda, err = trimmedAll(e.Agenda); err != nil {
		return &ValidationError{Field: "agenda", Reason: err.Error()}
	}
	if e.Tags, err = trimmedAll(e.Tags); err != nil {
		return &ValidationError{Field: "tags", Reason: err.Error()}
	}

	if e.Slug == "" || regenerateSlug {
		slug := normalize.Slugify(e.Title)
		if slug == "" {
			return &ValidationError{Field: "title", Reason: "cannot be reduced to a slug"}
		}
		e.Slug = slug
	}

	date, err := normalize.Date(e.Date)
	if err != nil {
		return &ValidationError{Field: "date", Reason: err.Error()}
	}
	e.Date = date

	t, err := normalize.Time(e.Time)
	if err != nil {
		return &ValidationError{Field: "time", Reason: err.Error()}
	}
	e.Time = t

	return nil
}

// trimmedAll trims every element and rejects empty sequences or elements.
func trimmedAll(values []string) ([]string, error) {
	if len(values) == 0 {
		return nil, errors.New("must be a non-empty list")
	}
	out := make([]string, len(values))
	for i, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, errors.New("must not contain empty entries")
		}
		out[i] = v
	}
	return out, nil
}
