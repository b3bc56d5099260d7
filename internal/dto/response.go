package dto

import (
	"time"

	"eventdesk/internal/models"
)

type EventResponse struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Organizer   string    `json:"organizer"`
	Agenda      []string  `json:"agenda"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:          e.ID.Hex(),
		Slug:        e.Slug,
		Title:       e.Title,
		Description: e.Description,
		Overview:    e.Overview,
		Image:       e.Image,
		Venue:       e.Venue,
		Location:    e.Location,
		Date:        e.Date,
		Time:        e.Time,
		Mode:        e.Mode,
		Audience:    e.Audience,
		Organizer:   e.Organizer,
		Agenda:      e.Agenda,
		Tags:        e.Tags,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// SimilarEventResponse is the similarity-endpoint shape: identifiers and
// timestamps coerced to plain strings.
type SimilarEventResponse struct {
	ID        string   `json:"id"`
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	Overview  string   `json:"overview"`
	Image     string   `json:"image"`
	Venue     string   `json:"venue"`
	Location  string   `json:"location"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

func ToSimilarEventResponse(e *models.Event) SimilarEventResponse {
	return SimilarEventResponse{
		ID:        e.ID.Hex(),
		Slug:      e.Slug,
		Title:     e.Title,
		Overview:  e.Overview,
		Image:     e.Image,
		Venue:     e.Venue,
		Location:  e.Location,
		Date:      e.Date,
		Time:      e.Time,
		Tags:      e.Tags,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type BookingResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID.Hex(),
		EventID:   b.EventID.Hex(),
		Email:     b.Email,
		Reference: b.Reference,
		CreatedAt: b.CreatedAt,
	}
}

// Envelopes for success responses.

type EventEnvelope struct {
	Message string        `json:"message"`
	Event   EventResponse `json:"event"`
}

type SimilarEventsEnvelope struct {
	Message string                 `json:"message"`
	Events  []SimilarEventResponse `json:"events"`
}

type BookingEnvelope struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

// APIError is the JSON error body emitted by the central error handler.
// Details is only populated outside production.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
