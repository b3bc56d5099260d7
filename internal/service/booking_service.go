package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	nanoid "github.com/matoous/go-nanoid/v2"

	"eventdesk/internal/models"
	"eventdesk/internal/repository"
	"eventdesk/pkg/rabbitmq"
)

var ErrInvalidEmail = errors.New("invalid email address")

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

const (
	referenceAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	referenceLength   = 10
)

// BookingCreatedMessage is the payload published on booking.created,
// consumed by the confirmation mailer.
type BookingCreatedMessage struct {
	BookingID  string `json:"booking_id"`
	Reference  string `json:"reference"`
	Email      string `json:"email"`
	EventTitle string `json:"event_title"`
	EventDate  string `json:"event_date"`
	EventTime  string `json:"event_time"`
}

type BookingService interface {
	CreateBooking(ctx context.Context, event *models.Event, email string) (*models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	eventRepo   repository.EventRepository
	publisher   *rabbitmq.Publisher
}

func NewBookingService(bookingRepo repository.BookingRepository, eventRepo repository.EventRepository, publisher *rabbitmq.Publisher) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		publisher:   publisher,
	}
}

// NormalizeEmail trims and lowercases a raw email address. The normalized
// form is what gets validated and persisted.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// CreateBooking validates the email, re-checks that the referenced event
// still exists and persists the booking with a generated reference code.
func (s *bookingService) CreateBooking(ctx context.Context, event *models.Event, email string) (*models.Booking, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" || !emailPattern.MatchString(normalized) {
		return nil, ErrInvalidEmail
	}

	exists, err := s.eventRepo.ExistsByID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return nil, ErrEventNotFound
	}

	reference, err := nanoid.Generate(referenceAlphabet, referenceLength)
	if err != nil {
		return nil, fmt.Errorf("generate booking reference: %w", err)
	}

	booking := &models.Booking{
		EventID:   event.ID,
		Email:     normalized,
		Reference: reference,
	}
	if err := s.bookingRepo.Insert(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("booking.created", BookingCreatedMessage{
			BookingID:  booking.ID.Hex(),
			Reference:  booking.Reference,
			Email:      booking.Email,
			EventTitle: event.Title,
			EventDate:  event.Date,
			EventTime:  event.Time,
		})
	}

	return booking, nil
}
