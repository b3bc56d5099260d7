package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventdesk/internal/dto"
	"eventdesk/internal/models"
	"eventdesk/internal/service"
)

// --- Mock EventService ---

type mockEventService struct {
	createFn  func(ctx context.Context, event *models.Event) error
	updateFn  func(ctx context.Context, slug string, event *models.Event) (*models.Event, error)
	getFn     func(ctx context.Context, slug string) (*models.Event, error)
	listFn    func(ctx context.Context) ([]models.Event, error)
	similarFn func(ctx context.Context, slug string) ([]models.Event, error)
}

func (m *mockEventService) CreateEvent(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}
func (m *mockEventService) UpdateEvent(ctx context.Context, slug string, event *models.Event) (*models.Event, error) {
	return m.updateFn(ctx, slug, event)
}
func (m *mockEventService) GetEventBySlug(ctx context.Context, slug string) (*models.Event, error) {
	return m.getFn(ctx, slug)
}
func (m *mockEventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return m.listFn(ctx)
}
func (m *mockEventService) SimilarEvents(ctx context.Context, slug string) ([]models.Event, error) {
	return m.similarFn(ctx, slug)
}

func storedEvent() *models.Event {
	return &models.Event{
		ID:          primitive.NewObjectID(),
		Slug:        "my-event",
		Title:       "My Event",
		Description: "desc",
		Overview:    "overview",
		Image:       "/img.png",
		Venue:       "Hall A",
		Location:    "Bangkok",
		Date:        "2026-03-14",
		Time:        "13:00",
		Mode:        "in-person",
		Audience:    "everyone",
		Organizer:   "Org",
		Agenda:      []string{"Keynote"},
		Tags:        []string{"ai", "cloud"},
	}
}

// getContext builds an echo context for GET /api/v1/events/:slug. The raw
// slug is injected as a path param so it may contain characters that would
// not survive URL parsing.
func getContext(e *echo.Echo, slug string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/placeholder", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/events/:slug")
	c.SetParamNames("slug")
	c.SetParamValues(slug)
	return c, rec
}

func apiError(t *testing.T, err error) (int, dto.APIError) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	apiErr, ok := he.Message.(dto.APIError)
	if !ok {
		t.Fatalf("expected dto.APIError message, got %T", he.Message)
	}
	return he.Code, apiErr
}

// --- GetEvent ---

func TestGetEvent_Handler_Success(t *testing.T) {
	expected := storedEvent()
	svc := &mockEventService{
		getFn: func(ctx context.Context, slug string) (*models.Event, error) {
			assert.Equal(t, "my-event", slug)
			return expected, nil
		},
	}

	e := echo.New()
	c, rec := getContext(e, "my-event")

	h := NewEventHandler(svc)
	err := h.GetEvent(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.EventEnvelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "my-event", resp.Event.Slug)
	assert.NotEmpty(t, resp.Message)
}

func TestGetEvent_Handler_MalformedSlug(t *testing.T) {
	svc := &mockEventService{
		getFn: func(ctx context.Context, slug string) (*models.Event, error) {
			t.Fatal("store must not be reached on validation failure")
			return nil, nil
		},
	}

	e := echo.New()
	c, _ := getContext(e, "My Event!")

	err := NewEventHandler(svc).GetEvent(c)

	code, apiErr := apiError(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_SLUG_FORMAT", apiErr.Code)
}

func TestGetEvent_Handler_MissingSlug(t *testing.T) {
	svc := &mockEventService{}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewEventHandler(svc).GetEvent(c)

	code, apiErr := apiError(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "MISSING_SLUG", apiErr.Code)
}

func TestGetEvent_Handler_SlugFromQueryParam(t *testing.T) {
	svc := &mockEventService{
		getFn: func(ctx context.Context, slug string) (*models.Event, error) {
			assert.Equal(t, "my-event", slug)
			return storedEvent(), nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?slug=My-Event", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewEventHandler(svc).GetEvent(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetEvent_Handler_SlugFromPathSegmentFallback(t *testing.T) {
	svc := &mockEventService{
		getFn: func(ctx context.Context, slug string) (*models.Event, error) {
			assert.Equal(t, "my-event", slug)
			return storedEvent(), nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/my-event", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewEventHandler(svc).GetEvent(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetEvent_Handler_NotFound(t *testing.T) {
	svc := &mockEventService{
		getFn: func(ctx context.Context, slug string) (*models.Event, error) {
			return nil, service.ErrEventNotFound
		},
	}

	e := echo.New()
	c, _ := getContext(e, "no-such-event")

	err := NewEventHandler(svc).GetEvent(c)

	code, apiErr := apiError(t, err)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "EVENT_NOT_FOUND", apiErr.Code)
}

// --- CreateEvent ---

func TestCreateEvent_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		createFn: func(ctx context.Context, event *models.Event) error {
			event.ID = primitive.NewObjectID()
			event.Slug = "golang-workshop"
			return nil
		},
	}

	body := `{"title":"Golang Workshop","description":"d","overview":"o","image":"/i.png","venue":"v","location":"l","date":"2026-03-14","time":"1pm","mode":"in-person","audience":"a","organizer":"org","agenda":["x"],"tags":["go"]}`
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewEventHandler(svc).CreateEvent(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.EventEnvelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "golang-workshop", resp.Event.Slug)
}

func TestCreateEvent_Handler_ValidationFailure(t *testing.T) {
	svc := &mockEventService{
		createFn: func(ctx context.Context, event *models.Event) error {
			return &service.ValidationError{Field: "venue", Reason: "is required"}
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(`{"title":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewEventHandler(svc).CreateEvent(c)

	code, apiErr := apiError(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_FAILED", apiErr.Code)
	assert.Contains(t, apiErr.Message, "venue")
}

func TestCreateEvent_Handler_DuplicateSlug(t *testing.T) {
	svc := &mockEventService{
		createFn: func(ctx context.Context, event *models.Event) error {
			return service.ErrDuplicateSlug
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(`{"title":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewEventHandler(svc).CreateEvent(c)

	code, apiErr := apiError(t, err)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "DUPLICATE_SLUG", apiErr.Code)
}

// --- SimilarEvents ---

func TestSimilarEvents_Handler_Success(t *testing.T) {
	other := storedEvent()
	other.Slug = "other-event"

	svc := &mockEventService{
		similarFn: func(ctx context.Context, slug string) ([]models.Event, error) {
			assert.Equal(t, "my-event", slug)
			return []models.Event{*other}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/my-event/similar", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/events/:slug/similar")
	c.SetParamNames("slug")
	c.SetParamValues("my-event")

	err := NewEventHandler(svc).SimilarEvents(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.SimilarEventsEnvelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Events, 1)
	assert.Equal(t, "other-event", resp.Events[0].Slug)
	assert.NotEmpty(t, resp.Events[0].ID)
	assert.NotEmpty(t, resp.Events[0].CreatedAt)
}

func TestSimilarEvents_Handler_InvalidSlugDegradesToEmpty(t *testing.T) {
	svc := &mockEventService{
		similarFn: func(ctx context.Context, slug string) ([]models.Event, error) {
			t.Fatal("service must not be called for an invalid slug")
			return nil, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/similar", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/events/:slug/similar")
	c.SetParamNames("slug")
	c.SetParamValues("Bad Slug!")

	err := NewEventHandler(svc).SimilarEvents(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.SimilarEventsEnvelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Events)
}

// --- ListEvents ---

func TestListEvents_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		listFn: func(ctx context.Context) ([]models.Event, error) {
			return []models.Event{*storedEvent(), *storedEvent()}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewEventHandler(svc).ListEvents(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.EventResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}
