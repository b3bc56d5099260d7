package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"eventdesk/internal/dto"
	"eventdesk/internal/service"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateEvent)
	g.GET("", h.ListEvents)
	g.GET("/:slug", h.GetEvent)
	g.PUT("/:slug", h.UpdateEvent)
	g.GET("/:slug/similar", h.SimilarEvents)
}

// slugFromRequest extracts the raw slug token: path param first, then the
// "slug" query param, then the last path segment that is not "events".
func slugFromRequest(c echo.Context) string {
	if v := c.Param("slug"); v != "" {
		return v
	}
	if v := c.QueryParam("slug"); v != "" {
		return v
	}
	segments := strings.Split(strings.Trim(c.Request().URL.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" && segments[i] != "events" {
			return segments[i]
		}
	}
	return ""
}

// normalizedSlug validates the raw token before any store access: presence,
// trim, lowercase, and the [a-z0-9-]+ character class.
func normalizedSlug(c echo.Context) (string, error) {
	raw := slugFromRequest(c)
	if raw == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, dto.APIError{
			Code:    "MISSING_SLUG",
			Message: "slug is required",
		})
	}
	slug := strings.ToLower(strings.TrimSpace(raw))
	if !slugPattern.MatchString(slug) {
		return "", echo.NewHTTPError(http.StatusBadRequest, dto.APIError{
			Code:    "INVALID_SLUG_FORMAT",
			Message: "slug may only contain lowercase letters, digits and hyphens",
		})
	}
	return slug, nil
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	slug, err := normalizedSlug(c)
	if err != nil {
		return err
	}

	event, err := h.svc.GetEventBySlug(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, dto.APIError{
				Code:    "EVENT_NOT_FOUND",
				Message: "no event found for slug " + slug,
			})
		}
		return err
	}

	return c.JSON(http.StatusOK, dto.EventEnvelope{
		Message: "event fetched successfully",
		Event:   dto.ToEventResponse(event),
	})
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.EventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event := req.ToModel()
	if err := h.svc.CreateEvent(c.Request().Context(), event); err != nil {
		return mapWriteError(err)
	}

	return c.JSON(http.StatusCreated, dto.EventEnvelope{
		Message: "event created successfully",
		Event:   dto.ToEventResponse(event),
	})
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	slug, err := normalizedSlug(c)
	if err != nil {
		return err
	}

	var req dto.EventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event, err := h.svc.UpdateEvent(c.Request().Context(), slug, req.ToModel())
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, dto.APIError{
				Code:    "EVENT_NOT_FOUND",
				Message: "no event found for slug " + slug,
			})
		}
		return mapWriteError(err)
	}

	return c.JSON(http.StatusOK, dto.EventEnvelope{
		Message: "event updated successfully",
		Event:   dto.ToEventResponse(event),
	})
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.svc.ListEvents(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]dto.EventResponse, len(events))
	for i := range events {
		resp[i] = dto.ToEventResponse(&events[i])
	}
	return c.JSON(http.StatusOK, resp)
}

// SimilarEvents never fails: a missing source event, an invalid slug or a
// store fault all degrade to an empty list.
func (h *EventHandler) SimilarEvents(c echo.Context) error {
	resp := []dto.SimilarEventResponse{}

	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))
	if slug != "" && slugPattern.MatchString(slug) {
		events, err := h.svc.SimilarEvents(c.Request().Context(), slug)
		if err == nil {
			for i := range events {
				resp = append(resp, dto.ToSimilarEventResponse(&events[i]))
			}
		}
	}

	return c.JSON(http.StatusOK, dto.SimilarEventsEnvelope{
		Message: "similar events fetched successfully",
		Events:  resp,
	})
}

// mapWriteError translates service-level write failures for both create and
// update paths.
func mapWriteError(err error) error {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return echo.NewHTTPError(http.StatusBadRequest, dto.APIError{
			Code:    "VALIDATION_FAILED",
			Message: vErr.Error(),
		})
	}
	if errors.Is(err, service.ErrDuplicateSlug) {
		return echo.NewHTTPError(http.StatusConflict, dto.APIError{
			Code:    "DUPLICATE_SLUG",
			Message: err.Error(),
		})
	}
	return err
}
