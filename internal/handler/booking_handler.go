package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"eventdesk/internal/dto"
	"eventdesk/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
	eventSvc   service.EventService
}

func NewBookingHandler(bookingSvc service.BookingService, eventSvc service.EventService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc, eventSvc: eventSvc}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/:slug/bookings", h.CreateBooking)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	slug, err := normalizedSlug(c)
	if err != nil {
		return err
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event, err := h.eventSvc.GetEventBySlug(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, dto.APIError{
				Code:    "EVENT_NOT_FOUND",
				Message: "no event found for slug " + slug,
			})
		}
		return err
	}

	booking, err := h.bookingSvc.CreateBooking(c.Request().Context(), event, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			return echo.NewHTTPError(http.StatusBadRequest, dto.APIError{
				Code:    "INVALID_EMAIL",
				Message: err.Error(),
			})
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, dto.APIError{
				Code:    "EVENT_NOT_FOUND",
				Message: err.Error(),
			})
		default:
			return err
		}
	}

	return c.JSON(http.StatusCreated, dto.BookingEnvelope{
		Message: "booking created successfully",
		Booking: dto.ToBookingResponse(booking),
	})
}
