package handler

import (
	"net/http"
	"strconv"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/dto"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/middleware"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "identifiant invalide")
	}
	return uint(id), nil
}

func (h *BookingHandler) Create(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	booking, err := h.bookings.Create(c.Request().Context(), middleware.ActorFrom(c), service.CreateBookingInput{
		SocietyID:      req.SocietyID,
		NumeroBK:       req.NumeroBK,
		TypeVoyage:     req.TypeVoyage,
		TypeContenaire: req.TypeContenaire,
		NomClient:      req.NomClient,
		NbrLTC:         req.NbrLTC,
		Notes:          req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	booking, err := h.bookings.Get(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.bookings.List(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *BookingHandler) Validate(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	booking, err := h.bookings.Validate(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) Temporise(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.TemporiseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	temporisation, err := h.bookings.Temporise(c.Request().Context(), middleware.ActorFrom(c), id, service.TemporiseInput{
		Reason:                  req.Reason,
		EstimatedValidationDate: req.EstimatedValidationDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToTemporisationResponse(temporisation))
}

func (h *BookingHandler) ActiveTemporisation(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	temporisation, err := h.bookings.ActiveTemporisation(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToTemporisationResponse(temporisation))
}

func (h *BookingHandler) RespondToTemporisation(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.RespondTemporisationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	temporisation, err := h.bookings.RespondToTemporisation(
		c.Request().Context(), middleware.ActorFrom(c), id, models.CreatorResponse(req.Response), req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToTemporisationResponse(temporisation))
}

func (h *BookingHandler) PendingTemporisations(c echo.Context) error {
	temporisations, err := h.bookings.PendingTemporisations(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToTemporisationResponses(temporisations))
}

func (h *BookingHandler) Edit(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.EditBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	booking, err := h.bookings.Edit(c.Request().Context(), middleware.ActorFrom(c), id, editInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func editInput(req dto.EditBookingRequest) service.EditBookingInput {
	return service.EditBookingInput{
		NumeroBK:       req.NumeroBK,
		SocietyID:      req.SocietyID,
		TypeVoyage:     req.TypeVoyage,
		TypeContenaire: req.TypeContenaire,
		NomClient:      req.NomClient,
		NbrLTC:         req.NbrLTC,
		Notes:          req.Notes,
	}
}

func (h *BookingHandler) BulkEdit(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.BulkEditBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	input := service.BulkEditBookingInput{Booking: editInput(req.Booking)}
	for _, v := range req.Voyages {
		input.Voyages = append(input.Voyages, service.VoyageTCEdit{VoyageID: v.VoyageID, NumeroTC: v.NumeroTC})
	}

	booking, err := h.bookings.BulkEdit(c.Request().Context(), middleware.ActorFrom(c), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.bookings.Delete(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "réservation supprimée"})
}
