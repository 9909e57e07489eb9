package handler

import (
	"net/http"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/dto"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/middleware"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/service"
	"github.com/labstack/echo/v4"
)

type VoyageHandler struct {
	voyages service.VoyageService
}

func NewVoyageHandler(voyages service.VoyageService) *VoyageHandler {
	return &VoyageHandler{voyages: voyages}
}

func truckSlot(req dto.TruckSlotRequest) service.TruckSlot {
	slot := service.TruckSlot{CamionID: req.CamionID}
	if req.CamionID == nil {
		slot.Externe = &service.ExternalTruck{
			CarrierName: req.CarrierName,
			Matricule:   req.Matricule,
			DriverName:  req.DriverName,
			DriverPhone: req.DriverPhone,
		}
	}
	return slot
}

func (h *VoyageHandler) Create(c echo.Context) error {
	bookingID, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.CreateVoyageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	voyage, err := h.voyages.Create(c.Request().Context(), middleware.ActorFrom(c), bookingID, req.NumeroTC)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, voyage)
}

func (h *VoyageHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	voyage, err := h.voyages.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, voyage)
}

func (h *VoyageHandler) ListByBooking(c echo.Context) error {
	bookingID, err := idParam(c)
	if err != nil {
		return err
	}
	voyages, err := h.voyages.ListByBooking(c.Request().Context(), bookingID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, voyages)
}

func (h *VoyageHandler) Depart(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.DepartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	voyage, err := h.voyages.Depart(c.Request().Context(), middleware.ActorFrom(c), id, service.DepartInput{
		DepartureType:       models.DepartureType(req.DepartureType),
		SocietySecondaireID: req.SocietySecondaireID,
		TypeEmballage:       req.TypeEmballage,
		DepartureCity:       req.DepartureCity,
		DepartureDate:       req.DepartureDate,
		DepartureTime:       req.DepartureTime,
		Truck:               truckSlot(req.Truck),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, voyage)
}

func (h *VoyageHandler) RecordReception(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.ReceptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	voyage, err := h.voyages.RecordReception(c.Request().Context(), middleware.ActorFrom(c), id, req.ReceptionDate, req.ReceptionTime)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, voyage)
}

func (h *VoyageHandler) RecordReturnDeparture(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.ReturnDepartureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	voyage, err := h.voyages.RecordReturnDeparture(c.Request().Context(), middleware.ActorFrom(c), id, service.ReturnDepartureInput{
		ReturnDepartureDate: req.ReturnDepartureDate,
		ReturnDepartureTime: req.ReturnDepartureTime,
		ReturnArrivalCity:   req.ReturnArrivalCity,
		Truck:               truckSlot(req.Truck),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, voyage)
}

func (h *VoyageHandler) RecordReturnArrival(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.ReturnArrivalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	voyage, err := h.voyages.RecordReturnArrival(c.Request().Context(), middleware.ActorFrom(c), id, req.ReturnArrivalDate, req.ReturnArrivalTime)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, voyage)
}

func (h *VoyageHandler) AssignPrices(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.AssignPricesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	voyage, err := h.voyages.AssignPrices(c.Request().Context(), middleware.ActorFrom(c), id, service.AssignPricesInput{
		PricePrincipale: req.PricePrincipale,
		PriceSecondaire: req.PriceSecondaire,
		Currency:        req.Currency,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, voyage)
}

func (h *VoyageHandler) Edit(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.EditVoyageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	voyage, err := h.voyages.Edit(c.Request().Context(), middleware.ActorFrom(c), id, service.EditVoyageInput{
		VoyageNumber: req.VoyageNumber,
		NumeroTC:     req.NumeroTC,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, voyage)
}

func (h *VoyageHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.voyages.Delete(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "voyage supprimé"})
}
