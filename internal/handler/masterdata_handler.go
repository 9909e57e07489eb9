package handler

import (
	"net/http"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/dto"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/middleware"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/service"
	"github.com/labstack/echo/v4"
)

// MasterDataHandler serves sociétés, carriers and camions.
type MasterDataHandler struct {
	societies service.SocietyService
	fleet     service.FleetService
}

func NewMasterDataHandler(societies service.SocietyService, fleet service.FleetService) *MasterDataHandler {
	return &MasterDataHandler{societies: societies, fleet: fleet}
}

func activeOnly(c echo.Context) bool {
	return c.QueryParam("active") == "true"
}

func (h *MasterDataHandler) CreateSociety(c echo.Context) error {
	var req dto.SocietyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	society, err := h.societies.Create(c.Request().Context(), middleware.ActorFrom(c), service.SocietyInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, society)
}

func (h *MasterDataHandler) UpdateSociety(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.SocietyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	society, err := h.societies.Update(c.Request().Context(), middleware.ActorFrom(c), id, service.SocietyInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, society)
}

func (h *MasterDataHandler) DeactivateSociety(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	society, err := h.societies.Deactivate(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, society)
}

func (h *MasterDataHandler) DeleteSociety(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.societies.Delete(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "société supprimée"})
}

func (h *MasterDataHandler) ListSocieties(c echo.Context) error {
	societies, err := h.societies.List(c.Request().Context(), activeOnly(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, societies)
}

func (h *MasterDataHandler) GetSociety(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	society, err := h.societies.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, society)
}

func (h *MasterDataHandler) CreateCamion(c echo.Context) error {
	var req dto.CamionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	camion, err := h.fleet.CreateCamion(c.Request().Context(), middleware.ActorFrom(c), service.CamionInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, camion)
}

func (h *MasterDataHandler) UpdateCamion(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.CamionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	camion, err := h.fleet.UpdateCamion(c.Request().Context(), middleware.ActorFrom(c), id, service.CamionInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, camion)
}

func (h *MasterDataHandler) DeactivateCamion(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	camion, err := h.fleet.DeactivateCamion(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, camion)
}

func (h *MasterDataHandler) DeleteCamion(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.fleet.DeleteCamion(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "camion supprimé"})
}

func (h *MasterDataHandler) ListCamions(c echo.Context) error {
	camions, err := h.fleet.ListCamions(c.Request().Context(), activeOnly(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, camions)
}

func (h *MasterDataHandler) ListCamionsByCarrier(c echo.Context) error {
	carrierID, err := idParam(c)
	if err != nil {
		return err
	}
	camions, err := h.fleet.ListCamionsByCarrier(c.Request().Context(), carrierID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, camions)
}

func (h *MasterDataHandler) ListCarriers(c echo.Context) error {
	carriers, err := h.fleet.ListCarriers(c.Request().Context(), activeOnly(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, carriers)
}
