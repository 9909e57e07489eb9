package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/reporting"
	"github.com/labstack/echo/v4"
)

type ReportingHandler struct {
	reports *reporting.Service
	stock   *reporting.StockService
}

func NewReportingHandler(reports *reporting.Service, stock *reporting.StockService) *ReportingHandler {
	return &ReportingHandler{reports: reports, stock: stock}
}

func dateParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "date invalide pour "+name)
	}
	return &t, nil
}

func (h *ReportingHandler) VoyageTracking(c echo.Context) error {
	from, err := dateParam(c, "from")
	if err != nil {
		return err
	}
	to, err := dateParam(c, "to")
	if err != nil {
		return err
	}

	rows, err := h.reports.VoyageTracking(c.Request().Context(), reporting.TrackingFilter{
		Search: c.QueryParam("search"),
		From:   from,
		To:     to,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportingHandler) Dashboard(c echo.Context) error {
	stats, err := h.reports.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *ReportingHandler) StockMovements(c echo.Context) error {
	if !h.stock.Enabled() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "la base de stock n'est pas configurée")
	}

	from, err := dateParam(c, "from")
	if err != nil {
		return err
	}
	to, err := dateParam(c, "to")
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	movements, err := h.stock.Movements(c.Request().Context(), reporting.StockFilter{
		Search: c.QueryParam("search"),
		From:   from,
		To:     to,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movements)
}
