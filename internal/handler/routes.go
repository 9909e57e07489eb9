package handler

import (
	"net/http"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts all API routes. Login and health sit outside the
// identity middleware; everything else requires the forwarded actor headers.
func RegisterRoutes(
	e *echo.Echo,
	bookings *BookingHandler,
	voyages *VoyageHandler,
	masterData *MasterDataHandler,
	users *UserHandler,
	reports *ReportingHandler,
) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.POST("/api/login", users.Login)

	api := e.Group("/api", middleware.Actor())

	api.POST("/bookings", bookings.Create)
	api.GET("/bookings", bookings.List)
	api.GET("/bookings/:id", bookings.Get)
	api.PUT("/bookings/:id", bookings.Edit)
	api.PUT("/bookings/:id/bulk", bookings.BulkEdit)
	api.DELETE("/bookings/:id", bookings.Delete)
	api.POST("/bookings/:id/validate", bookings.Validate)
	api.POST("/bookings/:id/temporise", bookings.Temporise)
	api.GET("/bookings/:id/temporisation", bookings.ActiveTemporisation)
	api.POST("/temporisations/:id/respond", bookings.RespondToTemporisation)
	api.GET("/temporisations/pending", bookings.PendingTemporisations)

	api.POST("/bookings/:id/voyages", voyages.Create)
	api.GET("/bookings/:id/voyages", voyages.ListByBooking)
	api.GET("/voyages/:id", voyages.Get)
	api.PUT("/voyages/:id", voyages.Edit)
	api.DELETE("/voyages/:id", voyages.Delete)
	api.POST("/voyages/:id/depart", voyages.Depart)
	api.POST("/voyages/:id/reception", voyages.RecordReception)
	api.POST("/voyages/:id/return-departure", voyages.RecordReturnDeparture)
	api.POST("/voyages/:id/return-arrival", voyages.RecordReturnArrival)
	api.POST("/voyages/:id/prices", voyages.AssignPrices)

	api.POST("/societies", masterData.CreateSociety)
	api.GET("/societies", masterData.ListSocieties)
	api.GET("/societies/:id", masterData.GetSociety)
	api.PUT("/societies/:id", masterData.UpdateSociety)
	api.POST("/societies/:id/deactivate", masterData.DeactivateSociety)
	api.DELETE("/societies/:id", masterData.DeleteSociety)

	api.POST("/camions", masterData.CreateCamion)
	api.GET("/camions", masterData.ListCamions)
	api.PUT("/camions/:id", masterData.UpdateCamion)
	api.POST("/camions/:id/deactivate", masterData.DeactivateCamion)
	api.DELETE("/camions/:id", masterData.DeleteCamion)
	api.GET("/carriers", masterData.ListCarriers)
	api.GET("/carriers/:id/camions", masterData.ListCamionsByCarrier)

	api.POST("/users", users.Create)
	api.GET("/users", users.List)
	api.PUT("/users/:id", users.Update)
	api.POST("/users/:id/deactivate", users.Deactivate)
	api.DELETE("/users/:id", users.Delete)

	api.GET("/reports/voyages", reports.VoyageTracking)
	api.GET("/reports/dashboard", reports.Dashboard)
	api.GET("/reports/stock", reports.StockMovements)
}
