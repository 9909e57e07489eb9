package middleware

import (
	"net/http"
	"strconv"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/auth"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// Actor reads the authenticated identity forwarded by the gateway from the
// X-User-Id, X-User-Role and X-Society-Id headers. Requests without a valid
// identity are rejected before reaching handlers.
func Actor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := strconv.ParseUint(c.Request().Header.Get("X-User-Id"), 10, 32)
			if err != nil || userID == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "identité requise")
			}

			role := models.Role(c.Request().Header.Get("X-User-Role"))
			switch role {
			case models.RoleAdmin, models.RoleBookingAgent, models.RoleValidator:
			default:
				return echo.NewHTTPError(http.StatusUnauthorized, "rôle invalide")
			}

			actor := auth.Actor{UserID: uint(userID), Role: role}
			if raw := c.Request().Header.Get("X-Society-Id"); raw != "" {
				societyID, err := strconv.ParseUint(raw, 10, 32)
				if err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "société invalide")
				}
				id := uint(societyID)
				actor.SocietyID = &id
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// ActorFrom retrieves the actor stored by the Actor middleware.
func ActorFrom(c echo.Context) auth.Actor {
	if actor, ok := c.Get(actorContextKey).(auth.Actor); ok {
		return actor
	}
	return auth.Actor{}
}
