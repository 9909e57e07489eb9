package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/auth"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/service"
	"github.com/labstack/echo/v4"
)

// ErrorHandler maps domain errors to HTTP statuses so handlers can return
// service errors directly.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	var httpErr *echo.HTTPError
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		message = validationErr.Message
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		message = "ressource introuvable"
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
		message = "accès refusé"
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "identifiants invalides"
	case errors.Is(err, service.ErrInvalidState):
		status = http.StatusConflict
		message = "opération impossible dans l'état actuel"
	case errors.Is(err, service.ErrAlreadyResponded):
		status = http.StatusConflict
		message = "cette temporisation a déjà reçu une réponse"
	case errors.Is(err, service.ErrQuotaExceeded):
		status = http.StatusConflict
		message = "le nombre de voyages autorisés est atteint"
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
		message = "conflit avec un enregistrement existant"
	default:
		log.Printf("[ErrorHandler] unhandled error: %v", err)
	}

	if err := c.JSON(status, map[string]string{"message": message}); err != nil {
		log.Printf("[ErrorHandler] failed to write response: %v", err)
	}
}
