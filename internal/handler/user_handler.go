package handler

import (
	"net/http"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/auth"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/dto"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/middleware"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	users service.UserService
	auth  auth.Service
}

func NewUserHandler(users service.UserService, authService auth.Service) *UserHandler {
	return &UserHandler{users: users, auth: authService}
}

// Login verifies credentials and returns the identity the gateway forwards
// on subsequent requests.
func (h *UserHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	user, err := h.auth.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.LoginResponse{
		UserID:    user.ID,
		Username:  user.Username,
		FullName:  user.FullName(),
		Role:      user.Role,
		SocietyID: user.SocietyID,
	})
}

func userInput(req dto.UserRequest) service.UserInput {
	return service.UserInput{
		Username:   req.Username,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Password:   req.Password,
		Role:       models.Role(req.Role),
		SocietyID:  req.SocietyID,
		TypeVoyage: req.TypeVoyage,
	}
}

func (h *UserHandler) Create(c echo.Context) error {
	var req dto.UserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	user, err := h.users.Create(c.Request().Context(), middleware.ActorFrom(c), userInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.UserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corps de requête invalide")
	}

	user, err := h.users.Update(c.Request().Context(), middleware.ActorFrom(c), id, userInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Deactivate(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	user, err := h.users.Deactivate(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "utilisateur supprimé"})
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context(), middleware.ActorFrom(c), activeOnly(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
