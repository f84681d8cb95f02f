package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/servilink/marketplace-api/internal/core/domain"
	"github.com/servilink/marketplace-api/internal/core/ports"
)

// TechnicianHandler handles the authenticated technician profile routes and
// the public technician search.
type TechnicianHandler struct {
	profiles  ports.ProfileService
	directory ports.DirectoryService
}

func NewTechnicianHandler(profiles ports.ProfileService, directory ports.DirectoryService) *TechnicianHandler {
	return &TechnicianHandler{profiles: profiles, directory: directory}
}

// Profile returns the authenticated technician's record, minus the hash.
//
// @Summary      Get own technician profile
// @Tags         technicians
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/technician/profile [get]
func (h *TechnicianHandler) Profile(c echo.Context) error {
	id, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.profiles.GetTechnician(c.Request().Context(), id)
	if err != nil {
		return mapProfileError(c, err)
	}

	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// UpdateProfile applies a partial update to the authenticated technician's
// record and returns the updated version.
//
// @Summary      Update own technician profile
// @Tags         technicians
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/technician/profile [put]
func (h *TechnicianHandler) UpdateProfile(c echo.Context) error {
	id, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.profiles.UpdateTechnician(c.Request().Context(), id, ports.UserUpdate{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Profession: req.Profession,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return mapProfileError(c, err)
	}

	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// Search filters technicians by a case-insensitive name substring.
//
// @Summary      Search technicians by name
// @Tags         technicians
// @Produce      json
// @Param        q  query     string  false  "Name substring"
// @Success      200  {array}  ports.PublicProfile
// @Failure      500  {object}  errorResponse
// @Router       /technicians [get]
func (h *TechnicianHandler) Search(c echo.Context) error {
	profiles, err := h.directory.SearchTechnicians(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profiles)
}

func mapProfileError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{Error: "account is not a technician account"})
	}
	return err
}
