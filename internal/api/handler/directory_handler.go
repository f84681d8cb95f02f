package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/servilink/marketplace-api/internal/core/ports"
)

// DirectoryHandler serves the public role-filtered listings.
type DirectoryHandler struct {
	directory ports.DirectoryService
}

func NewDirectoryHandler(directory ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// Clients lists all client accounts with public-safe fields only.
//
// @Summary      List clients
// @Tags         directory
// @Produce      json
// @Success      200  {array}   ports.PublicProfile
// @Failure      500  {object}  errorResponse
// @Router       /auth/clients [get]
func (h *DirectoryHandler) Clients(c echo.Context) error {
	profiles, err := h.directory.ListClients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profiles)
}

// Technicians lists all technician accounts with public-safe fields only.
//
// @Summary      List technicians
// @Tags         directory
// @Produce      json
// @Success      200  {array}   ports.PublicProfile
// @Failure      500  {object}  errorResponse
// @Router       /auth/technicians [get]
func (h *DirectoryHandler) Technicians(c echo.Context) error {
	profiles, err := h.directory.ListTechnicians(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profiles)
}
