package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/ecommerce-api/internal/api/middleware"
)

// UserHandler serves the guarded demo endpoints: any authenticated user can
// read their profile, only admins reach the dashboard data.
type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile echoes the identity attached by the access guard.
//
// @Summary      Get user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	return c.JSON(http.StatusOK, profileResponse{
		Message: "Profile accessed successfully",
		User:    identity,
	})
}

// Admin returns dashboard figures for admin users.
//
// @Summary      Get admin data
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]any
// @Router       /api/users/admin [get]
func (h *UserHandler) Admin(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	return c.JSON(http.StatusOK, adminResponse{
		Message: "Admin data accessed successfully",
		Data: adminStats{
			TotalUsers:  10,
			TotalOrders: 25,
			Revenue:     15000,
			AdminUser:   identity,
		},
	})
}
