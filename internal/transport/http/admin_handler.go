package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/domain"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/service"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/util"
)

type AdminHandler struct {
	admin *service.AdminService
}

type AdminUser struct {
	AuthUser
	Stats domain.WardrobeCounts `json:"stats"`
}

type AdminUsersResponse struct {
	Users  []AdminUser `json:"users"`
	Total  int64       `json:"total" example:"42"`
	Limit  int         `json:"limit" example:"50"`
	Offset int         `json:"offset" example:"0"`
}

type AdminUserDetailResponse struct {
	User      AdminUser         `json:"user"`
	Wardrobes []domain.Wardrobe `json:"wardrobes"`
}

type AdminUpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	IsActive *bool   `json:"is_active"`
	Role     *string `json:"role" validate:"omitempty,oneof=user admin"`
}

func RegisterAdmin(e *echo.Echo, auth *service.AuthService, admin *service.AdminService) {
	h := &AdminHandler{admin: admin}

	g := e.Group("/api/admin", RequireAuth(auth), RequireAdmin())
	g.GET("/users", h.listUsers)
	g.GET("/users/:id", h.getUser)
	g.PUT("/users/:id", h.updateUser)
	g.DELETE("/users/:id", h.deleteUser)
	g.GET("/stats", h.stats)
}

func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a valid UUID", service.ErrValidation, name)
	}
	return id, nil
}

func parseIntQuery(c echo.Context, name string) (int, bool) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

func (h *AdminHandler) listUsers(c echo.Context) error {
	limit, ok := parseIntQuery(c, "limit")
	if !ok {
		return c.JSON(http.StatusBadRequest, util.ErrorCode(codeValidation, "limit must be a number"))
	}
	offset, ok := parseIntQuery(c, "offset")
	if !ok {
		return c.JSON(http.StatusBadRequest, util.ErrorCode(codeValidation, "offset must be a number"))
	}

	result, err := h.admin.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	users := make([]AdminUser, len(result.Users))
	for i := range result.Users {
		users[i] = AdminUser{AuthUser: newAuthUser(&result.Users[i].User), Stats: result.Users[i].Stats}
	}
	return c.JSON(http.StatusOK, AdminUsersResponse{
		Users:  users,
		Total:  result.Total,
		Limit:  result.Limit,
		Offset: result.Offset,
	})
}

func (h *AdminHandler) getUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	detail, err := h.admin.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, AdminUserDetailResponse{
		User:      AdminUser{AuthUser: newAuthUser(detail.User), Stats: detail.Stats},
		Wardrobes: detail.Wardrobes,
	})
}

func (h *AdminHandler) updateUser(c echo.Context) error {
	actor, _ := CurrentUser(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req AdminUpdateUserRequest
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, err)
	}

	update := domain.UserAccountUpdate{Name: req.Name, Email: req.Email, IsActive: req.IsActive}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		update.Role = &role
	}
	user, err := h.admin.UpdateUser(c.Request().Context(), actor, id, update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user updated", "user": newAuthUser(user)})
}

func (h *AdminHandler) deleteUser(c echo.Context) error {
	actor, _ := CurrentUser(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	removed, err := h.admin.DeleteUser(c.Request().Context(), actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted", "wardrobes_deleted": removed})
}

func (h *AdminHandler) stats(c echo.Context) error {
	stats, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
