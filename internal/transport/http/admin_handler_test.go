package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/service"
)

func TestAdminRoutesRequireAdmin(t *testing.T) {
	s := newTestServer(t, service.PasswordResetConfig{})
	userToken, _ := s.register(t, "user@x.com", "secret1")

	rec := s.do(t, http.MethodGet, "/api/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, codeForbidden, errorCode(t, rec))

	rec = s.do(t, http.MethodGet, "/api/admin/stats", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminSelfProtection(t *testing.T) {
	s := newTestServer(t, service.PasswordResetConfig{})
	adminToken, adminID := s.register(t, testAdminEmail, "secret1")

	rec := s.do(t, http.MethodDelete, "/api/admin/users/"+adminID, adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeSelfProtection, errorCode(t, rec))

	rec = s.do(t, http.MethodPut, "/api/admin/users/"+adminID, adminToken, map[string]interface{}{"is_active": false})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeSelfProtection, errorCode(t, rec))

	rec = s.do(t, http.MethodPut, "/api/admin/users/"+adminID, adminToken, map[string]interface{}{"role": "user"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeSelfProtection, errorCode(t, rec))

	rec = s.do(t, http.MethodPut, "/api/admin/users/"+adminID, adminToken, map[string]interface{}{"name": "Root"})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestAdminDeleteUserCascadesWardrobes(t *testing.T) {
	s := newTestServer(t, service.PasswordResetConfig{})
	adminToken, _ := s.register(t, testAdminEmail, "secret1")
	userToken, userID := s.register(t, "c@x.com", "secret1")

	for _, name := range []string{"Work", "Weekend"} {
		rec := s.do(t, http.MethodPost, "/api/wardrobe", userToken, map[string]string{"name": name})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := s.do(t, http.MethodGet, "/api/admin/users/"+userID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var detail AdminUserDetailResponse
	decode(t, rec, &detail)
	assert.Len(t, detail.Wardrobes, 2)
	assert.EqualValues(t, 2, detail.User.Stats.Wardrobes)

	rec = s.do(t, http.MethodDelete, "/api/admin/users/"+userID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var deleted struct {
		WardrobesDeleted int64 `json:"wardrobes_deleted"`
	}
	decode(t, rec, &deleted)
	assert.EqualValues(t, 2, deleted.WardrobesDeleted)

	rec = s.do(t, http.MethodGet, "/api/admin/users/"+userID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, codeUserNotFound, errorCode(t, rec))

	rec = s.do(t, http.MethodGet, "/api/wardrobe", userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminDeactivateBlocksSessions(t *testing.T) {
	s := newTestServer(t, service.PasswordResetConfig{})
	adminToken, _ := s.register(t, testAdminEmail, "secret1")
	userToken, userID := s.register(t, "d@x.com", "secret1")

	rec := s.do(t, http.MethodPut, "/api/admin/users/"+userID, adminToken, map[string]interface{}{"is_active": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/auth/profile", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, codeAccountInactive, errorCode(t, rec))

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "d@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, codeAccountInactive, errorCode(t, rec))
}

func TestAdminListUsersAndStats(t *testing.T) {
	s := newTestServer(t, service.PasswordResetConfig{})
	adminToken, _ := s.register(t, testAdminEmail, "secret1")
	s.register(t, "e@x.com", "secret1")
	s.register(t, "f@x.com", "secret1")

	rec := s.do(t, http.MethodGet, "/api/admin/users?limit=2&offset=0", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list AdminUsersResponse
	decode(t, rec, &list)
	assert.EqualValues(t, 3, list.Total)
	assert.Len(t, list.Users, 2)
	assert.Equal(t, 2, list.Limit)

	rec = s.do(t, http.MethodGet, "/api/admin/users?limit=abc", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeValidation, errorCode(t, rec))

	rec = s.do(t, http.MethodGet, "/api/admin/users/not-a-uuid", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeValidation, errorCode(t, rec))

	rec = s.do(t, http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"auth_providers"`)
}
