package handlers_test

import (
	"net/http"
	"testing"

	"clinic-app-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAndMe(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "admin", "admin", models.RoleAdmin)

	token := ts.login(t, "admin", "admin")

	rec := ts.request(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me models.UserSanitized
	decodeData(t, rec, &me)
	assert.Equal(t, "admin", me.Username)
	assert.Equal(t, models.RoleAdmin, me.Role)
	assert.True(t, me.IsFirstLogin)
}

func TestLoginWrongPasswordEstablishesNoSession(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "admin", "admin", models.RoleAdmin)

	rec := ts.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// No session was established by the failed attempt.
	rec = ts.request(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	ts := setupServer(t)

	rec := ts.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "nobody",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "admin", "admin", models.RoleAdmin)
	token := ts.login(t, "admin", "admin")

	rec := ts.request(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The token is dead server-side even though it still parses.
	rec = ts.request(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePasswordClearsFirstLoginFlag(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "reception", "oldpass", models.RoleReceptionist)
	token := ts.login(t, "reception", "oldpass")

	rec := ts.request(t, http.MethodPost, "/api/v1/auth/change-password", token, map[string]string{
		"newPassword": "newpass",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Old password no longer works.
	rec = ts.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "reception",
		"password": "oldpass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// New password works and the flag is cleared.
	newToken := ts.login(t, "reception", "newpass")
	rec = ts.request(t, http.MethodGet, "/api/v1/auth/me", newToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me models.UserSanitized
	decodeData(t, rec, &me)
	assert.False(t, me.IsFirstLogin)
}

func TestSessionResolutionWhenUserDeleted(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "admin", "admin", models.RoleAdmin)
	doctor := ts.seedUser(t, "drghost", "pass", models.RoleDoctor)
	doctorToken := ts.login(t, "drghost", "pass")

	adminToken := ts.login(t, "admin", "admin")
	rec := ts.request(t, http.MethodDelete, "/api/v1/users/"+doctor.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The session references a user that no longer exists.
	rec = ts.request(t, http.MethodGet, "/api/v1/auth/me", doctorToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestsWithoutTokenRejected(t *testing.T) {
	ts := setupServer(t)

	for _, path := range []string{"/api/v1/patients", "/api/v1/procedures", "/api/v1/appointments", "/api/v1/visits", "/api/v1/payments"} {
		rec := ts.request(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
