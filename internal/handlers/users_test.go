package handlers_test

import (
	"net/http"
	"testing"

	"clinic-app-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminCreatesUser(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "admin", "admin", models.RoleAdmin)
	token := ts.login(t, "admin", "admin")

	rec := ts.request(t, http.MethodPost, "/api/v1/users", token, map[string]interface{}{
		"username": "drsmith",
		"password": "secret",
		"fullName": "Dr. Smith",
		"role":     "doctor",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.UserSanitized
	decodeData(t, rec, &created)
	assert.Equal(t, "drsmith", created.Username)
	assert.Equal(t, models.RoleDoctor, created.Role)
	assert.Equal(t, 8, created.SessionDurationHours)
	assert.True(t, created.IsFirstLogin)

	// New account can log in.
	ts.login(t, "drsmith", "secret")
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "admin", "admin", models.RoleAdmin)
	token := ts.login(t, "admin", "admin")

	payload := map[string]interface{}{
		"username": "reception",
		"password": "secret",
		"fullName": "Front Desk",
		"role":     "receptionist",
	}
	rec := ts.request(t, http.MethodPost, "/api/v1/users", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.request(t, http.MethodPost, "/api/v1/users", token, payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "admin", "admin", models.RoleAdmin)
	token := ts.login(t, "admin", "admin")

	rec := ts.request(t, http.MethodPost, "/api/v1/users", token, map[string]interface{}{
		"username": "odd",
		"password": "secret",
		"fullName": "Odd Role",
		"role":     "janitor",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUserManagementIsAdminOnly(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "drsmith", "pass", models.RoleDoctor)
	ts.seedUser(t, "reception", "pass", models.RoleReceptionist)

	for _, username := range []string{"drsmith", "reception"} {
		token := ts.login(t, username, "pass")

		rec := ts.request(t, http.MethodGet, "/api/v1/users", token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, username)

		rec = ts.request(t, http.MethodPost, "/api/v1/users", token, map[string]interface{}{
			"username": "sneaky",
			"password": "secret",
			"fullName": "Sneaky",
			"role":     "admin",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code, username)
	}
}

func TestAdminCannotDeleteOwnAccount(t *testing.T) {
	ts := setupServer(t)
	admin := ts.seedUser(t, "admin", "admin", models.RoleAdmin)
	token := ts.login(t, "admin", "admin")

	rec := ts.request(t, http.MethodDelete, "/api/v1/users/"+admin.ID, token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Still there.
	rec = ts.request(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminDeletesOtherUser(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "admin", "admin", models.RoleAdmin)
	doctor := ts.seedUser(t, "drsmith", "pass", models.RoleDoctor)
	token := ts.login(t, "admin", "admin")

	rec := ts.request(t, http.MethodDelete, "/api/v1/users/"+doctor.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.request(t, http.MethodDelete, "/api/v1/users/"+doctor.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUserResetsPassword(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "admin", "admin", models.RoleAdmin)
	doctor := ts.seedUser(t, "drsmith", "old", models.RoleDoctor)
	token := ts.login(t, "admin", "admin")

	hours := 12
	rec := ts.request(t, http.MethodPut, "/api/v1/users/"+doctor.ID, token, map[string]interface{}{
		"fullName":             "Dr. S. Smith",
		"sessionDurationHours": hours,
		"password":             "fresh",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.UserSanitized
	decodeData(t, rec, &updated)
	assert.Equal(t, "Dr. S. Smith", updated.FullName)
	assert.Equal(t, hours, updated.SessionDurationHours)

	ts.login(t, "drsmith", "fresh")
}

func TestDoctorsListingAvailableToAllRoles(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "reception", "pass", models.RoleReceptionist)
	ts.seedUser(t, "drb", "pass", models.RoleDoctor)
	ts.seedUser(t, "dra", "pass", models.RoleDoctor)

	token := ts.login(t, "reception", "pass")
	rec := ts.request(t, http.MethodGet, "/api/v1/users/doctors", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doctors []models.UserSanitized
	decodeData(t, rec, &doctors)
	require.Len(t, doctors, 2)
	for _, doctor := range doctors {
		assert.Equal(t, models.RoleDoctor, doctor.Role)
	}
}
