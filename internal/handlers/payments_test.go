package handlers_test

import (
	"net/http"
	"testing"

	"clinic-app-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentPayload struct {
	ID             string  `json:"id"`
	AmountJod      float64 `json:"amountJod"`
	Notes          string  `json:"notes"`
	PatientName    string  `json:"patientName"`
	RecordedByName string  `json:"recordedByName"`
}

func TestRecordPaymentStampsRecorder(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "reception", "pass", models.RoleReceptionist)
	token := ts.login(t, "reception", "pass")

	patientID := ts.createPatient(t, token, "Paying Patient")

	rec := ts.request(t, http.MethodPost, "/api/v1/payments", token, map[string]interface{}{
		"patientId": patientID,
		"amountJod": 15.5,
		"notes":     "Cash",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var payment paymentPayload
	decodeData(t, rec, &payment)
	assert.Equal(t, 15.5, payment.AmountJod)
	assert.Equal(t, "Paying Patient", payment.PatientName)
	assert.Equal(t, "Test reception", payment.RecordedByName)
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "reception", "pass", models.RoleReceptionist)
	token := ts.login(t, "reception", "pass")

	patientID := ts.createPatient(t, token, "Paying Patient")

	rec := ts.request(t, http.MethodPost, "/api/v1/payments", token, map[string]interface{}{
		"patientId": patientID,
		"amountJod": -5,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRecordPaymentUnknownPatient(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "reception", "pass", models.RoleReceptionist)
	token := ts.login(t, "reception", "pass")

	rec := ts.request(t, http.MethodPost, "/api/v1/payments", token, map[string]interface{}{
		"patientId": "does-not-exist",
		"amountJod": 10,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDoctorCannotRecordPayments(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "reception", "pass", models.RoleReceptionist)
	ts.seedUser(t, "drsmith", "pass", models.RoleDoctor)
	receptionToken := ts.login(t, "reception", "pass")
	doctorToken := ts.login(t, "drsmith", "pass")

	patientID := ts.createPatient(t, receptionToken, "Paying Patient")

	rec := ts.request(t, http.MethodPost, "/api/v1/payments", doctorToken, map[string]interface{}{
		"patientId": patientID,
		"amountJod": 10,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListPaymentsFilteredByPatient(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "reception", "pass", models.RoleReceptionist)
	token := ts.login(t, "reception", "pass")

	firstID := ts.createPatient(t, token, "First")
	secondID := ts.createPatient(t, token, "Second")

	for _, payment := range []map[string]interface{}{
		{"patientId": firstID, "amountJod": 10},
		{"patientId": firstID, "amountJod": 20},
		{"patientId": secondID, "amountJod": 30},
	} {
		rec := ts.request(t, http.MethodPost, "/api/v1/payments", token, payment)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := ts.request(t, http.MethodGet, "/api/v1/payments?patientId="+firstID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payments []paymentPayload
	decodeData(t, rec, &payments)
	require.Len(t, payments, 2)
	for _, payment := range payments {
		assert.Equal(t, "First", payment.PatientName)
	}
}
