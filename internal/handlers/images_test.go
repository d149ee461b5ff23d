package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"clinic-app-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) uploadImage(t *testing.T, token, patientID, imageType string, content []byte) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("patient_id", patientID))
	require.NoError(t, writer.WriteField("image_type", imageType))
	part, err := writer.CreateFormFile("file", "scan.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var uploaded struct {
		ID        string `json:"id"`
		ImagePath string `json:"imagePath"`
	}
	decodeData(t, rec, &uploaded)
	return uploaded.ID, uploaded.ImagePath
}

func TestUploadAndServeImage(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "drsmith", "pass", models.RoleDoctor)
	token := ts.login(t, "drsmith", "pass")

	patientID := ts.createPatient(t, token, "Imaging Patient")
	content := []byte("fake png bytes")
	imageID, imagePath := ts.uploadImage(t, token, patientID, "xray", content)

	// The file is on disk under the patient's directory.
	onDisk, err := os.ReadFile(filepath.Join(ts.cfg.UploadsDir, imagePath))
	require.NoError(t, err)
	assert.Equal(t, content, onDisk)

	// And the endpoint serves the same bytes back.
	rec := ts.request(t, http.MethodGet, "/api/v1/images/"+imageID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, content, rec.Body.Bytes())
}

func TestGetImageMissingRecord(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "drsmith", "pass", models.RoleDoctor)
	token := ts.login(t, "drsmith", "pass")

	rec := ts.request(t, http.MethodGet, "/api/v1/images/does-not-exist", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetImageMissingFile(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "drsmith", "pass", models.RoleDoctor)
	token := ts.login(t, "drsmith", "pass")

	patientID := ts.createPatient(t, token, "Imaging Patient")
	imageID, imagePath := ts.uploadImage(t, token, patientID, "xray", []byte("bytes"))

	// A record whose file vanished answers 404, same as a missing record.
	require.NoError(t, os.Remove(filepath.Join(ts.cfg.UploadsDir, imagePath)))

	rec := ts.request(t, http.MethodGet, "/api/v1/images/"+imageID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteImageRemovesFileAndRecord(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "drsmith", "pass", models.RoleDoctor)
	token := ts.login(t, "drsmith", "pass")

	patientID := ts.createPatient(t, token, "Imaging Patient")
	imageID, imagePath := ts.uploadImage(t, token, patientID, "photo", []byte("bytes"))

	rec := ts.request(t, http.MethodDelete, "/api/v1/images/"+imageID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := os.Stat(filepath.Join(ts.cfg.UploadsDir, imagePath))
	assert.True(t, os.IsNotExist(err))

	rec = ts.request(t, http.MethodGet, "/api/v1/images/"+imageID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPatientImages(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "drsmith", "pass", models.RoleDoctor)
	token := ts.login(t, "drsmith", "pass")

	patientID := ts.createPatient(t, token, "Imaging Patient")
	ts.uploadImage(t, token, patientID, "xray", []byte("a"))
	ts.uploadImage(t, token, patientID, "photo", []byte("b"))

	rec := ts.request(t, http.MethodGet, "/api/v1/images/patient/"+patientID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var images []struct {
		ImageType      string `json:"imageType"`
		PatientName    string `json:"patientName"`
		UploadedByName string `json:"uploadedByName"`
	}
	decodeData(t, rec, &images)
	require.Len(t, images, 2)
	assert.Equal(t, "Imaging Patient", images[0].PatientName)
	assert.Equal(t, "Test drsmith", images[0].UploadedByName)
}

func TestReceptionistCannotUploadImages(t *testing.T) {
	ts := setupServer(t)
	ts.seedUser(t, "reception", "pass", models.RoleReceptionist)
	token := ts.login(t, "reception", "pass")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("patient_id", "x"))
	require.NoError(t, writer.WriteField("image_type", "xray"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
